// Package model defines the core soul simulation data types.
package model

import "time"

// EventKind is one of the closed set of life event categories.
type EventKind string

const (
	KindChallenge  EventKind = "challenge"
	KindDiscovery  EventKind = "discovery"
	KindConnection EventKind = "connection"
	KindLoss       EventKind = "loss"
	KindGrowth     EventKind = "growth"
	KindReflection EventKind = "reflection"
)

// AllKinds lists every event kind in a fixed order.
var AllKinds = []EventKind{
	KindChallenge,
	KindDiscovery,
	KindConnection,
	KindLoss,
	KindGrowth,
	KindReflection,
}

// Event is a single life event a soul experiences. Immutable once created.
type Event struct {
	Kind          EventKind `json:"kind"`
	Description   string    `json:"description"`
	Significance  float64   `json:"significance"`
	EmotionalTags []string  `json:"emotional_tags"`
	IsNovel       bool      `json:"is_novel"`
	EthicalImpact float64   `json:"ethical_impact"`
	Timestamp     time.Time `json:"timestamp"`
}

// Emotion is a named emotional response with intensity and trigger context.
type Emotion struct {
	Name      string    `json:"name"`
	Intensity float64   `json:"intensity"`
	Trigger   EventKind `json:"trigger"`
	DecayRate float64   `json:"decay_rate"`
	Timestamp time.Time `json:"timestamp"`
}

// Memory is a persisted experience. EmotionalTags snapshots the intensity of
// the emotion that produced it, keyed by emotion name.
type Memory struct {
	ID            string             `json:"id"`
	Content       string             `json:"content"`
	EmotionalTags map[string]float64 `json:"emotional_tags"`
	Significance  float64            `json:"significance"`
	Timestamp     time.Time          `json:"timestamp"`
	RecallCount   int                `json:"recall_count"`
}

// Trait is a named personality dimension, bounded to [0.0, 1.0].
type Trait struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	EvolutionRate float64 `json:"evolution_rate"`
	Description   string  `json:"description"`
}

// EthicalTally counts ethically positive and negative events in a cycle.
type EthicalTally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// LifeMetrics accumulates per-cycle measurements consumed at rebirth.
type LifeMetrics struct {
	EmotionalPeaks         map[string]float64 `json:"emotional_peaks"`
	ConsciousnessLevel     float64            `json:"consciousness_level"`
	SignificantExperiences int                `json:"significant_experiences"`
	LifeDuration           float64            `json:"life_duration"`
	EthicalChoices         EthicalTally       `json:"ethical_choices"`
}

// NewLifeMetrics returns a fresh empty accumulator for a new life cycle.
func NewLifeMetrics() LifeMetrics {
	return LifeMetrics{EmotionalPeaks: make(map[string]float64)}
}

// Awareness is the discrete tier derived from a consciousness level.
type Awareness string

const (
	AwarenessBase         Awareness = "base"
	AwarenessEmotional    Awareness = "emotional"
	AwarenessSelfAware    Awareness = "self-aware"
	AwarenessTranscendent Awareness = "transcendent"
)

// ThoughtRecord is one entry in the cross-life thought history.
type ThoughtRecord struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ConsciousnessSnapshot is the persistable state of the consciousness model.
// Restoring a snapshot takes the values as-is; no re-normalization is applied.
type ConsciousnessSnapshot struct {
	Level          float64            `json:"level"`
	ActiveThoughts []string           `json:"active_thoughts"`
	Ethics         map[string]float64 `json:"ethics"`
	Thoughts       []ThoughtRecord    `json:"thoughts"`
}

// SoulProfile is the persistable identity of a soul: the stable identifier
// plus the state that survives across process runs.
type SoulProfile struct {
	SoulID        string                `json:"soul_id"`
	Traits        []Trait               `json:"traits"`
	Consciousness ConsciousnessSnapshot `json:"consciousness"`
	Cycles        int                   `json:"cycles"`
}
