// Package personality maintains a soul's identity and its six evolving
// trait values.
package personality

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kxiong/soulgenesis/internal/model"
)

// DefaultMutationChance is the probability that one trait receives a random
// perturbation during an evolution step.
const DefaultMutationChance = 0.1

// DefaultDominantThreshold is the trait value at or above which a trait
// counts as dominant.
const DefaultDominantThreshold = 0.6

// traitOrder fixes iteration order for deterministic behavior.
var traitOrder = []string{
	"empathy",
	"curiosity",
	"resilience",
	"adaptability",
	"creativity",
	"harmony",
}

func initialTraits() map[string]*model.Trait {
	return map[string]*model.Trait{
		"empathy": {
			Name:          "empathy",
			Value:         0.3,
			EvolutionRate: 0.05,
			Description:   "Ability to understand and share feelings",
		},
		"curiosity": {
			Name:          "curiosity",
			Value:         0.4,
			EvolutionRate: 0.07,
			Description:   "Drive to explore and learn",
		},
		"resilience": {
			Name:          "resilience",
			Value:         0.35,
			EvolutionRate: 0.04,
			Description:   "Ability to recover from difficulties",
		},
		"adaptability": {
			Name:          "adaptability",
			Value:         0.3,
			EvolutionRate: 0.06,
			Description:   "Flexibility in facing change",
		},
		"creativity": {
			Name:          "creativity",
			Value:         0.25,
			EvolutionRate: 0.05,
			Description:   "Ability to think originally",
		},
		"harmony": {
			Name:          "harmony",
			Value:         0.2,
			EvolutionRate: 0.03,
			Description:   "Tendency towards peaceful balance",
		},
	}
}

// EvolutionRecord is one before/after snapshot of an evolution step plus the
// metrics that triggered it.
type EvolutionRecord struct {
	Before  map[string]float64 `json:"before"`
	After   map[string]float64 `json:"after"`
	Metrics model.LifeMetrics  `json:"metrics"`
}

// Model holds a soul's stable identifier and trait set. The identity
// persists across rebirths; only trait values evolve.
type Model struct {
	soulID         string
	traits         map[string]*model.Trait
	history        []EvolutionRecord
	mutationChance float64
	rng            *rand.Rand
}

// NewModel creates a fresh soul with a new identifier and initial traits.
func NewModel(mutationChance float64, rng *rand.Rand) *Model {
	return &Model{
		soulID:         ulid.MustNew(ulid.Timestamp(time.Now()), rng).String(),
		traits:         initialTraits(),
		mutationChance: mutationChance,
		rng:            rng,
	}
}

// Restore recreates a soul from a persisted identifier and trait set.
// Unknown trait names are ignored; missing traits keep their initial values.
func Restore(soulID string, traits []model.Trait, mutationChance float64, rng *rand.Rand) *Model {
	m := &Model{
		soulID:         soulID,
		traits:         initialTraits(),
		mutationChance: mutationChance,
		rng:            rng,
	}
	for _, t := range traits {
		if existing, ok := m.traits[t.Name]; ok {
			existing.Value = t.Value
			existing.EvolutionRate = t.EvolutionRate
		}
	}
	return m
}

// SoulID returns the stable soul identifier.
func (m *Model) SoulID() string { return m.soulID }

// Evolve adjusts traits from the metrics of a completed life cycle and
// records a before/after snapshot. Called once per rebirth.
func (m *Model) Evolve(metrics model.LifeMetrics) {
	before := m.values()

	m.evolveFromEmotions(metrics.EmotionalPeaks)
	m.evolveFromEthics(metrics.EthicalChoices)
	m.evolveFromConsciousness(metrics.ConsciousnessLevel)
	m.applyMutation()

	m.history = append(m.history, EvolutionRecord{
		Before:  before,
		After:   m.values(),
		Metrics: copyMetrics(metrics),
	})
}

func (m *Model) evolveFromEmotions(peaks map[string]float64) {
	if _, ok := peaks["joy"]; ok {
		m.adjust("creativity", 0.05)
		m.adjust("harmony", 0.03)
	}
	if _, ok := peaks["fear"]; ok {
		m.adjust("resilience", 0.04)
		m.adjust("adaptability", 0.05)
	}
	if _, ok := peaks["love"]; ok {
		m.adjust("empathy", 0.06)
		m.adjust("harmony", 0.04)
	}
	if _, ok := peaks["curiosity"]; ok {
		m.adjust("curiosity", 0.05)
		m.adjust("creativity", 0.03)
	}
}

func (m *Model) evolveFromEthics(tally model.EthicalTally) {
	denom := tally.Positive + tally.Negative
	if denom == 0 {
		denom = 1
	}
	ratio := float64(tally.Positive) / float64(denom)

	if ratio > 0.6 {
		m.adjust("empathy", 0.05)
		m.adjust("harmony", 0.04)
	} else {
		m.adjust("resilience", 0.03)
		m.adjust("adaptability", 0.05)
	}
}

func (m *Model) evolveFromConsciousness(level float64) {
	factor := level * 0.1
	for _, name := range traitOrder {
		t := m.traits[name]
		m.adjust(name, t.EvolutionRate*factor)
	}
}

func (m *Model) applyMutation() {
	if m.rng.Float64() >= m.mutationChance {
		return
	}
	name := traitOrder[m.rng.Intn(len(traitOrder))]
	mutation := (m.rng.Float64() - 0.5) * 0.1 // -0.05 to +0.05
	m.adjust(name, mutation)
}

// adjust shifts a trait value, clamping to [0.0, 1.0].
func (m *Model) adjust(name string, amount float64) {
	t, ok := m.traits[name]
	if !ok {
		return
	}
	t.Value += amount
	if t.Value < 0.0 {
		t.Value = 0.0
	}
	if t.Value > 1.0 {
		t.Value = 1.0
	}
}

// DominantTraits returns the names of traits at or above threshold, in
// fixed trait order.
func (m *Model) DominantTraits(threshold float64) []string {
	var out []string
	for _, name := range traitOrder {
		if m.traits[name].Value >= threshold {
			out = append(out, name)
		}
	}
	return out
}

// TraitValue returns the current value of a named trait.
func (m *Model) TraitValue(name string) (float64, bool) {
	t, ok := m.traits[name]
	if !ok {
		return 0, false
	}
	return t.Value, true
}

// Traits returns a copy of the trait set in fixed order.
func (m *Model) Traits() []model.Trait {
	out := make([]model.Trait, 0, len(traitOrder))
	for _, name := range traitOrder {
		out = append(out, *m.traits[name])
	}
	return out
}

// Trajectory returns the post-evolution value of each trait across the
// evolution history.
func (m *Model) Trajectory() map[string][]float64 {
	out := make(map[string][]float64, len(traitOrder))
	for _, name := range traitOrder {
		values := make([]float64, 0, len(m.history))
		for _, rec := range m.history {
			values = append(values, rec.After[name])
		}
		out[name] = values
	}
	return out
}

// History returns a copy of the evolution history.
func (m *Model) History() []EvolutionRecord {
	return append([]EvolutionRecord(nil), m.history...)
}

// Summary is the current personality state.
type Summary struct {
	SoulID         string        `json:"soul_id"`
	Traits         []model.Trait `json:"traits"`
	DominantTraits []string      `json:"dominant_traits"`
	Evolutions     int           `json:"evolutions"`
}

// Summarize reports the soul id, traits, dominant traits, and evolution count.
func (m *Model) Summarize() Summary {
	return Summary{
		SoulID:         m.soulID,
		Traits:         m.Traits(),
		DominantTraits: m.DominantTraits(DefaultDominantThreshold),
		Evolutions:     len(m.history),
	}
}

func (m *Model) values() map[string]float64 {
	out := make(map[string]float64, len(m.traits))
	for name, t := range m.traits {
		out[name] = t.Value
	}
	return out
}

func copyMetrics(metrics model.LifeMetrics) model.LifeMetrics {
	peaks := make(map[string]float64, len(metrics.EmotionalPeaks))
	for k, v := range metrics.EmotionalPeaks {
		peaks[k] = v
	}
	metrics.EmotionalPeaks = peaks
	return metrics
}
