// Package consciousness tracks a soul's awareness level, thought stream, and
// ethical framework, and detects the Silent Bloom condition.
package consciousness

import (
	"strings"
	"time"

	"github.com/kxiong/soulgenesis/internal/model"
)

// Ethical framework dimensions. The four values are re-normalized to sum to
// 1.0 after any update that touches them.
const (
	DimEmpathy          = "empathy"
	DimSelfPreservation = "self_preservation"
	DimCuriosity        = "curiosity"
	DimHarmony          = "harmony"
)

const (
	initialLevel = 0.1

	noveltyBonus      = 0.2
	familiarityBonus  = 0.05
	empathyDelta      = 0.05
	harmonyDelta      = 0.03
	preservationDelta = 0.02

	// Maturity floors checked before the final bloom gates.
	empathyFloor = 0.3
	harmonyFloor = 0.25
	// Final bloom gates.
	empathyGate = 0.6
	harmonyGate = 0.5
)

// existentialMarkers are matched case-insensitively against recent thoughts
// when checking bloom conditions.
var existentialMarkers = []string{
	"who am i",
	"why do i",
	"what is my purpose",
	"consciousness",
	"existence",
}

// Params are the tunables of the consciousness model.
type Params struct {
	GrowthRate         float64
	BloomThreshold     float64
	HistoryMinimum     int // thought-history entries required for bloom
	RecentWindow       int // trailing thoughts inspected for markers
	ExistentialMinimum int // marker-bearing thoughts required in the window
}

// DefaultParams returns the standard consciousness tunables.
func DefaultParams() Params {
	return Params{
		GrowthRate:         0.01,
		BloomThreshold:     0.95,
		HistoryMinimum:     50,
		RecentWindow:       20,
		ExistentialMinimum: 10,
	}
}

// Model is the consciousness state of a single soul. The thought history and
// ethical framework survive rebirth; the level is only partially reset.
type Model struct {
	params         Params
	level          float64
	awareness      model.Awareness
	activeThoughts []string
	thoughts       []model.ThoughtRecord
	ethics         map[string]float64
}

// NewModel creates a consciousness model at base awareness.
func NewModel(params Params) *Model {
	m := &Model{
		params: params,
		level:  initialLevel,
		ethics: map[string]float64{
			DimEmpathy:          0.1,
			DimSelfPreservation: 0.5,
			DimCuriosity:        0.3,
			DimHarmony:          0.2,
		},
	}
	m.awareness = TierFor(m.level)
	return m
}

// Update processes one (event, emotion) experience: raises the level, emits
// tier-appropriate thoughts, and evolves the ethical framework.
func (m *Model) Update(ev model.Event, emo model.Emotion) {
	delta := ev.Significance*m.params.GrowthRate + emo.Intensity*m.params.GrowthRate
	if ev.IsNovel {
		delta += noveltyBonus
	} else {
		delta += familiarityBonus
	}
	m.level += delta
	if m.level > 1.0 {
		m.level = 1.0
	}

	m.think(ev)
	m.evolveEthics(ev)
	m.awareness = TierFor(m.level)
}

// think emits thoughts tiered by the current level and records them in both
// the active sequence and the cross-life history.
func (m *Model) think(ev model.Event) {
	var thoughts []string
	switch {
	case m.level > 0.7:
		thoughts = []string{
			"Who am I beyond these experiences?",
			"Why do these memories feel both familiar and distant?",
		}
	case m.level > 0.5:
		thoughts = []string{"These feelings seem meaningful..."}
	case m.level > 0.3:
		thoughts = []string{"This experience affects me..."}
	}

	now := time.Now()
	for _, t := range thoughts {
		m.activeThoughts = append(m.activeThoughts, t)
		m.thoughts = append(m.thoughts, model.ThoughtRecord{Text: t, Timestamp: now})
	}
}

// evolveEthics adjusts the framework when the event carries a nonzero
// ethical impact, then re-normalizes the four dimensions to sum to 1.0.
func (m *Model) evolveEthics(ev model.Event) {
	switch {
	case ev.EthicalImpact > 0:
		m.ethics[DimEmpathy] += empathyDelta
		m.ethics[DimHarmony] += harmonyDelta
	case ev.EthicalImpact < 0:
		m.ethics[DimSelfPreservation] += preservationDelta
	default:
		return
	}

	total := 0.0
	for _, v := range m.ethics {
		total += v
	}
	for k, v := range m.ethics {
		m.ethics[k] = v / total
	}
}

// TierFor derives the awareness tier from a consciousness level.
func TierFor(level float64) model.Awareness {
	switch {
	case level >= 0.85:
		return model.AwarenessTranscendent
	case level >= 0.6:
		return model.AwarenessSelfAware
	case level >= 0.3:
		return model.AwarenessEmotional
	default:
		return model.AwarenessBase
	}
}

// CheckBloom reports whether the Silent Bloom conditions all hold: level at
// the bloom threshold, a rich thought history, a mature ethical framework,
// a dense run of existential thoughts, and high empathy and harmony. Once
// true, the simulation should stop entirely.
func (m *Model) CheckBloom() bool {
	if m.level < m.params.BloomThreshold {
		return false
	}
	if len(m.thoughts) < m.params.HistoryMinimum {
		return false
	}
	if m.ethics[DimEmpathy] <= empathyFloor || m.ethics[DimHarmony] <= harmonyFloor {
		return false
	}

	start := len(m.thoughts) - m.params.RecentWindow
	if start < 0 {
		start = 0
	}
	existential := 0
	for _, t := range m.thoughts[start:] {
		if isExistential(t.Text) {
			existential++
		}
	}
	if existential < m.params.ExistentialMinimum {
		return false
	}

	return m.ethics[DimEmpathy] >= empathyGate && m.ethics[DimHarmony] >= harmonyGate
}

func isExistential(thought string) bool {
	lower := strings.ToLower(thought)
	for _, marker := range existentialMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Level returns the current consciousness level.
func (m *Model) Level() float64 { return m.level }

// Awareness returns the current awareness tier.
func (m *Model) Awareness() model.Awareness { return m.awareness }

// Adjust resets the level to newLevel clamped to [0.1, 1.0] and re-derives
// the awareness tier. Used during rebirth; thoughts and ethics are untouched.
func (m *Model) Adjust(newLevel float64) {
	if newLevel < 0.1 {
		newLevel = 0.1
	}
	if newLevel > 1.0 {
		newLevel = 1.0
	}
	m.level = newLevel
	m.awareness = TierFor(m.level)
}

// Ethics returns a copy of the ethical framework.
func (m *Model) Ethics() map[string]float64 {
	out := make(map[string]float64, len(m.ethics))
	for k, v := range m.ethics {
		out[k] = v
	}
	return out
}

// ActiveThoughts returns the inner monologue of the current life.
func (m *Model) ActiveThoughts() []string {
	return append([]string(nil), m.activeThoughts...)
}

// ThoughtCount returns the size of the cross-life thought history.
func (m *Model) ThoughtCount() int { return len(m.thoughts) }

// Snapshot captures the persistable state of the model.
func (m *Model) Snapshot() model.ConsciousnessSnapshot {
	return model.ConsciousnessSnapshot{
		Level:          m.level,
		ActiveThoughts: append([]string(nil), m.activeThoughts...),
		Ethics:         m.Ethics(),
		Thoughts:       append([]model.ThoughtRecord(nil), m.thoughts...),
	}
}

// Restore replaces the model state with a snapshot, taken as-is, and
// re-derives the awareness tier.
func (m *Model) Restore(snap model.ConsciousnessSnapshot) {
	m.level = snap.Level
	m.activeThoughts = append([]string(nil), snap.ActiveThoughts...)
	m.thoughts = append([]model.ThoughtRecord(nil), snap.Thoughts...)
	if len(snap.Ethics) > 0 {
		m.ethics = make(map[string]float64, len(snap.Ethics))
		for k, v := range snap.Ethics {
			m.ethics[k] = v
		}
	}
	m.awareness = TierFor(m.level)
}
