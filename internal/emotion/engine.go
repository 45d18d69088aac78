// Package emotion maps life events to emotional responses and maintains a
// decaying multi-emotion state.
package emotion

import (
	"time"

	"github.com/kxiong/soulgenesis/internal/model"
)

const (
	// DefaultDecayRate is the per-tick intensity reduction factor fixed on
	// each record at creation.
	DefaultDecayRate = 0.1
	// DefaultPersistenceFloor is the intensity below which a decayed emotion
	// drops out of the current state.
	DefaultPersistenceFloor = 0.1
	// Neutral is the sentinel returned by Dominant when no emotion is active.
	Neutral = "neutral"
)

// kindEmotions maps each event kind to its emotional response. Kinds outside
// the closed set fall back to wonder.
var kindEmotions = map[model.EventKind]string{
	model.KindChallenge:  "fear",
	model.KindDiscovery:  "curiosity",
	model.KindConnection: "love",
	model.KindLoss:       "sadness",
	model.KindGrowth:     "joy",
	model.KindReflection: "wonder",
}

const fallbackEmotion = "wonder"

// Engine holds the current emotional state (at most one record per emotion
// name) and an append-only history of every record produced.
type Engine struct {
	decayRate        float64
	persistenceFloor float64
	current          map[string]model.Emotion
	order            []string // first-seen order of current emotions
	history          []model.Emotion
}

// NewEngine creates an empty emotion engine with default decay parameters.
func NewEngine() *Engine {
	return &Engine{
		decayRate:        DefaultDecayRate,
		persistenceFloor: DefaultPersistenceFloor,
		current:          make(map[string]model.Emotion),
	}
}

// Process generates the emotional response to an event. The record becomes
// the current record for its emotion name, overwriting any prior one, and is
// appended to the history.
func (e *Engine) Process(ev model.Event) model.Emotion {
	name, ok := kindEmotions[ev.Kind]
	if !ok {
		name = fallbackEmotion
	}

	intensity := ev.Significance
	if intensity > 1.0 {
		intensity = 1.0
	}

	rec := model.Emotion{
		Name:      name,
		Intensity: intensity,
		Trigger:   ev.Kind,
		DecayRate: e.decayRate,
		Timestamp: time.Now(),
	}

	if _, exists := e.current[name]; !exists {
		e.order = append(e.order, name)
	}
	e.current[name] = rec
	e.history = append(e.history, rec)
	return rec
}

// Decay applies one decay pass to every current emotion. Records whose
// reduced intensity does not exceed the persistence floor are dropped from
// the current state; their history entries are untouched.
func (e *Engine) Decay() {
	kept := make([]string, 0, len(e.order))
	for _, name := range e.order {
		rec := e.current[name]
		rec.Intensity *= 1 - rec.DecayRate
		if rec.Intensity > e.persistenceFloor {
			e.current[name] = rec
			kept = append(kept, name)
		} else {
			delete(e.current, name)
		}
	}
	e.order = kept
}

// Dominant returns the current emotion of maximum intensity. Ties resolve to
// the first-seen emotion. With no current emotions it returns the neutral
// sentinel.
func (e *Engine) Dominant() (string, float64) {
	if len(e.order) == 0 {
		return Neutral, 0.0
	}
	name := e.order[0]
	best := e.current[name].Intensity
	for _, n := range e.order[1:] {
		if rec := e.current[n]; rec.Intensity > best {
			name, best = n, rec.Intensity
		}
	}
	return name, best
}

// State returns the current emotional state as name to intensity.
func (e *Engine) State() map[string]float64 {
	state := make(map[string]float64, len(e.current))
	for name, rec := range e.current {
		state[name] = rec.Intensity
	}
	return state
}

// History returns a copy of every emotion record ever produced.
func (e *Engine) History() []model.Emotion {
	return append([]model.Emotion(nil), e.history...)
}

// Reset discards all state, current and history, as happens at rebirth.
func (e *Engine) Reset() {
	e.current = make(map[string]model.Emotion)
	e.order = nil
	e.history = nil
}
