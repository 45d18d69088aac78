// Package rebirth drives the cycle-to-cycle transition: metric aggregation,
// memory pruning and inheritance, emotional reset, personality evolution,
// and partial consciousness reset.
package rebirth

import (
	"github.com/kxiong/soulgenesis/internal/consciousness"
	"github.com/kxiong/soulgenesis/internal/emotion"
	"github.com/kxiong/soulgenesis/internal/memory"
	"github.com/kxiong/soulgenesis/internal/model"
	"github.com/kxiong/soulgenesis/internal/personality"
)

// State is the orchestrator's lifecycle state.
type State int

const (
	// StateAlive is normal tick processing.
	StateAlive State = iota
	// StateTransitioning is set only for the duration of a rebirth.
	StateTransitioning
)

func (s State) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// Config holds the rebirth tunables.
type Config struct {
	// Threshold scales the post-rebirth consciousness level: the level is
	// reset to Threshold * 0.5.
	Threshold           float64
	PruneThreshold      float64
	InheritanceFraction float64
	InheritanceStrength float64
}

// DefaultConfig returns the standard rebirth tunables.
func DefaultConfig() Config {
	return Config{
		Threshold:           0.8,
		PruneThreshold:      0.2,
		InheritanceFraction: 0.3,
		InheritanceStrength: 0.5,
	}
}

// Orchestrator composes the soul's components and performs the atomic
// rebirth transition between life cycles.
type Orchestrator struct {
	cfg           Config
	memories      *memory.Store
	emotions      *emotion.Engine
	personality   *personality.Model
	consciousness *consciousness.Model

	state   State
	metrics model.LifeMetrics
}

// NewOrchestrator wires the soul's components into an orchestrator with a
// fresh metrics accumulator.
func NewOrchestrator(
	cfg Config,
	memories *memory.Store,
	emotions *emotion.Engine,
	pers *personality.Model,
	cons *consciousness.Model,
) *Orchestrator {
	return &Orchestrator{
		cfg:           cfg,
		memories:      memories,
		emotions:      emotions,
		personality:   pers,
		consciousness: cons,
		state:         StateAlive,
		metrics:       model.NewLifeMetrics(),
	}
}

// RecordTick folds one processed tick into the current cycle's metrics:
// duration, significant-experience count, ethical tally, emotional peaks,
// and the latest consciousness level.
func (o *Orchestrator) RecordTick(ev model.Event, stored bool) {
	o.metrics.LifeDuration++
	if stored {
		o.metrics.SignificantExperiences++
	}
	if ev.EthicalImpact > 0 {
		o.metrics.EthicalChoices.Positive++
	} else if ev.EthicalImpact < 0 {
		o.metrics.EthicalChoices.Negative++
	}
	for name, intensity := range o.emotions.State() {
		if intensity > o.metrics.EmotionalPeaks[name] {
			o.metrics.EmotionalPeaks[name] = intensity
		}
	}
	o.metrics.ConsciousnessLevel = o.consciousness.Level()
}

// Metrics returns a copy of the current cycle's accumulated metrics.
func (o *Orchestrator) Metrics() model.LifeMetrics {
	m := o.metrics
	peaks := make(map[string]float64, len(m.EmotionalPeaks))
	for k, v := range m.EmotionalPeaks {
		peaks[k] = v
	}
	m.EmotionalPeaks = peaks
	return m
}

// State returns the orchestrator's current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// ProcessRebirth performs the full end-of-cycle transition and returns the
// completed cycle's metrics. The inherited set is selected from the
// pre-prune population and applied strictly after pruning, so inherited
// memories are not immediately discarded. The sequence runs to completion;
// no partial-rebirth state is observable afterwards.
func (o *Orchestrator) ProcessRebirth() model.LifeMetrics {
	o.state = StateTransitioning

	completed := o.Metrics()

	inherited := o.memories.SelectForInheritance(o.cfg.InheritanceFraction)
	o.memories.Prune(o.cfg.PruneThreshold)
	o.memories.Inherit(inherited, o.cfg.InheritanceStrength)

	o.emotions.Reset()
	o.personality.Evolve(completed)
	o.metrics = model.NewLifeMetrics()
	o.consciousness.Adjust(o.cfg.Threshold * 0.5)

	o.state = StateAlive
	return completed
}
