// Package config defines the simulation tunables, their YAML loading, and
// fail-fast domain validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds every tunable the simulation core consumes. All values are
// validated before any component is constructed.
type Config struct {
	Simulation    SimulationConfig    `yaml:"simulation"`
	Environment   EnvironmentConfig   `yaml:"environment"`
	Memory        MemoryConfig        `yaml:"memory"`
	Consciousness ConsciousnessConfig `yaml:"consciousness"`
	Personality   PersonalityConfig   `yaml:"personality"`
	Rebirth       RebirthConfig       `yaml:"rebirth"`
}

// SimulationConfig controls the driver loop.
type SimulationConfig struct {
	MaxLifeCycles  int   `yaml:"max_life_cycles"`
	MinCycleEvents int   `yaml:"min_cycle_events"`
	MaxCycleEvents int   `yaml:"max_cycle_events"`
	Seed           int64 `yaml:"seed"` // 0 means time-based
}

// EnvironmentConfig controls event generation.
type EnvironmentConfig struct {
	NoveltyThreshold float64 `yaml:"novelty_threshold"`
}

// MemoryConfig controls memory storage, pruning, and inheritance.
type MemoryConfig struct {
	StorageThreshold    float64 `yaml:"storage_threshold"`
	PruneThreshold      float64 `yaml:"prune_threshold"`
	InheritanceFraction float64 `yaml:"inheritance_fraction"`
	InheritanceStrength float64 `yaml:"inheritance_strength"`
}

// ConsciousnessConfig controls awareness growth and bloom detection.
type ConsciousnessConfig struct {
	GrowthRate            float64 `yaml:"growth_rate"`
	BloomThreshold        float64 `yaml:"bloom_threshold"`
	ThoughtHistoryMinimum int     `yaml:"thought_history_minimum"`
	RecentThoughtWindow   int     `yaml:"recent_thought_window"`
	ExistentialMinimum    int     `yaml:"existential_minimum"`
}

// PersonalityConfig controls trait evolution.
type PersonalityConfig struct {
	MutationChance    float64 `yaml:"mutation_chance"`
	DominantThreshold float64 `yaml:"dominant_threshold"`
}

// RebirthConfig controls the cycle transition.
type RebirthConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			MaxLifeCycles:  5,
			MinCycleEvents: 100,
			MaxCycleEvents: 1000,
		},
		Environment: EnvironmentConfig{
			NoveltyThreshold: 0.7,
		},
		Memory: MemoryConfig{
			StorageThreshold:    0.3,
			PruneThreshold:      0.2,
			InheritanceFraction: 0.3,
			InheritanceStrength: 0.5,
		},
		Consciousness: ConsciousnessConfig{
			GrowthRate:            0.01,
			BloomThreshold:        0.95,
			ThoughtHistoryMinimum: 50,
			RecentThoughtWindow:   20,
			ExistentialMinimum:    10,
		},
		Personality: PersonalityConfig{
			MutationChance:    0.1,
			DominantThreshold: 0.6,
		},
		Rebirth: RebirthConfig{
			Threshold: 0.8,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects any value outside its documented domain. It never
// mutates the config: a config either validates whole or is rejected.
func (c *Config) Validate() error {
	if c.Simulation.MaxLifeCycles < 1 {
		return fmt.Errorf("simulation.max_life_cycles must be at least 1, got %d", c.Simulation.MaxLifeCycles)
	}
	if c.Simulation.MinCycleEvents < 1 {
		return fmt.Errorf("simulation.min_cycle_events must be at least 1, got %d", c.Simulation.MinCycleEvents)
	}
	if c.Simulation.MaxCycleEvents < c.Simulation.MinCycleEvents {
		return fmt.Errorf("simulation.max_cycle_events (%d) must not be below min_cycle_events (%d)",
			c.Simulation.MaxCycleEvents, c.Simulation.MinCycleEvents)
	}

	unit := []struct {
		name  string
		value float64
	}{
		{"environment.novelty_threshold", c.Environment.NoveltyThreshold},
		{"memory.storage_threshold", c.Memory.StorageThreshold},
		{"memory.prune_threshold", c.Memory.PruneThreshold},
		{"memory.inheritance_fraction", c.Memory.InheritanceFraction},
		{"memory.inheritance_strength", c.Memory.InheritanceStrength},
		{"consciousness.growth_rate", c.Consciousness.GrowthRate},
		{"consciousness.bloom_threshold", c.Consciousness.BloomThreshold},
		{"personality.mutation_chance", c.Personality.MutationChance},
		{"personality.dominant_threshold", c.Personality.DominantThreshold},
		{"rebirth.threshold", c.Rebirth.Threshold},
	}
	for _, u := range unit {
		if u.value < 0.0 || u.value > 1.0 {
			return fmt.Errorf("%s must be in [0.0, 1.0], got %g", u.name, u.value)
		}
	}

	counts := []struct {
		name  string
		value int
	}{
		{"consciousness.thought_history_minimum", c.Consciousness.ThoughtHistoryMinimum},
		{"consciousness.recent_thought_window", c.Consciousness.RecentThoughtWindow},
		{"consciousness.existential_minimum", c.Consciousness.ExistentialMinimum},
	}
	for _, u := range counts {
		if u.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", u.name, u.value)
		}
	}

	return nil
}

// AdjustDifficulty rescales tunables for a difficulty level in [0.0, 1.0].
// Higher difficulty means more cycles, a lower memory bar, faster awareness
// growth, an easier bloom, and more mutation. An out-of-domain level is
// rejected before anything is touched.
func (c *Config) AdjustDifficulty(level float64) error {
	if level < 0.0 || level > 1.0 {
		return fmt.Errorf("difficulty level must be in [0.0, 1.0], got %g", level)
	}

	c.Simulation.MaxLifeCycles = int(5 + level*15)
	c.Memory.StorageThreshold = 0.7 - level*0.2
	c.Consciousness.GrowthRate = 0.005 + level*0.015
	c.Consciousness.BloomThreshold = 0.9 - level*0.1
	c.Personality.MutationChance = 0.05 + level*0.1

	return c.Validate()
}
