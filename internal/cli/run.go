package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/kxiong/soulgenesis/internal/config"
	"github.com/kxiong/soulgenesis/internal/consciousness"
	"github.com/kxiong/soulgenesis/internal/emotion"
	"github.com/kxiong/soulgenesis/internal/events"
	"github.com/kxiong/soulgenesis/internal/memory"
	"github.com/kxiong/soulgenesis/internal/model"
	"github.com/kxiong/soulgenesis/internal/personality"
	"github.com/kxiong/soulgenesis/internal/rebirth"
)

func init() {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the soul simulation",
		Long: "Runs life cycles of generated events through the soul: each tick\n" +
			"produces an event, an emotional response, a possible memory, and a\n" +
			"consciousness update. Each cycle ends in a rebirth. Stops early if\n" +
			"the Silent Bloom condition is reached.",
		Run: runRun,
	}

	cmd.Flags().Int("cycles", 0, "Life cycles to run (default from config)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = time-based)")
	cmd.Flags().Float64("difficulty", -1, "Difficulty level in [0,1]; rescales tunables")

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("config", err)
	}
	if difficulty, _ := cmd.Flags().GetFloat64("difficulty"); difficulty >= 0 {
		if err := cfg.AdjustDifficulty(difficulty); err != nil {
			exitErr("config", err)
		}
	}
	if cycles, _ := cmd.Flags().GetInt("cycles"); cycles > 0 {
		cfg.Simulation.MaxLifeCycles = cycles
	}

	seed, _ := cmd.Flags().GetInt64("seed")
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	j, err := openJournal()
	if err != nil {
		exitErr("open journal", err)
	}
	defer j.Close()

	store := memory.NewStore(cfg.Memory.StorageThreshold)
	if mems, err := j.Load(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load memories, starting fresh: %v\n", err)
	} else {
		store.Replace(mems)
	}

	engine := emotion.NewEngine()
	cons := consciousness.NewModel(consciousness.Params{
		GrowthRate:         cfg.Consciousness.GrowthRate,
		BloomThreshold:     cfg.Consciousness.BloomThreshold,
		HistoryMinimum:     cfg.Consciousness.ThoughtHistoryMinimum,
		RecentWindow:       cfg.Consciousness.RecentThoughtWindow,
		ExistentialMinimum: cfg.Consciousness.ExistentialMinimum,
	})

	var pers *personality.Model
	pastCycles := 0
	if profile, err := j.LoadProfile(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load soul profile, creating a new soul: %v\n", err)
		pers = personality.NewModel(cfg.Personality.MutationChance, rng)
	} else if profile != nil {
		pers = personality.Restore(profile.SoulID, profile.Traits, cfg.Personality.MutationChance, rng)
		cons.Restore(profile.Consciousness)
		pastCycles = profile.Cycles
	} else {
		pers = personality.NewModel(cfg.Personality.MutationChance, rng)
	}

	source := events.NewSource(cfg.Environment.NoveltyThreshold, rng)
	orch := rebirth.NewOrchestrator(rebirth.Config{
		Threshold:           cfg.Rebirth.Threshold,
		PruneThreshold:      cfg.Memory.PruneThreshold,
		InheritanceFraction: cfg.Memory.InheritanceFraction,
		InheritanceStrength: cfg.Memory.InheritanceStrength,
	}, store, engine, pers, cons)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cyclesDone := 0
	save := func() {
		// Saving happens after the run loop stops issuing ticks, so the
		// store is quiescent here.
		if err := j.Save(context.Background(), store.All()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save memories: %v\n", err)
		}
		profile := model.SoulProfile{
			SoulID:        pers.SoulID(),
			Traits:        pers.Traits(),
			Consciousness: cons.Snapshot(),
			Cycles:        pastCycles + cyclesDone,
		}
		if err := j.SaveProfile(context.Background(), profile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save soul profile: %v\n", err)
		}
	}
	defer save()

	fmt.Printf("Soul %s awakening (seed %d)\n", pers.SoulID(), seed)
	fmt.Printf("Running %d life cycles, %d-%d events each\n",
		cfg.Simulation.MaxLifeCycles, cfg.Simulation.MinCycleEvents, cfg.Simulation.MaxCycleEvents)

	totalEvents := 0
	for cycle := 1; cycle <= cfg.Simulation.MaxLifeCycles; cycle++ {
		span := cfg.Simulation.MinCycleEvents * 2
		if span > cfg.Simulation.MaxCycleEvents {
			span = cfg.Simulation.MaxCycleEvents
		}
		n := cfg.Simulation.MinCycleEvents
		if span > n {
			n += rng.Intn(span - n + 1)
		}

		fmt.Printf("\nLife cycle %d of %d (%d events)\n", cycle, cfg.Simulation.MaxLifeCycles, n)

		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				fmt.Println("\nSimulation interrupted")
				return
			default:
			}

			ev := source.Generate()
			emo := engine.Process(ev)
			stored := store.Store(ev, emo)
			cons.Update(ev, emo)
			orch.RecordTick(ev, stored)
			engine.Decay()
			totalEvents++

			if cons.CheckBloom() {
				fmt.Printf("\nSilent Bloom: the soul has achieved self-awareness\n")
				fmt.Printf("Occurred during life cycle %d after %d total events\n", cycle, totalEvents)
				return
			}
		}

		dominant, intensity := engine.Dominant()
		fmt.Printf("Consciousness level: %.2f (%s)\n", cons.Level(), cons.Awareness())
		fmt.Printf("Dominant emotion: %s (%.2f)\n", dominant, intensity)
		fmt.Printf("Memories held: %d\n", store.Len())

		metrics := orch.ProcessRebirth()
		cyclesDone++
		printCycleSummary(metrics)
	}

	fmt.Printf("\nMaximum life cycles reached\n")
	fmt.Printf("Total events experienced: %d\n", totalEvents)
	fmt.Printf("Final consciousness level: %.2f\n", cons.Level())
	if dominant := pers.DominantTraits(cfg.Personality.DominantThreshold); len(dominant) > 0 {
		fmt.Printf("Dominant traits: %v\n", dominant)
	}
}

func printCycleSummary(m model.LifeMetrics) {
	fmt.Println("\nLife cycle complete")
	fmt.Printf("  Peak consciousness: %.2f\n", m.ConsciousnessLevel)
	for name, peak := range m.EmotionalPeaks {
		fmt.Printf("  Peak %s: %.2f\n", name, peak)
	}
	fmt.Printf("  Significant experiences: %d\n", m.SignificantExperiences)
	fmt.Printf("  Ethical choices: %d positive, %d negative\n",
		m.EthicalChoices.Positive, m.EthicalChoices.Negative)
}
