package cli

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/kxiong/soulgenesis/internal/config"
	"github.com/kxiong/soulgenesis/internal/consciousness"
	"github.com/kxiong/soulgenesis/internal/model"
	"github.com/kxiong/soulgenesis/internal/personality"
)

func init() {
	cmd := &cobra.Command{
		Use:   "traits",
		Short: "Show the persisted soul's personality and awareness",
		Run:   runTraits,
	}

	RootCmd.AddCommand(cmd)
}

// traitsReport is the output of the traits command.
type traitsReport struct {
	SoulID         string             `json:"soul_id"`
	Cycles         int                `json:"cycles"`
	Traits         []model.Trait      `json:"traits"`
	DominantTraits []string           `json:"dominant_traits"`
	Consciousness  float64            `json:"consciousness_level"`
	Awareness      model.Awareness    `json:"awareness"`
	Ethics         map[string]float64 `json:"ethical_framework"`
}

func runTraits(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("config", err)
	}

	j, err := openJournal()
	if err != nil {
		exitErr("open journal", err)
	}
	defer j.Close()

	profile, err := j.LoadProfile(cmd.Context())
	if err != nil {
		exitErr("load profile", err)
	}
	if profile == nil {
		fmt.Println("no soul saved yet; run `soulgenesis run` first")
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pers := personality.Restore(profile.SoulID, profile.Traits, cfg.Personality.MutationChance, rng)

	report := traitsReport{
		SoulID:         profile.SoulID,
		Cycles:         profile.Cycles,
		Traits:         pers.Traits(),
		DominantTraits: pers.DominantTraits(cfg.Personality.DominantThreshold),
		Consciousness:  profile.Consciousness.Level,
		Awareness:      consciousness.TierFor(profile.Consciousness.Level),
		Ethics:         profile.Consciousness.Ethics,
	}

	b, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(b))
}
