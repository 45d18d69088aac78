package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kxiong/soulgenesis/internal/memory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: "Recall memories by emotion",
		Long: "Returns persisted memories tagged with the given emotion at or above\n" +
			"the intensity threshold, most significant first. Recall counts are\n" +
			"incremented and written back to the journal.",
		Run: runRecall,
	}

	cmd.Flags().StringP("emotion", "e", "", "Emotion name (required)")
	cmd.Flags().Float64P("threshold", "t", 0.5, "Minimum tagged intensity")

	cmd.MarkFlagRequired("emotion")

	RootCmd.AddCommand(cmd)
}

func runRecall(cmd *cobra.Command, args []string) {
	emotion, _ := cmd.Flags().GetString("emotion")
	threshold, _ := cmd.Flags().GetFloat64("threshold")

	j, err := openJournal()
	if err != nil {
		exitErr("open journal", err)
	}
	defer j.Close()

	store := memory.NewStore(memory.DefaultStorageThreshold)
	if mems, err := j.Load(cmd.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load memories: %v\n", err)
	} else {
		store.Replace(mems)
	}

	recalled := store.Recall(emotion, threshold)

	// Persist the incremented recall counts.
	if err := j.Save(cmd.Context(), store.All()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save recall counts: %v\n", err)
	}

	b, _ := json.MarshalIndent(recalled, "", "  ")
	fmt.Println(string(b))
}
