package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kxiong/soulgenesis/internal/memory"
)

func init() {
	cmd := &cobra.Command{
		Use:   "memories",
		Short: "List the most significant memories",
		Run:   runMemories,
	}

	cmd.Flags().IntP("limit", "l", 10, "Maximum memories to show (0 = all)")

	RootCmd.AddCommand(cmd)
}

func runMemories(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	j, err := openJournal()
	if err != nil {
		exitErr("open journal", err)
	}
	defer j.Close()

	mems, err := j.Load(cmd.Context())
	if err != nil {
		exitErr("load memories", err)
	}

	store := memory.NewStore(memory.DefaultStorageThreshold)
	store.Replace(mems)

	b, _ := json.MarshalIndent(store.Significant(limit), "", "  ")
	fmt.Println(string(b))
}
