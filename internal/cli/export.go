package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the memory journey as JSONL",
		Long:  "Writes every persisted memory as one JSON object per line, in journal order.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	j, err := openJournal()
	if err != nil {
		exitErr("open journal", err)
	}
	defer j.Close()

	mems, err := j.Load(cmd.Context())
	if err != nil {
		exitErr("load memories", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, m := range mems {
		if err := enc.Encode(m); err != nil {
			exitErr("encode memory", err)
		}
	}
	fmt.Fprintf(os.Stderr, "exported %d memories\n", len(mems))
}
