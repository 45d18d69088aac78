// Package cli implements the soulgenesis CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kxiong/soulgenesis/internal/memory"
)

var (
	dbPath     string
	configPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "soulgenesis",
	Short: "A soul rebirth-cycle simulator",
	Long: "Simulates a single soul living through cycles of generated experiences,\n" +
		"accumulating emotional and consciousness state that partially survives\n" +
		"rebirth. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Journal path (default: $SOULGENESIS_DB or ~/.soulgenesis/soul.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config path (default: built-in defaults)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("SOULGENESIS_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".soulgenesis", "soul.db")
}

func openJournal() (*memory.Journal, error) {
	j, err := memory.OpenJournal(getDBPath())
	if err != nil {
		return nil, err
	}
	if j.Warning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", j.Warning)
	}
	return j, nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
