package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lexrag/config"
	"lexrag/internal/adapter/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previously answered questions",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := cfg.History.Path
	if path == "" {
		path = config.HistoryDBPath(rootDir)
	}

	history, err := store.OpenHistory(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer history.Close()

	entries, err := history.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No answered questions yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("[%s] %s\n", e.AskedAt.Format("2006-01-02 15:04"), e.Query)
		answer := e.Answer
		if len(answer) > 200 {
			answer = answer[:200] + "..."
		}
		fmt.Printf("  %s\n", answer)
		for _, s := range e.Sources {
			fmt.Printf("  - %s p.%d-%d\n", s.Source, s.Metadata.PageStart, s.Metadata.PageEnd)
		}
		fmt.Println()
	}

	return nil
}
