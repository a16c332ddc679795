package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long:  `Load the corpus and report document, chunk and vocabulary counts.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	engine, stats, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	fmt.Printf("Corpus: %s\n", corpusDir())
	fmt.Printf("  Documents:   %d\n", stats.TotalDocs)
	fmt.Printf("  Chunks:      %d\n", stats.TotalChunks)
	fmt.Printf("  Vocabulary:  %d terms\n", stats.VocabSize)
	fmt.Printf("  Searchable:  %v\n", engine.Ready())
	return nil
}
