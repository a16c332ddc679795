package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	queryText string
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the corpus for relevant passages",
	Long: `Search the loaded corpus for the passages most relevant to a question,
ranked by vector similarity.

Examples:
  lexrag query -q "upah minimum"
  lexrag query -q "sanksi pidana" --top-k 5 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	engine, _, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	results := engine.Search(queryText, topK)

	if queryJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(results), queryText)
	for i, r := range results {
		fmt.Printf("--- [%d] %s p.%d-%d (score: %.4f) ---\n",
			i+1, r.Source, r.Metadata.PageStart, r.Metadata.PageEnd, r.Score)
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
