package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lexrag/config"
	"lexrag/internal/adapter/llm"
	"lexrag/internal/adapter/store"
	"lexrag/internal/port"
	"lexrag/internal/usecase"
)

var (
	askText string
	askTopK int
	askMock bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a question from the corpus with a generative model",
	Long: `Retrieve the most relevant passages for a question and forward them to a
generative model for a cited answer. The API key is read from the
environment variable named in the llm config section.

Examples:
  lexrag ask -q "apakah kontrak kerja harus tertulis?"
  lexrag ask -q "berapa upah minimum?" --top-k 5`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askText, "query", "q", "", "question to answer (required)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of passages to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askMock, "mock", false, "use the offline mock synthesizer")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, _, err := buildEngine()
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	var synth port.Synthesizer
	if askMock {
		synth = llm.NewMockSynthesizer()
	} else {
		synth, err = llm.NewOpenAISynthesizer(cfg.LLM.APIKeyEnv, cfg.LLM.Model, cfg.LLM.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to create synthesizer: %w", err)
		}
	}

	var history *store.HistoryStore
	if cfg.History.Enabled {
		path := cfg.History.Path
		if path == "" {
			if err := config.EnsureStateDir(rootDir); err != nil {
				return fmt.Errorf("failed to create state directory: %w", err)
			}
			path = config.HistoryDBPath(rootDir)
		}
		history, err = store.OpenHistory(path)
		if err != nil {
			log.Warn().Err(err).Msg("answer history disabled")
		} else {
			defer history.Close()
		}
	}

	askUC := usecase.NewAskUseCase(engine, synth, history, cfg.Retrieve.MinScore, log)

	topK := cfg.Retrieve.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	timeout := time.Duration(cfg.LLM.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	answer := askUC.Ask(ctx, askText, topK)

	fmt.Println(answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range answer.Sources {
			fmt.Printf("  - %s p.%d-%d (score: %.4f)\n",
				s.Source, s.Metadata.PageStart, s.Metadata.PageEnd, s.Score)
		}
	}

	return nil
}
