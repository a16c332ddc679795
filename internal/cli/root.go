package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lexrag/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	log     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lexrag",
	Short: "Retrieval-augmented question answering over a legal document corpus",
	Long: `lexrag indexes a directory of pre-chunked legal documents with TF-IDF,
retrieves the most relevant passages for a question by vector similarity,
and can forward them to a generative model for a cited answer.

Example usage:
  lexrag query -q "upah minimum"        # Search the corpus
  lexrag ask -q "berapa upah minimum?"  # Generate a cited answer
  lexrag stats                          # Show corpus statistics`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log = newLogger(cfg.Logging.Level)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./lexrag.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}
