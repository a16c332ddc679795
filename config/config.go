package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for lexrag.
type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Vectorizer VectorizerConfig `yaml:"vectorizer"`
	Retrieve   RetrieveConfig   `yaml:"retrieve"`
	LLM        LLMConfig        `yaml:"llm"`
	Cache      CacheConfig      `yaml:"cache"`
	History    HistoryConfig    `yaml:"history"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CorpusConfig locates the pre-chunked document records.
type CorpusConfig struct {
	Dir      string   `yaml:"dir"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// VectorizerConfig holds TF-IDF parameters.
type VectorizerConfig struct {
	MaxFeatures int `yaml:"max_features"`
}

// RetrieveConfig holds search parameters.
type RetrieveConfig struct {
	TopK     int     `yaml:"top_k"`
	Backend  string  `yaml:"backend"` // "cosine" or "l2"
	MinScore float64 `yaml:"min_score"`
}

// LLMConfig configures the answer synthesizer.
type LLMConfig struct {
	Model       string `yaml:"model"`
	APIKeyEnv   string `yaml:"api_key_env"`
	BaseURL     string `yaml:"base_url"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// CacheConfig configures search result memoization.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries"`
	TTLSecs    int `yaml:"ttl_secs"`
}

// HistoryConfig configures the answer log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			Dir:      "processed_data",
			Includes: []string{"**/*.json"},
		},
		Vectorizer: VectorizerConfig{
			MaxFeatures: 5000,
		},
		Retrieve: RetrieveConfig{
			TopK:    3,
			Backend: "cosine",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			TimeoutSecs: 60,
		},
		Cache: CacheConfig{
			MaxEntries: 100,
			TTLSecs:    300,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for lexrag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "lexrag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".lexrag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// HistoryDBPath returns the path to the answer-history database.
func HistoryDBPath(dir string) string {
	return filepath.Join(dir, ".lexrag", "history.db")
}

// EnsureStateDir ensures the .lexrag directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".lexrag"), 0755)
}
