package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"lexrag/internal/adapter/analyzer"
	"lexrag/internal/adapter/cache"
	"lexrag/internal/adapter/corpus"
	"lexrag/internal/adapter/index"
	"lexrag/internal/adapter/vectorizer"
	"lexrag/internal/domain"
	"lexrag/internal/usecase"
)

// corpusDir resolves the configured corpus directory against the root dir.
func corpusDir() string {
	dir := cfg.Corpus.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(rootDir, dir)
	}
	return dir
}

// buildEngine assembles the retrieval engine from config and loads the
// corpus, showing a progress bar. Returns the engine and its load stats;
// an empty corpus is reported but not fatal.
func buildEngine() (*usecase.Engine, domain.Stats, error) {
	vec := vectorizer.NewTFIDF(analyzer.NewTokenizer(), cfg.Vectorizer.MaxFeatures)
	idx, err := index.New(cfg.Retrieve.Backend, vec, log)
	if err != nil {
		return nil, domain.Stats{}, err
	}

	loader := corpus.NewLoader(cfg.Corpus.Includes, cfg.Corpus.Excludes, log)

	var bar *progressbar.ProgressBar
	loader.OnProgress(func(loaded, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Loading corpus"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(loaded)
	})

	queryCache := cache.NewQueryCache(cfg.Cache.MaxEntries, time.Duration(cfg.Cache.TTLSecs)*time.Second)
	engine := usecase.NewEngine(loader, idx, queryCache, log)

	stats, err := engine.Load(corpusDir())
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			fmt.Printf("No documents found in %s. Searches will return nothing.\n", corpusDir())
			return engine, stats, nil
		}
		return nil, domain.Stats{}, err
	}

	return engine, stats, nil
}
