package usecase

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"lexrag/internal/adapter/cache"
	"lexrag/internal/domain"
	"lexrag/internal/port"
)

// Engine owns the (documents, chunk records, index) triple. Load rebuilds
// the triple wholesale; Search reads it. The triple is guarded by a
// read-write lock so an in-flight search never observes a half-built index.
type Engine struct {
	mu     sync.RWMutex
	loader port.Loader
	index  port.RetrievalIndex
	cache  *cache.QueryCache
	log    zerolog.Logger

	docs    []domain.Document
	records []domain.ChunkRecord
	ready   bool
}

// NewEngine wires the loader and index backend together. cache may be nil
// to disable result memoization.
func NewEngine(loader port.Loader, index port.RetrievalIndex, queryCache *cache.QueryCache, log zerolog.Logger) *Engine {
	return &Engine{
		loader: loader,
		index:  index,
		cache:  queryCache,
		log:    log,
	}
}

// Flatten turns documents into the authoritative chunk record sequence:
// document order first, then within-document chunk order. Position i in
// the result is row i of the vector space.
func Flatten(docs []domain.Document) []domain.ChunkRecord {
	var records []domain.ChunkRecord
	for _, doc := range docs {
		for _, chunk := range doc.Chunks {
			records = append(records, domain.ChunkRecord{
				Source:   doc.Source,
				Text:     chunk.Text,
				Metadata: chunk.Metadata,
			})
		}
	}
	return records
}

// Load reads the corpus directory and rebuilds the whole triple. An empty
// directory returns domain.ErrNoDocuments and leaves the engine unbuilt;
// searches then return empty results instead of failing. A corpus that
// cannot be vectorized is logged and likewise leaves the engine unbuilt,
// so no build failure ever reaches the caller as a hard error.
func (e *Engine) Load(dir string) (domain.Stats, error) {
	docs, err := e.loader.Load(dir)

	e.mu.Lock()
	defer e.mu.Unlock()

	// Discard the previous triple before anything else; a failed reload
	// must not leave stale results reachable.
	e.docs = nil
	e.records = nil
	e.ready = false
	if e.cache != nil {
		e.cache.Invalidate()
	}

	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			_ = e.index.Build(nil)
			return domain.Stats{}, err
		}
		return domain.Stats{}, err
	}

	records := Flatten(docs)
	if err := e.index.Build(records); err != nil {
		e.log.Error().Err(err).Msg("index build failed, search disabled")
		return domain.Stats{TotalDocs: len(docs), TotalChunks: len(records)}, nil
	}

	e.docs = docs
	e.records = records
	e.ready = len(records) > 0

	stats := domain.Stats{
		TotalDocs:   len(docs),
		TotalChunks: len(records),
		VocabSize:   e.index.Dimension(),
	}
	e.log.Info().
		Int("documents", stats.TotalDocs).
		Int("chunks", stats.TotalChunks).
		Int("vocabulary", stats.VocabSize).
		Msg("corpus indexed")
	return stats, nil
}

// Search returns the topK most relevant chunk records for the query.
// It never fails: every degraded state (no corpus loaded, bad topK,
// backend error) is logged and surfaces as an empty result list so the
// caller can always render something.
func (e *Engine) Search(query string, topK int) []domain.SearchResult {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.ready {
		e.log.Warn().Str("query", query).Msg("search before index build")
		return nil
	}
	if topK <= 0 {
		e.log.Warn().Int("top_k", topK).Msg("non-positive top_k")
		return nil
	}

	if e.cache != nil {
		if results, hit := e.cache.Get(query, topK); hit {
			return results
		}
	}

	results, err := e.index.Search(query, topK)
	if err != nil {
		e.log.Error().Err(err).Str("query", query).Msg("search failed")
		return nil
	}

	if e.cache != nil {
		e.cache.Put(query, topK, results)
	}
	return results
}

// Stats reports the currently loaded corpus.
func (e *Engine) Stats() domain.Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.Stats{
		TotalDocs:   len(e.docs),
		TotalChunks: len(e.records),
		VocabSize:   e.index.Dimension(),
	}
}

// Ready reports whether a corpus has been successfully indexed.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ready
}
