package port

import "lexrag/internal/domain"

// RetrievalIndex answers nearest-neighbour queries over a fixed chunk
// corpus. Build replaces the entire index; there is no incremental path.
// Backends (exact cosine scan, distance-based scan) are interchangeable
// behind this interface.
type RetrievalIndex interface {
	// Build fits the vector space over the flattened chunk records.
	// An empty record sequence leaves the index unbuilt.
	Build(records []domain.ChunkRecord) error

	// Search projects the query into the frozen vector space and returns
	// the topK highest-scoring records, ties broken by record order.
	// Returns domain.ErrIndexNotBuilt when no corpus has been indexed.
	Search(query string, topK int) ([]domain.SearchResult, error)

	// Len returns the number of indexed chunk records.
	Len() int

	// Dimension returns the size of the fitted vocabulary.
	Dimension() int
}

// Searcher is the read side of the engine, consumed by the answer layer.
// It never fails: degraded states surface as an empty result list.
type Searcher interface {
	Search(query string, topK int) []domain.SearchResult
}
