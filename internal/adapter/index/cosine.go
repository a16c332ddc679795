// Package index provides the exact nearest-neighbour backends behind the
// RetrievalIndex port. Both backends scan every stored vector; the corpus
// is small enough that no acceleration structure is needed.
package index

import (
	"github.com/rs/zerolog"

	"lexrag/internal/adapter/vectorizer"
	"lexrag/internal/domain"
)

// CosineIndex ranks chunk records by cosine similarity between TF-IDF
// vectors. Stored rows are L2-normalised so the similarity reduces to a
// dot product.
type CosineIndex struct {
	vec     *vectorizer.TFIDF
	records []domain.ChunkRecord
	rows    [][]float64
	log     zerolog.Logger
}

// NewCosineIndex creates an empty cosine-similarity index.
func NewCosineIndex(vec *vectorizer.TFIDF, log zerolog.Logger) *CosineIndex {
	return &CosineIndex{vec: vec, log: log}
}

// Build fits the vector space over the records, replacing any previous
// state. An empty record sequence leaves the index unbuilt.
func (x *CosineIndex) Build(records []domain.ChunkRecord) error {
	x.records = nil
	x.rows = nil

	if len(records) == 0 {
		x.log.Warn().Msg("no chunk records to index")
		return nil
	}

	rows, err := x.vec.Fit(records)
	if err != nil {
		return err
	}

	x.records = records
	x.rows = rows
	x.log.Debug().
		Int("chunks", len(records)).
		Int("vocabulary", x.vec.Dimension()).
		Msg("built cosine index")
	return nil
}

// Search returns the topK records most similar to the query. A query that
// projects to the zero vector scores 0 against every record, so the first
// topK records come back in corpus order.
func (x *CosineIndex) Search(query string, topK int) ([]domain.SearchResult, error) {
	if len(x.rows) == 0 {
		return nil, domain.ErrIndexNotBuilt
	}
	if topK <= 0 {
		return nil, nil
	}

	q := x.vec.Transform(query)
	scores := make([]float64, len(x.rows))
	for i, row := range x.rows {
		scores[i] = dot(row, q)
	}

	return topResults(x.records, scores, topK), nil
}

// Len returns the number of indexed chunk records.
func (x *CosineIndex) Len() int { return len(x.records) }

// Dimension returns the size of the fitted vocabulary.
func (x *CosineIndex) Dimension() int { return x.vec.Dimension() }
