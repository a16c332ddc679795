package index

import (
	"github.com/rs/zerolog"

	"lexrag/internal/adapter/vectorizer"
	"lexrag/internal/domain"
)

// L2Index ranks chunk records by Euclidean distance over the same TF-IDF
// vectors, mapped to a similarity with 1/(1+distance) so callers always
// see higher-is-better scores regardless of the backend.
type L2Index struct {
	vec     *vectorizer.TFIDF
	records []domain.ChunkRecord
	rows    [][]float64
	log     zerolog.Logger
}

// NewL2Index creates an empty distance-based index.
func NewL2Index(vec *vectorizer.TFIDF, log zerolog.Logger) *L2Index {
	return &L2Index{vec: vec, log: log}
}

// Build fits the vector space over the records, replacing any previous
// state. An empty record sequence leaves the index unbuilt.
func (x *L2Index) Build(records []domain.ChunkRecord) error {
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
		Msg("built l2 index")
	return nil
}

// Search returns the topK records closest to the query in L2 distance,
// scored as 1/(1+distance).
func (x *L2Index) Search(query string, topK int) ([]domain.SearchResult, error) {
	if len(x.rows) == 0 {
		return nil, domain.ErrIndexNotBuilt
	}
	if topK <= 0 {
		return nil, nil
	}

	q := x.vec.Transform(query)
	scores := make([]float64, len(x.rows))
	for i, row := range x.rows {
		scores[i] = 1 / (1 + euclidean(row, q))
	}

	return topResults(x.records, scores, topK), nil
}

// Len returns the number of indexed chunk records.
func (x *L2Index) Len() int { return len(x.records) }

// Dimension returns the size of the fitted vocabulary.
func (x *L2Index) Dimension() int { return x.vec.Dimension() }
