package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"lexrag/internal/adapter/vectorizer"
	"lexrag/internal/domain"
	"lexrag/internal/port"
)

// New selects an index backend by name. Supported backends are "cosine"
// and "l2"; they implement the same ranking contract.
func New(backend string, vec *vectorizer.TFIDF, log zerolog.Logger) (port.RetrievalIndex, error) {
	switch backend {
	case "cosine", "":
		return NewCosineIndex(vec, log), nil
	case "l2":
		return NewL2Index(vec, log), nil
	default:
		return nil, fmt.Errorf("unknown index backend: %s", backend)
	}
}

// topResults pairs scores with their records and returns the topK highest.
// The sort is stable, so ties keep the original record order and results
// stay deterministic. topK is clamped to the number of records.
func topResults(records []domain.ChunkRecord, scores []float64, topK int) []domain.SearchResult {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}

	results := make([]domain.SearchResult, 0, topK)
	for _, idx := range order[:topK] {
		rec := records[idx]
		results = append(results, domain.SearchResult{
			Score:    scores[idx],
			Source:   rec.Source,
			Text:     rec.Text,
			Metadata: rec.Metadata,
		})
	}
	return results
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
