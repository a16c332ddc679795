package port

import (
	"context"

	"lexrag/internal/domain"
)

// Synthesizer turns a query and its retrieved passages into a free-text
// answer. It owns prompting, model selection and authentication.
type Synthesizer interface {
	Synthesize(ctx context.Context, query string, passages []domain.SearchResult) (string, error)

	// ModelName returns the name of the underlying model.
	ModelName() string
}
