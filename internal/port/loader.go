package port

import "lexrag/internal/domain"

// Loader reads a corpus directory into memory.
type Loader interface {
	// Load returns the documents found under dir in a deterministic order.
	// A directory with no loadable documents returns domain.ErrNoDocuments.
	Load(dir string) ([]domain.Document, error)
}
