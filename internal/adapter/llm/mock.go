package llm

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"lexrag/internal/domain"
)

// MockSynthesizer produces a deterministic answer from the retrieved
// passages without calling any model. Used in tests and offline runs.
type MockSynthesizer struct {
	// Err, when set, is returned by every Synthesize call.
	Err error
}

// NewMockSynthesizer creates a mock that always succeeds.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize echoes the query and cites each passage's source.
func (s *MockSynthesizer) Synthesize(_ context.Context, query string, passages []domain.SearchResult) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Answer to %q based on %d passages:", query, len(passages))
	for _, p := range passages {
		fmt.Fprintf(&b, " [%s p.%d-%d]", filepath.Base(p.Source), p.Metadata.PageStart, p.Metadata.PageEnd)
	}
	return b.String(), nil
}

// ModelName identifies the mock.
func (s *MockSynthesizer) ModelName() string { return "mock" }
