package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"lexrag/internal/adapter/llm"
	"lexrag/internal/adapter/store"
	"lexrag/internal/domain"
)

// fixedSearcher returns the same results for every query.
type fixedSearcher struct {
	results []domain.SearchResult
}

func (s *fixedSearcher) Search(string, int) []domain.SearchResult {
	return s.results
}

func passages() []domain.SearchResult {
	return []domain.SearchResult{
		{Score: 0.8, Source: "uu.pdf", Text: "upah minimum diatur pemerintah", Metadata: domain.ChunkMetadata{PageStart: 3, PageEnd: 4}},
		{Score: 0.1, Source: "kuhp.pdf", Text: "sanksi pidana", Metadata: domain.ChunkMetadata{PageStart: 9, PageEnd: 9}},
	}
}

func TestAskSynthesizesFromPassages(t *testing.T) {
	uc := NewAskUseCase(&fixedSearcher{results: passages()}, llm.NewMockSynthesizer(), nil, 0, zerolog.Nop())

	answer := uc.Ask(context.Background(), "berapa upah minimum", 2)

	if !strings.Contains(answer.Text, "berapa upah minimum") {
		t.Errorf("expected answer grounded on the query, got %q", answer.Text)
	}
	if len(answer.Sources) != 2 {
		t.Errorf("expected 2 sources, got %d", len(answer.Sources))
	}
}

func TestAskNoRelevantPassages(t *testing.T) {
	uc := NewAskUseCase(&fixedSearcher{}, llm.NewMockSynthesizer(), nil, 0, zerolog.Nop())

	answer := uc.Ask(context.Background(), "anything", 3)

	if answer.Text != noResultsAnswer {
		t.Errorf("expected the no-results message, got %q", answer.Text)
	}
	if len(answer.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(answer.Sources))
	}
}

func TestAskModelFailureFailsOpen(t *testing.T) {
	synth := llm.NewMockSynthesizer()
	synth.Err = errors.New("model unavailable")
	uc := NewAskUseCase(&fixedSearcher{results: passages()}, synth, nil, 0, zerolog.Nop())

	answer := uc.Ask(context.Background(), "q", 2)

	if !strings.Contains(answer.Text, "model unavailable") {
		t.Errorf("expected degraded answer with the failure reason, got %q", answer.Text)
	}
	if len(answer.Sources) != 2 {
		t.Errorf("expected retrieved sources to survive the failure, got %d", len(answer.Sources))
	}
}

func TestAskMinScoreFilter(t *testing.T) {
	uc := NewAskUseCase(&fixedSearcher{results: passages()}, llm.NewMockSynthesizer(), nil, 0.5, zerolog.Nop())

	answer := uc.Ask(context.Background(), "upah", 2)

	if len(answer.Sources) != 1 {
		t.Fatalf("expected low-scoring passage filtered out, got %d sources", len(answer.Sources))
	}
	if answer.Sources[0].Source != "uu.pdf" {
		t.Errorf("unexpected surviving source: %s", answer.Sources[0].Source)
	}
}

func TestAskRecordsHistory(t *testing.T) {
	history, err := store.OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer history.Close()

	uc := NewAskUseCase(&fixedSearcher{results: passages()}, llm.NewMockSynthesizer(), history, 0, zerolog.Nop())
	uc.Ask(context.Background(), "berapa upah minimum", 2)

	entries, err := history.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entries[0].Query != "berapa upah minimum" {
		t.Errorf("unexpected recorded query: %q", entries[0].Query)
	}
	if entries[0].Model != "mock" {
		t.Errorf("unexpected recorded model: %q", entries[0].Model)
	}
}
