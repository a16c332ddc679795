package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"lexrag/internal/adapter/analyzer"
	"lexrag/internal/adapter/cache"
	"lexrag/internal/adapter/corpus"
	"lexrag/internal/adapter/index"
	"lexrag/internal/adapter/vectorizer"
	"lexrag/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	vec := vectorizer.NewTFIDF(analyzer.NewTokenizer(), 0)
	idx, err := index.New("cosine", vec, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	loader := corpus.NewLoader(nil, nil, zerolog.Nop())
	return NewEngine(loader, idx, cache.NewQueryCache(10, time.Minute), zerolog.Nop())
}

func writeCorpus(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

const docA = `{
  "source": "doc-a.pdf",
  "chunks": [
    {"text": "kontrak kerja wajib tertulis", "metadata": {"page_start": 1, "page_end": 2}},
    {"text": "upah minimum diatur pemerintah", "metadata": {"page_start": 3, "page_end": 4}}
  ]
}`

const docB = `{
  "source": "doc-b.pdf",
  "chunks": [
    {"text": "sanksi pidana bagi pelanggar", "metadata": {"page_start": 9, "page_end": 9}}
  ]
}`

func TestLoadAndSearch(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{"a.json": docA, "b.json": docB})

	e := newTestEngine(t)
	stats, err := e.Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalDocs != 2 || stats.TotalChunks != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.VocabSize == 0 {
		t.Error("expected non-empty vocabulary")
	}

	results := e.Search("upah minimum", 1)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Text != "upah minimum diatur pemerintah" {
		t.Errorf("expected wage chunk as top result, got %q", results[0].Text)
	}
	if results[0].Source != "doc-a.pdf" {
		t.Errorf("expected source doc-a.pdf, got %s", results[0].Source)
	}
}

func TestSearchBeforeLoad(t *testing.T) {
	e := newTestEngine(t)

	if results := e.Search("upah", 3); len(results) != 0 {
		t.Errorf("expected empty results before load, got %d", len(results))
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	e := newTestEngine(t)

	stats, err := e.Load(t.TempDir())
	if !errors.Is(err, domain.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
	if stats.TotalDocs != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}

	// Search still works, returning nothing.
	if results := e.Search("upah", 3); len(results) != 0 {
		t.Errorf("expected empty results after empty load, got %d", len(results))
	}
}

func TestSearchNonPositiveTopK(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{"a.json": docA})

	e := newTestEngine(t)
	if _, err := e.Load(dir); err != nil {
		t.Fatal(err)
	}

	if results := e.Search("upah", 0); len(results) != 0 {
		t.Errorf("expected empty results for top_k=0, got %d", len(results))
	}
	if results := e.Search("upah", -5); len(results) != 0 {
		t.Errorf("expected empty results for negative top_k, got %d", len(results))
	}
}

func TestFlattenPreservesOrder(t *testing.T) {
	docs := []domain.Document{
		{Source: "a.pdf", Chunks: []domain.Chunk{
			{Text: "a1", Metadata: domain.ChunkMetadata{PageStart: 1, PageEnd: 1}},
			{Text: "a2", Metadata: domain.ChunkMetadata{PageStart: 2, PageEnd: 2}},
		}},
		{Source: "b.pdf", Chunks: []domain.Chunk{
			{Text: "b1", Metadata: domain.ChunkMetadata{PageStart: 1, PageEnd: 1}},
		}},
		{Source: "c.pdf"},
	}

	records := Flatten(docs)

	want := []domain.ChunkRecord{
		{Source: "a.pdf", Text: "a1", Metadata: domain.ChunkMetadata{PageStart: 1, PageEnd: 1}},
		{Source: "a.pdf", Text: "a2", Metadata: domain.ChunkMetadata{PageStart: 2, PageEnd: 2}},
		{Source: "b.pdf", Text: "b1", Metadata: domain.ChunkMetadata{PageStart: 1, PageEnd: 1}},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("flatten order mismatch:\ngot  %+v\nwant %+v", records, want)
	}
}

func TestSearchDeterministicAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{"a.json": docA, "b.json": docB})

	e := newTestEngine(t)
	if _, err := e.Load(dir); err != nil {
		t.Fatal(err)
	}

	first := e.Search("sanksi pidana", 3)
	for i := 0; i < 5; i++ {
		if again := e.Search("sanksi pidana", 3); !reflect.DeepEqual(first, again) {
			t.Fatalf("search not deterministic: %v vs %v", first, again)
		}
	}
}

func TestReloadReplacesTriple(t *testing.T) {
	dirA := t.TempDir()
	writeCorpus(t, dirA, map[string]string{"a.json": docA})

	e := newTestEngine(t)
	if _, err := e.Load(dirA); err != nil {
		t.Fatal(err)
	}
	if results := e.Search("upah minimum", 1); len(results) != 1 {
		t.Fatalf("expected a hit before reload, got %d results", len(results))
	}

	dirB := t.TempDir()
	writeCorpus(t, dirB, map[string]string{"b.json": docB})
	if _, err := e.Load(dirB); err != nil {
		t.Fatal(err)
	}

	// The wage chunk is gone; the cached entry must not resurface it.
	results := e.Search("upah minimum", 1)
	if len(results) == 1 && results[0].Source == "doc-a.pdf" {
		t.Error("stale results served after reload")
	}

	// Reloading an empty directory disables search entirely.
	if _, err := e.Load(t.TempDir()); !errors.Is(err, domain.ErrNoDocuments) {
		t.Fatal("expected ErrNoDocuments")
	}
	if e.Ready() {
		t.Error("engine should not be ready after empty reload")
	}
	if results := e.Search("sanksi", 1); len(results) != 0 {
		t.Errorf("expected no results after empty reload, got %d", len(results))
	}
}

func TestLoadDegenerateCorpus(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		"a.json": `{"source": "a.pdf", "chunks": [{"text": "...", "metadata": {"page_start": 1, "page_end": 1}}]}`,
	})

	e := newTestEngine(t)
	stats, err := e.Load(dir)
	if err != nil {
		t.Fatalf("vectorization failure must not propagate: %v", err)
	}
	if stats.TotalDocs != 1 || stats.TotalChunks != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if e.Ready() {
		t.Error("engine should stay unbuilt for a degenerate corpus")
	}
	if results := e.Search("anything", 3); len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{"a.json": docA, "b.json": docB})

	e := newTestEngine(t)
	if _, err := e.Load(dir); err != nil {
		t.Fatal(err)
	}

	stats := e.Stats()
	if stats.TotalDocs != 2 || stats.TotalChunks != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
