package domain

// Document is one corpus file: a source identifier plus its ordered chunks.
// Documents are immutable once loaded and replaced wholesale on reload.
type Document struct {
	Source string  `json:"source"`
	Chunks []Chunk `json:"chunks"`
}

// Chunk is the atomic retrievable unit of a document.
type Chunk struct {
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkMetadata carries the page range the chunk was extracted from.
type ChunkMetadata struct {
	PageStart int `json:"page_start"`
	PageEnd   int `json:"page_end"`
}

// ChunkRecord is a chunk flattened out of its parent document. The position
// of a record in the flattened sequence is the row index of its vector, so
// the sequence order is authoritative for the whole index.
type ChunkRecord struct {
	Source   string
	Text     string
	Metadata ChunkMetadata
}

// SearchResult is a ChunkRecord paired with its similarity score.
// Result sets are always sorted by descending score.
type SearchResult struct {
	Score    float64       `json:"score"`
	Source   string        `json:"source"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Stats summarises a loaded corpus.
type Stats struct {
	TotalDocs   int
	TotalChunks int
	VocabSize   int
}

// Answer is the synthesizer's response together with the passages it was
// grounded on.
type Answer struct {
	Text    string         `json:"answer"`
	Sources []SearchResult `json:"sources,omitempty"`
}
