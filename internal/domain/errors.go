package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocuments means the corpus directory held no loadable documents.
	// Non-fatal: the caller should disable search and prompt a reload.
	ErrNoDocuments = errors.New("no corpus documents found")

	// ErrIndexNotBuilt means search was invoked before a successful load.
	ErrIndexNotBuilt = errors.New("retrieval index not built")
)

// ParseError marks a single corpus file that could not be decoded.
// The loader logs it, skips the file and keeps going.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse document %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// VectorizeError marks a corpus that produced no usable vector space,
// e.g. every chunk tokenized to nothing. The index stays unbuilt.
type VectorizeError struct {
	Reason string
}

func (e *VectorizeError) Error() string {
	return "vectorize corpus: " + e.Reason
}
