// Package corpus reads directories of pre-chunked JSON documents.
package corpus

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"lexrag/internal/domain"
)

// ProgressFunc reports loading progress to the caller, e.g. a CLI bar.
type ProgressFunc func(loaded, total int)

// Loader enumerates document-record files in a directory and parses them
// into Documents. A malformed file is logged and skipped; loading keeps
// going with the remaining files. Source files are never modified.
type Loader struct {
	includes []string
	excludes []string
	log      zerolog.Logger
	progress ProgressFunc
}

// NewLoader creates a Loader matching files against the given glob
// patterns. Empty includes default to JSON document records.
func NewLoader(includes, excludes []string, log zerolog.Logger) *Loader {
	if len(includes) == 0 {
		includes = []string{"**/*.json"}
	}
	return &Loader{
		includes: includes,
		excludes: excludes,
		log:      log,
	}
}

// OnProgress registers a progress callback invoked once per parsed file.
func (l *Loader) OnProgress(fn ProgressFunc) {
	l.progress = fn
}

// Load reads all matching documents under dir, in lexical path order.
// Returns domain.ErrNoDocuments when nothing loadable is found.
func (l *Loader) Load(dir string) ([]domain.Document, error) {
	paths, err := l.listFiles(dir)
	if err != nil {
		l.log.Warn().Err(err).Str("dir", dir).Msg("corpus directory unreadable")
		return nil, domain.ErrNoDocuments
	}
	if len(paths) == 0 {
		l.log.Warn().Str("dir", dir).Msg("no document files found")
		return nil, domain.ErrNoDocuments
	}

	docs := make([]domain.Document, 0, len(paths))
	skipped := 0
	for i, path := range paths {
		doc, err := l.parseFile(path)
		if err != nil {
			l.log.Error().Err(err).Str("path", path).Msg("skipping malformed document")
			skipped++
		} else {
			docs = append(docs, doc)
		}
		if l.progress != nil {
			l.progress(i+1, len(paths))
		}
	}

	if len(docs) == 0 {
		l.log.Warn().Str("dir", dir).Int("skipped", skipped).Msg("every document file was malformed")
		return nil, domain.ErrNoDocuments
	}

	l.log.Info().
		Str("dir", dir).
		Int("documents", len(docs)).
		Int("skipped", skipped).
		Msg("corpus loaded")
	return docs, nil
}

// listFiles returns matching file paths under dir, sorted for a stable
// document order.
func (l *Loader) listFiles(dir string) ([]string, error) {
	var paths []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if l.matches(l.includes, relPath) && !l.matches(l.excludes, relPath) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) matches(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(path))
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (l *Loader) parseFile(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, &domain.ParseError{Path: path, Err: err}
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, &domain.ParseError{Path: path, Err: err}
	}
	if doc.Source == "" {
		return domain.Document{}, &domain.ParseError{Path: path, Err: errors.New("missing source field")}
	}
	return doc, nil
}
