// Package store persists the question/answer log. The retrieval index
// itself is never persisted; the corpus is small and rebuilt on every load.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"lexrag/internal/domain"
)

var bucketHistory = []byte("history")

// HistoryEntry is one answered question.
type HistoryEntry struct {
	AskedAt time.Time             `json:"asked_at"`
	Query   string                `json:"query"`
	Answer  string                `json:"answer"`
	Model   string                `json:"model,omitempty"`
	Sources []domain.SearchResult `json:"sources,omitempty"`
}

// HistoryStore is an append-only bbolt log of answered questions.
type HistoryStore struct {
	db *bbolt.DB
}

// OpenHistory opens (or creates) the history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketHistory)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history bucket: %w", err)
	}

	return &HistoryStore{db: db}, nil
}

// Append records one answered question.
func (s *HistoryStore) Append(entry HistoryEntry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		if b == nil {
			return fmt.Errorf("history bucket not found")
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)
		return b.Put(key, data)
	})
}

// Recent returns up to n entries, newest first.
func (s *HistoryStore) Recent(n int) ([]HistoryEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	var entries []HistoryEntry
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		if b == nil {
			return nil
		}

		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			var entry HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				continue // skip corrupted entries
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of recorded entries.
func (s *HistoryStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		if b == nil {
			return nil
		}
		count = b.Stats().KeyN
		return nil
	})
	return count, err
}

// Close closes the underlying database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
