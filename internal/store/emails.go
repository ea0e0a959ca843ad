package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"birdai/internal/domain"
)

// EmailStore keeps every capture in a single JSON array file under the data
// directory. Each append re-reads and rewrites the whole file; the mutex
// serializes writers so concurrent captures cannot lose each other's
// records. Fine at marketing-site volume, wrong for anything bigger.
type EmailStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewEmailStore(dataDir string) (*EmailStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &EmailStore{
		path: filepath.Join(dataDir, "emails.json"),
		now:  time.Now,
	}, nil
}

// Append adds one capture to the file. A missing file counts as an empty
// array. Sets the timestamp at write time if unset.
func (s *EmailStore) Append(rec domain.EmailCapture) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}

	if rec.Timestamp.IsZero() {
		rec.Timestamp = s.now().UTC()
	}
	records = append(records, rec)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal captures: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write captures: %w", err)
	}
	return nil
}

// All returns every capture, newest first.
func (s *EmailStore) All() ([]domain.EmailCapture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

func (s *EmailStore) readAll() ([]domain.EmailCapture, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read captures: %w", err)
	}

	var records []domain.EmailCapture
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse captures: %w", err)
	}
	return records, nil
}
