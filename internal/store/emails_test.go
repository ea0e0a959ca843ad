package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"birdai/internal/domain"
)

func TestEmailStoreAppendAndAll(t *testing.T) {
	t.Parallel()

	s, err := NewEmailStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	first := domain.EmailCapture{Email: "a@acme.com", FileName: "doc.pdf", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	second := domain.EmailCapture{Email: "b@acme.com", Timestamp: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}

	if err := s.Append(first); err != nil {
		t.Fatalf("append first: %v", err)
	}
	if err := s.Append(second); err != nil {
		t.Fatalf("append second: %v", err)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 captures, got %d", len(all))
	}
	if all[0].Email != "b@acme.com" {
		t.Fatalf("expected newest first, got %s", all[0].Email)
	}
	if all[1].FileName != "doc.pdf" {
		t.Fatalf("fileName not preserved: %+v", all[1])
	}
}

func TestEmailStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	s, err := NewEmailStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	all, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d records", len(all))
	}
}

func TestEmailStoreSetsTimestamp(t *testing.T) {
	t.Parallel()

	s, err := NewEmailStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	s.now = func() time.Time { return time.Date(2026, 2, 2, 2, 2, 2, 0, time.UTC) }

	if err := s.Append(domain.EmailCapture{Email: "c@acme.com"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	all, _ := s.All()
	if !all[0].Timestamp.Equal(time.Date(2026, 2, 2, 2, 2, 2, 0, time.UTC)) {
		t.Fatalf("timestamp not set at write time: %v", all[0].Timestamp)
	}
}

func TestEmailStoreDuplicatesAccumulate(t *testing.T) {
	t.Parallel()

	s, err := NewEmailStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := s.Append(domain.EmailCapture{Email: "same@acme.com"}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	all, _ := s.All()
	if len(all) != 3 {
		t.Fatalf("expected duplicates to accumulate, got %d", len(all))
	}
}

func TestEmailStoreConcurrentAppends(t *testing.T) {
	t.Parallel()

	s, err := NewEmailStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			if err := s.Append(domain.EmailCapture{Email: fmt.Sprintf("w%d@acme.com", i)}); err != nil {
				t.Errorf("append %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	all, err := s.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != writers {
		t.Fatalf("lost updates: expected %d captures, got %d", writers, len(all))
	}
}
