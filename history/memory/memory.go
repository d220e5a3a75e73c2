// Package memory provides an in-memory history.Store for tests and for
// running the server without an rqlite instance.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/synerge/synergereader/history"
)

func New() *Store {
	return &Store{
		now: func() time.Time { return time.Now().UTC() },
	}
}

type Store struct {
	mu      sync.RWMutex
	records []history.Record
	lastID  int64
	now     func() time.Time
}

// SetNow replaces the clock, for tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Append(ctx context.Context, args history.AppendArgs) (history.Record, error) {
	if err := ctx.Err(); err != nil {
		return history.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	record := history.Record{
		ID:           s.lastID,
		Timestamp:    s.now().Format(time.RFC3339),
		SelectedText: args.SelectedText,
		Question:     args.Question,
		Answer:       args.Answer,
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit < 0 {
		limit = 0
	}
	if limit > len(s.records) {
		limit = len(s.records)
	}
	records := make([]history.Record, 0, limit)
	for i := len(s.records) - 1; i >= len(s.records)-limit; i-- {
		records = append(records, s.records[i])
	}
	return records, nil
}
