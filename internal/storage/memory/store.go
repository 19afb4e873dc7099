// Package memory provides a mutex-guarded in-process expense store. It backs
// tests and local development where no database is available.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/expensely/expensely-be/internal/models"
	"github.com/expensely/expensely-be/internal/storage"
)

var _ storage.ExpenseStore = (*Store)(nil)

// Store keeps each user's records in a slice keyed by user id.
type Store struct {
	mu    sync.Mutex
	items map[string][]models.Record
	now   func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		items: make(map[string][]models.Record),
		now:   time.Now,
	}
}

// SetClock overrides the store's time source. Tests use it to control
// timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// List returns a copy of the user's records ordered by creation time
// descending.
func (s *Store) List(_ context.Context, userID string) ([]models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Record(nil), s.items[userID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns a single record or storage.ErrNotFound.
func (s *Store) Get(_ context.Context, userID, id string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items[userID] {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Record{}, storage.ErrNotFound
}

// Create stamps and stores a record.
func (s *Store) Create(_ context.Context, userID string, record models.Record) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := storage.NewRecord(userID, record, s.now())
	s.items[userID] = append(s.items[userID], stored)
	return stored, nil
}

// Update applies a partial update in place.
func (s *Store) Update(_ context.Context, userID, id string, update models.RecordUpdate) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.items[userID]
	for i, r := range records {
		if r.ID == id {
			records[i] = r.Apply(update, s.now())
			return records[i], nil
		}
	}
	return models.Record{}, storage.ErrNotFound
}

// Delete removes a record.
func (s *Store) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.items[userID]
	for i, r := range records {
		if r.ID == id {
			s.items[userID] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}
