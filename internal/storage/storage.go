package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/expensely/expensely-be/internal/models"
)

// ErrNotFound indicates a record does not exist or is owned by another user.
var ErrNotFound = errors.New("record not found")

// ExpenseStore captures persistence operations needed by handlers. Every
// operation is scoped to the owning user; records of other users are never
// reachable.
type ExpenseStore interface {
	// List returns the user's full history ordered by creation time
	// descending.
	List(ctx context.Context, userID string) ([]models.Record, error)
	// Get returns a single record or ErrNotFound.
	Get(ctx context.Context, userID, id string) (models.Record, error)
	// Create persists a validated record, assigning id and timestamps via
	// NewRecord.
	Create(ctx context.Context, userID string, record models.Record) (models.Record, error)
	// Update applies a partial update and returns the stored result, or
	// ErrNotFound. It never rewrites identity or the creation timestamp.
	Update(ctx context.Context, userID, id string, update models.RecordUpdate) (models.Record, error)
	// Delete removes a record or returns ErrNotFound.
	Delete(ctx context.Context, userID, id string) error
}

// NewRecord stamps ownership, a fresh unique id, and timestamps onto a
// validated record. A non-zero CreatedAt (the caller-supplied override) is
// preserved.
func NewRecord(userID string, record models.Record, now time.Time) models.Record {
	record.ID = "expense-" + uuid.NewString()
	record.UserID = userID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	return record
}
