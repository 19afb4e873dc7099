// Package sqlite provides a file-backed expense store. It is the default
// backend for single-node deployments where running Postgres is overkill.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/expensely/expensely-be/internal/models"
	"github.com/expensely/expensely-be/internal/storage"

	_ "modernc.org/sqlite"
)

var _ storage.ExpenseStore = (*Store)(nil)

// Store wraps a sql.DB connection to a sqlite database.
type Store struct {
	db *sql.DB
}

// NewExpenseStore opens the database, pings it, and runs migrations.
func NewExpenseStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// List retrieves the user's records ordered by creation time descending.
func (s *Store) List(ctx context.Context, userID string) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, amount, category, description, kind, tags, created_at, updated_at
		 FROM expenses WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Get retrieves a single record by its composite key.
func (s *Store) Get(ctx context.Context, userID, id string) (models.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount, category, description, kind, tags, created_at, updated_at
		 FROM expenses WHERE user_id = ? AND id = ?`, userID, id)
	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, storage.ErrNotFound
	}
	return record, err
}

// Create inserts a stamped record.
func (s *Store) Create(ctx context.Context, userID string, record models.Record) (models.Record, error) {
	stored := storage.NewRecord(userID, record, time.Now().UTC())
	tags, err := json.Marshal(stored.Tags)
	if err != nil {
		return models.Record{}, fmt.Errorf("encode tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, user_id, amount, category, description, kind, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.UserID, stored.Amount, stored.Category,
		stored.Description, string(stored.Kind), string(tags),
		stored.CreatedAt, stored.UpdatedAt)
	if err != nil {
		return models.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return stored, nil
}

// Update rewrites the mutable columns, leaving identity and created_at
// untouched.
func (s *Store) Update(ctx context.Context, userID, id string, update models.RecordUpdate) (models.Record, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.Record{}, err
	}
	next := current.Apply(update, time.Now().UTC())
	tags, err := json.Marshal(next.Tags)
	if err != nil {
		return models.Record{}, fmt.Errorf("encode tags: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET amount = ?, category = ?, description = ?, kind = ?, tags = ?, updated_at = ?
		 WHERE user_id = ? AND id = ?`,
		next.Amount, next.Category, next.Description, string(next.Kind),
		string(tags), next.UpdatedAt, userID, id)
	if err != nil {
		return models.Record{}, fmt.Errorf("update record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Record{}, fmt.Errorf("update record: %w", err)
	}
	if affected == 0 {
		return models.Record{}, storage.ErrNotFound
	}
	return next, nil
}

// Delete removes a record by its composite key.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanRecord(scan func(...any) error) (models.Record, error) {
	var record models.Record
	var kind, tags string
	err := scan(&record.ID, &record.UserID, &record.Amount, &record.Category,
		&record.Description, &kind, &tags, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return models.Record{}, err
	}
	record.Kind = models.Kind(kind)
	if err := json.Unmarshal([]byte(tags), &record.Tags); err != nil {
		return models.Record{}, fmt.Errorf("decode tags: %w", err)
	}
	return record, nil
}
