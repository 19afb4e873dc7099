package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/expensely/expensely-be/internal/models"
	"github.com/expensely/expensely-be/internal/storage"
)

// Ensure Store satisfies the storage.ExpenseStore interface at compile time.
var _ storage.ExpenseStore = (*Store)(nil)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Store provides Postgres-backed persistence for expense records.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// NewExpenseStore connects a pool, validates the configured table name, and
// runs migrations.
func NewExpenseStore(ctx context.Context, databaseURL, table string) (*Store, error) {
	if !validTableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool, table: table}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			user_id TEXT NOT NULL,
			id TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			kind TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, id)
		);`, s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_owner_created_idx ON %s (user_id, created_at DESC);`, s.table, s.table),
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

const recordColumns = `id, user_id, amount, category, description, kind, tags, created_at, updated_at`

// List fetches the user's full history ordered by creation time descending.
func (s *Store) List(ctx context.Context, userID string) ([]models.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 ORDER BY created_at DESC`, recordColumns, s.table)
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Get fetches one record by its composite key.
func (s *Store) Get(ctx context.Context, userID, id string) (models.Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE user_id = $1 AND id = $2`, recordColumns, s.table)
	return scanRecord(s.pool.QueryRow(ctx, query, userID, id))
}

// Create inserts a stamped record row.
func (s *Store) Create(ctx context.Context, userID string, record models.Record) (models.Record, error) {
	stored := storage.NewRecord(userID, record, time.Now().UTC())
	query := fmt.Sprintf(`INSERT INTO %s (id, user_id, amount, category, description, kind, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, s.table)
	_, err := s.pool.Exec(ctx, query,
		stored.ID, stored.UserID, stored.Amount, stored.Category,
		stored.Description, string(stored.Kind), stored.Tags,
		stored.CreatedAt, stored.UpdatedAt)
	if err != nil {
		return models.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return stored, nil
}

// Update rewrites the mutable columns of an existing row. Identity and
// created_at are never touched. Concurrent updates are last-write-wins.
func (s *Store) Update(ctx context.Context, userID, id string, update models.RecordUpdate) (models.Record, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.Record{}, err
	}
	next := current.Apply(update, time.Now().UTC())

	query := fmt.Sprintf(`UPDATE %s
		SET amount = $3, category = $4, description = $5, kind = $6, tags = $7, updated_at = $8
		WHERE user_id = $1 AND id = $2`, s.table)
	tag, err := s.pool.Exec(ctx, query,
		userID, id, next.Amount, next.Category, next.Description,
		string(next.Kind), next.Tags, next.UpdatedAt)
	if err != nil {
		return models.Record{}, fmt.Errorf("update record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Record{}, storage.ErrNotFound
	}
	return next, nil
}

// Delete removes a row by its composite key.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND id = $2`, s.table)
	tag, err := s.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (models.Record, error) {
	var record models.Record
	var kind string
	err := row.Scan(&record.ID, &record.UserID, &record.Amount, &record.Category,
		&record.Description, &kind, &record.Tags, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Record{}, storage.ErrNotFound
		}
		return models.Record{}, err
	}
	record.Kind = models.Kind(kind)
	return record, nil
}
