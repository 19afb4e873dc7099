package memory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensely/expensely-be/internal/models"
	"github.com/expensely/expensely-be/internal/storage"
)

func testRecord(description string) models.Record {
	return models.Record{
		Amount:      10,
		Category:    "Food",
		Description: description,
		Kind:        models.Expense,
		Tags:        []string{},
	}
}

func TestCreateStampsRecord(t *testing.T) {
	store := New()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	stored, err := store.Create(context.Background(), "user-1", testRecord("lunch"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.ID, "expense-"))
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, now, stored.CreatedAt)
	assert.Equal(t, now, stored.UpdatedAt)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	store := New()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		stored, err := store.Create(context.Background(), "user-1", testRecord("x"))
		require.NoError(t, err)
		assert.False(t, seen[stored.ID], "duplicate id %s", stored.ID)
		seen[stored.ID] = true
	}
}

func TestCreatePreservesDateOverride(t *testing.T) {
	store := New()
	override := time.Date(2023, 12, 24, 18, 0, 0, 0, time.UTC)

	record := testRecord("gift")
	record.CreatedAt = override

	stored, err := store.Create(context.Background(), "user-1", record)
	require.NoError(t, err)
	assert.Equal(t, override, stored.CreatedAt)
	assert.NotEqual(t, override, stored.UpdatedAt)
}

func TestListOrdersByCreationDescending(t *testing.T) {
	store := New()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, desc := range []string{"oldest", "middle", "newest"} {
		when := base.Add(time.Duration(i) * time.Hour)
		store.SetClock(func() time.Time { return when })
		_, err := store.Create(context.Background(), "user-1", testRecord(desc))
		require.NoError(t, err)
	}

	records, err := store.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "newest", records[0].Description)
	assert.Equal(t, "oldest", records[2].Description)
}

func TestUpdateChangesSubsetOnly(t *testing.T) {
	store := New()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return created })

	stored, err := store.Create(context.Background(), "user-1", testRecord("lunch"))
	require.NoError(t, err)

	later := created.Add(time.Minute)
	store.SetClock(func() time.Time { return later })

	amount := 99.5
	updated, err := store.Update(context.Background(), "user-1", stored.ID, models.RecordUpdate{Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, 99.5, updated.Amount)
	assert.Equal(t, stored.Category, updated.Category)
	assert.Equal(t, stored.Description, updated.Description)
	assert.Equal(t, stored.Kind, updated.Kind)
	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, created, updated.CreatedAt, "creation timestamp never changes")
	assert.True(t, updated.UpdatedAt.After(stored.UpdatedAt), "modification timestamp advances")
}

func TestUpdateNotFound(t *testing.T) {
	store := New()
	amount := 5.0
	_, err := store.Update(context.Background(), "user-1", "expense-missing", models.RecordUpdate{Amount: &amount})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete(t *testing.T) {
	store := New()
	stored, err := store.Create(context.Background(), "user-1", testRecord("lunch"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "user-1", stored.ID))

	_, err = store.Get(context.Background(), "user-1", stored.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, store.Delete(context.Background(), "user-1", stored.ID), storage.ErrNotFound)
}

func TestOwnershipIsolation(t *testing.T) {
	store := New()
	stored, err := store.Create(context.Background(), "alice", testRecord("private"))
	require.NoError(t, err)

	// Another user never sees, mutates, or deletes the record.
	records, err := store.List(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = store.Get(context.Background(), "bob", stored.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	amount := 1.0
	_, err = store.Update(context.Background(), "bob", stored.ID, models.RecordUpdate{Amount: &amount})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, store.Delete(context.Background(), "bob", stored.ID), storage.ErrNotFound)

	// Untouched for the owner.
	got, err := store.Get(context.Background(), "alice", stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Description)
}
