package dto

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expensely/expensely-be/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestCreateValidatePasses(t *testing.T) {
	req := CreateExpenseRequest{
		Amount:      floatPtr(150.5),
		Category:    "  Food ",
		Description: " Dinner ",
		Kind:        strPtr("expense"),
		Tags:        []string{"x"},
	}

	record, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, 150.5, record.Amount)
	assert.Equal(t, "Food", record.Category)
	assert.Equal(t, "Dinner", record.Description)
	assert.Equal(t, models.Expense, record.Kind)
	assert.Equal(t, []string{"x"}, record.Tags)
	assert.True(t, record.CreatedAt.IsZero(), "no date override requested")
}

func TestCreateValidateRejections(t *testing.T) {
	base := func() CreateExpenseRequest {
		return CreateExpenseRequest{
			Amount:      floatPtr(10),
			Category:    "Food",
			Description: "Lunch",
			Kind:        strPtr("expense"),
		}
	}

	tests := []struct {
		name   string
		mutate func(*CreateExpenseRequest)
	}{
		{"missing amount", func(r *CreateExpenseRequest) { r.Amount = nil }},
		{"missing kind", func(r *CreateExpenseRequest) { r.Kind = nil }},
		{"zero amount", func(r *CreateExpenseRequest) { r.Amount = floatPtr(0) }},
		{"negative amount", func(r *CreateExpenseRequest) { r.Amount = floatPtr(-5) }},
		{"blank category", func(r *CreateExpenseRequest) { r.Category = "   " }},
		{"blank description", func(r *CreateExpenseRequest) { r.Description = "" }},
		{"bad kind", func(r *CreateExpenseRequest) { r.Kind = strPtr("transfer") }},
		{"bad date", func(r *CreateExpenseRequest) { r.Date = "not-a-date" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(&req)
			_, err := req.Validate()
			assert.Error(t, err)
		})
	}
}

func TestCreateValidateDateOverride(t *testing.T) {
	req := CreateExpenseRequest{
		Amount:      floatPtr(10),
		Category:    "Food",
		Description: "Lunch",
		Kind:        strPtr("expense"),
		Date:        "2024-03-15T10:30:00Z",
	}

	record, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), record.CreatedAt)
}

func TestCreateValidateDefaultsTags(t *testing.T) {
	req := CreateExpenseRequest{
		Amount:      floatPtr(10),
		Category:    "Food",
		Description: "Lunch",
		Kind:        strPtr("income"),
	}

	record, err := req.Validate()
	require.NoError(t, err)
	require.NotNil(t, record.Tags)
	assert.Empty(t, record.Tags)
}

func TestUpdateValidateRequiresAField(t *testing.T) {
	_, err := UpdateExpenseRequest{}.Validate()
	assert.Error(t, err)
}

func TestUpdateValidateSubset(t *testing.T) {
	req := UpdateExpenseRequest{
		Amount:   floatPtr(42),
		Category: strPtr("  Travel "),
	}

	update, err := req.Validate()
	require.NoError(t, err)
	require.NotNil(t, update.Amount)
	assert.Equal(t, 42.0, *update.Amount)
	require.NotNil(t, update.Category)
	assert.Equal(t, "Travel", *update.Category)
	assert.Nil(t, update.Description)
	assert.Nil(t, update.Kind)
	assert.Nil(t, update.Tags)
}

func TestUpdateValidatePerFieldRules(t *testing.T) {
	_, err := UpdateExpenseRequest{Amount: floatPtr(-1)}.Validate()
	assert.Error(t, err)

	_, err = UpdateExpenseRequest{Category: strPtr(" ")}.Validate()
	assert.Error(t, err)

	_, err = UpdateExpenseRequest{Kind: strPtr("loan")}.Validate()
	assert.Error(t, err)
}

func TestParseListQueryDefaults(t *testing.T) {
	filters, err := ParseListQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, filters.Limit)
	assert.Nil(t, filters.StartDate)
	assert.Nil(t, filters.EndDate)
	assert.Empty(t, filters.Category)
	assert.Empty(t, string(filters.Kind))
}

func TestParseListQueryFull(t *testing.T) {
	values := url.Values{}
	values.Set("limit", "10")
	values.Set("startDate", "2024-01-01")
	values.Set("endDate", "2024-01-31")
	values.Set("category", "Food")
	values.Set("kind", "expense")

	filters, err := ParseListQuery(values)
	require.NoError(t, err)
	assert.Equal(t, 10, filters.Limit)
	assert.Equal(t, "Food", filters.Category)
	assert.Equal(t, models.Expense, filters.Kind)
	require.NotNil(t, filters.StartDate)
	require.NotNil(t, filters.EndDate)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *filters.StartDate)
	// A date-only upper bound covers the entire day.
	assert.True(t, filters.EndDate.After(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
	assert.True(t, filters.EndDate.Before(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestParseListQueryRejections(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero limit", "limit", "0"},
		{"negative limit", "limit", "-3"},
		{"non-numeric limit", "limit", "many"},
		{"bad startDate", "startDate", "yesterday"},
		{"bad endDate", "endDate", "31/01/2024"},
		{"bad kind", "kind", "transfer"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{}
			values.Set(tc.key, tc.value)
			_, err := ParseListQuery(values)
			assert.Error(t, err)
		})
	}
}
