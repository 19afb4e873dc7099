package dto

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/expensely/expensely-be/internal/ledger"
	"github.com/expensely/expensely-be/internal/models"
)

// DefaultLimit is applied to list queries that omit the limit parameter.
const DefaultLimit = 25

// CreateExpenseRequest is the POST /expenses body. Pointer fields distinguish
// absent values from zero values.
type CreateExpenseRequest struct {
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Kind        *string  `json:"kind"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
}

// Validate checks the create payload and returns the normalized record
// fields. A valid Date becomes the creation timestamp override; the zero
// time means no override.
func (r CreateExpenseRequest) Validate() (models.Record, error) {
	if r.Amount == nil || r.Kind == nil {
		return models.Record{}, errors.New("Missing required fields: amount and kind")
	}
	if *r.Amount <= 0 {
		return models.Record{}, errors.New("Amount must be a positive number")
	}
	category := strings.TrimSpace(r.Category)
	if category == "" {
		return models.Record{}, errors.New("Category must be a non-empty string")
	}
	description := strings.TrimSpace(r.Description)
	if description == "" {
		return models.Record{}, errors.New("Description must be a non-empty string")
	}
	kind := models.Kind(*r.Kind)
	if !kind.IsValid() {
		return models.Record{}, errors.New("Kind must be either 'income' or 'expense'")
	}

	var createdAt time.Time
	if r.Date != "" {
		parsed, err := parseTimestamp(r.Date)
		if err != nil {
			return models.Record{}, errors.New("Invalid date format. Use ISO 8601 format.")
		}
		createdAt = parsed
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return models.Record{
		Amount:      *r.Amount,
		Category:    category,
		Description: description,
		Kind:        kind,
		Tags:        tags,
		CreatedAt:   createdAt,
	}, nil
}

// UpdateExpenseRequest is the PUT /expenses/{id} body. Only the fields below
// are mutable; id, userId, and createdAt are not representable here, so they
// can never be rewritten through an update.
type UpdateExpenseRequest struct {
	Amount      *float64  `json:"amount"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Kind        *string   `json:"kind"`
	Tags        *[]string `json:"tags"`
}

// Validate applies the per-field create rules to every field present and
// rejects payloads that carry no recognized field.
func (r UpdateExpenseRequest) Validate() (models.RecordUpdate, error) {
	var out models.RecordUpdate
	if r.Amount != nil {
		if *r.Amount <= 0 {
			return models.RecordUpdate{}, errors.New("Amount must be a positive number")
		}
		out.Amount = r.Amount
	}
	if r.Category != nil {
		category := strings.TrimSpace(*r.Category)
		if category == "" {
			return models.RecordUpdate{}, errors.New("Category must be a non-empty string")
		}
		out.Category = &category
	}
	if r.Description != nil {
		description := strings.TrimSpace(*r.Description)
		if description == "" {
			return models.RecordUpdate{}, errors.New("Description must be a non-empty string")
		}
		out.Description = &description
	}
	if r.Kind != nil {
		kind := models.Kind(*r.Kind)
		if !kind.IsValid() {
			return models.RecordUpdate{}, errors.New("Kind must be either 'income' or 'expense'")
		}
		out.Kind = &kind
	}
	if r.Tags != nil {
		out.Tags = r.Tags
	}
	if out.Empty() {
		return models.RecordUpdate{}, errors.New("At least one field must be provided for update")
	}
	return out, nil
}

// ParseListQuery validates GET /expenses query parameters into ledger
// filters.
func ParseListQuery(values url.Values) (ledger.Filters, error) {
	filters := ledger.Filters{Limit: DefaultLimit}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return ledger.Filters{}, errors.New("Limit must be a positive integer")
		}
		filters.Limit = limit
	}
	if raw := values.Get("startDate"); raw != "" {
		start, err := parseTimestamp(raw)
		if err != nil {
			return ledger.Filters{}, fmt.Errorf("Invalid startDate: %q", raw)
		}
		filters.StartDate = &start
	}
	if raw := values.Get("endDate"); raw != "" {
		end, err := parseTimestamp(raw)
		if err != nil {
			return ledger.Filters{}, fmt.Errorf("Invalid endDate: %q", raw)
		}
		// A bare calendar date as upper bound covers the whole day, keeping
		// the bound inclusive.
		if isDateOnly(raw) {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		filters.EndDate = &end
	}
	if raw := values.Get("category"); raw != "" {
		filters.Category = raw
	}
	if raw := values.Get("kind"); raw != "" {
		kind := models.Kind(raw)
		if !kind.IsValid() {
			return ledger.Filters{}, errors.New("Kind filter must be either 'income' or 'expense'")
		}
		filters.Kind = kind
	}

	return filters, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func isDateOnly(raw string) bool {
	_, err := time.Parse("2006-01-02", raw)
	return err == nil
}
