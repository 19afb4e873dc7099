// Package ledger holds the filtering and aggregation logic shared by every
// storage backend. Backends return a user's full history ordered by creation
// time descending; this package narrows and summarizes it.
package ledger

import (
	"time"

	"github.com/expensely/expensely-be/internal/models"
)

// Filters narrows a user's record history. Zero values mean "no constraint"
// except Limit, which callers must set (dto.ParseListQuery defaults it).
type Filters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Kind      models.Kind
	Limit     int
}

// Apply narrows records in a fixed order: date range (both bounds inclusive,
// compared on creation timestamp), exact category, kind, then truncation to
// Limit. Input order is preserved.
func (f Filters) Apply(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if f.StartDate != nil && r.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && r.CreatedAt.After(*f.EndDate) {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Kind != "" && r.Kind != f.Kind {
			continue
		}
		out = append(out, r)
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// HasMore reports whether a page probably has a successor. It is a
// heuristic: true whenever the page is exactly full, even when nothing
// follows it.
func (f Filters) HasMore(returned int) bool {
	return returned == f.Limit
}
