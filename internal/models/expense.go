package models

import "time"

// Kind distinguishes money coming in from money going out.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// IsValid reports whether k is one of the enumerated kinds.
func (k Kind) IsValid() bool {
	return k == Income || k == Expense
}

// Record is a single ledger entry owned by exactly one user.
// ID, UserID, and CreatedAt are fixed at creation; UpdatedAt refreshes on
// every mutation.
type Record struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Kind        Kind      `json:"kind"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RecordUpdate is the allow-list of mutable record fields. Nil means "leave
// unchanged". Identity and creation timestamp are not representable here.
type RecordUpdate struct {
	Amount      *float64
	Category    *string
	Description *string
	Kind        *Kind
	Tags        *[]string
}

// Empty reports whether the update touches no field.
func (u RecordUpdate) Empty() bool {
	return u.Amount == nil && u.Category == nil && u.Description == nil &&
		u.Kind == nil && u.Tags == nil
}

// Apply returns a copy of r with the update applied and UpdatedAt refreshed.
func (r Record) Apply(u RecordUpdate, now time.Time) Record {
	if u.Amount != nil {
		r.Amount = *u.Amount
	}
	if u.Category != nil {
		r.Category = *u.Category
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Kind != nil {
		r.Kind = *u.Kind
	}
	if u.Tags != nil {
		r.Tags = *u.Tags
	}
	r.UpdatedAt = now
	return r
}

// Identity captures application-facing fields for an authenticated caller.
type Identity struct {
	UserID   string `json:"userId"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}
