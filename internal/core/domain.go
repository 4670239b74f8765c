package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for expense dates.
const DateLayout = "2006-01-02"

// CategoryAll is the sentinel filter value meaning "no category filter".
const CategoryAll = "All"

type (
	Money struct {
		Cents int64
	}

	User struct {
		ID           string    `json:"id"`
		Username     string    `json:"username"`
		PasswordHash string    `json:"password_hash"`
		CreatedAt    time.Time `json:"created_at"`
	}

	Expense struct {
		ID          string    `json:"id"`
		Owner       string    `json:"owner"`
		Date        string    `json:"date"` // YYYY-MM-DD
		Category    string    `json:"category"`
		Amount      Money     `json:"amount_cents"`
		Description string    `json:"description"`
		Paid        bool      `json:"is_paid"`
		CreatedAt   time.Time `json:"created_at"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyOwner       = errors.New("empty owner")
	ErrEmptyUsername    = errors.New("empty username")
	ErrEmptyPassword    = errors.New("empty password")
	ErrEmptyDescription = errors.New("empty description")
	ErrDescriptionLong  = errors.New("description too long")
)

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Owner) == "" {
		return ErrEmptyOwner
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return ErrDescriptionLong
	}
	return e.Amount.Validate()
}

// CategoryMatches reports whether the expense belongs to the given category
// filter. The comparison is case-insensitive and CategoryAll matches everything.
func (e Expense) CategoryMatches(filter string) bool {
	if filter == "" || filter == CategoryAll {
		return true
	}
	return strings.EqualFold(e.Category, filter)
}
