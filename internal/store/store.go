// Package store defines the storage abstraction shared by all backends.
//
// Callers can distinguish an unreadable store from a legitimately empty one:
// parse failures of persisted state surface as ErrStoreUnreadable instead of
// being swallowed into an empty result.
package store

import (
	"context"
	"errors"

	"spendbook/internal/core"
)

var (
	// ErrNotFound is returned when a record does not exist or is not owned
	// by the requesting user.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned by CreateUser when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrStoreUnreadable wraps persistence-layer corruption (e.g. malformed JSON).
	ErrStoreUnreadable = errors.New("store unreadable")
)

// ExpenseUpdate carries the mutable fields of an expense.
type ExpenseUpdate struct {
	Date        string
	Category    string
	Amount      core.Money
	Description string
	Paid        bool
}

type UserStore interface {
	// CreateUser persists a new user. Returns ErrDuplicateUsername on an
	// exact (case-sensitive) username match.
	CreateUser(ctx context.Context, u core.User) error

	// GetUser returns the user with the exact username, or ErrNotFound.
	GetUser(ctx context.Context, username string) (core.User, error)
}

type ExpenseStore interface {
	// AddExpense appends a new expense record.
	AddExpense(ctx context.Context, e core.Expense) error

	// ListExpenses returns the owner's expenses in store order.
	ListExpenses(ctx context.Context, owner string) ([]core.Expense, error)

	// GetExpense returns the owner's expense with the given ID, or ErrNotFound.
	GetExpense(ctx context.Context, owner, id string) (core.Expense, error)

	// UpdateExpense mutates the owner's expense in place, or ErrNotFound.
	UpdateExpense(ctx context.Context, owner, id string, upd ExpenseUpdate) error

	// DeleteExpense removes the owner's expense, or ErrNotFound.
	DeleteExpense(ctx context.Context, owner, id string) error
}

// Store is the full backend surface handed out by the backend factory.
type Store interface {
	UserStore
	ExpenseStore
	Close() error
}
