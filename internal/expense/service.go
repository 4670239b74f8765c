// Package expense implements the expense operations exposed by the web
// handlers: add, list with filtering and summary, update and delete. All
// operations are scoped to the owning user; the store enforces ownership on
// every lookup.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"spendbook/internal/core"
	"spendbook/internal/events"
	"spendbook/internal/store"
)

// EventPublisher is satisfied by *events.Client. A nil publisher disables
// event publishing; publish failures never fail the user's request.
type EventPublisher interface {
	Publish(ctx context.Context, event events.ExpenseEvent) error
}

// Input carries the user-supplied fields of an expense form.
type Input struct {
	Date        string
	Category    string
	Amount      core.Money
	Description string
	Paid        bool
}

// ListResult is what the view page renders: the filtered rows, their summary,
// the owner's distinct categories for the filter dropdown, and the active filter.
type ListResult struct {
	Expenses   []core.Expense
	Summary    core.Summary
	Categories []string
	Category   string
}

type Service struct {
	expenses store.ExpenseStore
	events   EventPublisher
}

func NewService(expenses store.ExpenseStore, publisher EventPublisher) *Service {
	return &Service{expenses: expenses, events: publisher}
}

// Add validates the input, assigns a stable identifier and appends the record.
func (s *Service) Add(ctx context.Context, owner string, in Input) (core.Expense, error) {
	e := core.Expense{
		ID:          uuid.NewString(),
		Owner:       owner,
		Date:        strings.TrimSpace(in.Date),
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Paid:        in.Paid,
		CreatedAt:   time.Now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.expenses.AddExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", err)
	}

	s.publish(ctx, events.ExpenseCreated, e.ID, owner)
	return e, nil
}

// List returns the owner's expenses filtered by category, with the summary
// computed over the filtered set. The category list always covers all of the
// owner's expenses so the dropdown does not shrink while filtering.
func (s *Service) List(ctx context.Context, owner, category string) (ListResult, error) {
	if category == "" {
		category = core.CategoryAll
	}
	all, err := s.expenses.ListExpenses(ctx, owner)
	if err != nil {
		return ListResult{}, fmt.Errorf("list expenses: %w", err)
	}
	filtered := core.FilterByCategory(all, category)
	return ListResult{
		Expenses:   filtered,
		Summary:    core.Summarize(filtered),
		Categories: core.Categories(all),
		Category:   category,
	}, nil
}

// Get returns the owner's expense by ID, for prefilling the update form.
func (s *Service) Get(ctx context.Context, owner, id string) (core.Expense, error) {
	return s.expenses.GetExpense(ctx, owner, id)
}

// Update mutates the owned record's fields. Unknown or foreign IDs return
// store.ErrNotFound and leave the store unchanged.
func (s *Service) Update(ctx context.Context, owner, id string, in Input) error {
	upd := store.ExpenseUpdate{
		Date:        strings.TrimSpace(in.Date),
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Paid:        in.Paid,
	}
	// Validate against a synthetic record so bad input never reaches the store.
	probe := core.Expense{ID: id, Owner: owner, Date: upd.Date, Category: upd.Category,
		Amount: upd.Amount, Description: upd.Description, Paid: upd.Paid}
	if err := probe.Validate(); err != nil {
		return err
	}
	if err := s.expenses.UpdateExpense(ctx, owner, id, upd); err != nil {
		return err
	}

	s.publish(ctx, events.ExpenseUpdated, id, owner)
	return nil
}

// Delete removes the owned record by ID. Deletion is keyed on the identifier,
// so field-for-field identical records are never an ambiguous target.
func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if err := s.expenses.DeleteExpense(ctx, owner, id); err != nil {
		return err
	}

	s.publish(ctx, events.ExpenseDeleted, id, owner)
	return nil
}

func (s *Service) publish(ctx context.Context, name, expenseID, owner string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.NewExpenseEvent(name, expenseID, owner)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"event", name, "expense_id", expenseID, "error", err)
	}
}
