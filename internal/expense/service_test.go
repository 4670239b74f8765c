package expense

import (
	"context"
	"errors"
	"testing"

	"spendbook/internal/core"
	"spendbook/internal/events"
	"spendbook/internal/store"
	"spendbook/internal/store/jsonfile"
)

type recordingPublisher struct {
	published []events.ExpenseEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.ExpenseEvent) error {
	p.published = append(p.published, e)
	return nil
}

func newTestService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()
	st, err := jsonfile.New(t.TempDir())
	if err != nil {
		t.Fatalf("jsonfile.New: %v", err)
	}
	pub := &recordingPublisher{}
	return NewService(st, pub), pub
}

func addExpense(t *testing.T, svc *Service, owner, date, category string, cents int64, paid bool) core.Expense {
	t.Helper()
	e, err := svc.Add(context.Background(), owner, Input{
		Date:        date,
		Category:    category,
		Amount:      core.Money{Cents: cents},
		Description: "test expense",
		Paid:        paid,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	return e
}

func TestAddAssignsStableID(t *testing.T) {
	svc, pub := newTestService(t)

	e := addExpense(t, svc, "alice", "2024-01-01", "Food", 1250, false)
	if e.ID == "" {
		t.Fatal("add must assign an ID")
	}
	if len(pub.published) != 1 || pub.published[0].Name != events.ExpenseCreated {
		t.Fatalf("expected one created event, got %+v", pub.published)
	}
	if pub.published[0].ExpenseID != e.ID || pub.published[0].Owner != "alice" {
		t.Fatalf("event should reference the new expense: %+v", pub.published[0])
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "alice", Input{Date: "not-a-date", Category: "Food",
		Amount: core.Money{Cents: 100}, Description: "x"})
	if !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	_, err = svc.Add(ctx, "alice", Input{Date: "2024-01-01", Category: "Food",
		Description: "x"})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Fatalf("rejected input must not publish events: %+v", pub.published)
	}
}

func TestListFilterAndSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	addExpense(t, svc, "alice", "2024-01-01", "Food", 1250, false)
	addExpense(t, svc, "alice", "2024-01-02", "Rent", 90000, true)
	addExpense(t, svc, "bob", "2024-01-03", "Food", 777, false)

	// Case-insensitive category filter, owner-exclusive.
	res, err := svc.List(ctx, "alice", "food")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Expenses) != 1 || res.Expenses[0].Amount.Cents != 1250 {
		t.Fatalf("unexpected filtered list: %+v", res.Expenses)
	}
	if res.Summary.Total.Cents != 1250 || res.Summary.Paid.Cents != 0 || res.Summary.Remaining.Cents != 1250 {
		t.Fatalf("unexpected summary: %+v", res.Summary)
	}
	// Dropdown still lists all of alice's categories.
	if len(res.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", res.Categories)
	}

	// Empty filter defaults to the All sentinel.
	res, err = svc.List(ctx, "alice", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Category != core.CategoryAll || len(res.Expenses) != 2 {
		t.Fatalf("empty filter should behave like All: %+v", res)
	}
	if res.Summary.Total.Cents != 91250 || res.Summary.Paid.Cents != 90000 || res.Summary.Remaining.Cents != 1250 {
		t.Fatalf("unexpected summary for All: %+v", res.Summary)
	}
}

func TestUpdateReflectsInSubsequentList(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	e := addExpense(t, svc, "alice", "2024-01-01", "Food", 1250, false)

	err := svc.Update(ctx, "alice", e.ID, Input{
		Date:        "2024-01-01",
		Category:    "Food",
		Amount:      core.Money{Cents: 2000},
		Description: "more groceries",
		Paid:        false,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	res, err := svc.List(ctx, "alice", core.CategoryAll)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Expenses[0].Amount.Cents != 2000 {
		t.Fatalf("update not visible in list: %+v", res.Expenses[0])
	}
	last := pub.published[len(pub.published)-1]
	if last.Name != events.ExpenseUpdated {
		t.Fatalf("expected updated event, got %+v", last)
	}
}

func TestUpdateUnknownIDLeavesStoreUnchanged(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	addExpense(t, svc, "alice", "2024-01-01", "Food", 1250, false)

	err := svc.Update(ctx, "alice", "no-such-id", Input{
		Date: "2024-01-01", Category: "X", Amount: core.Money{Cents: 1}, Description: "d"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	res, err := svc.List(ctx, "alice", core.CategoryAll)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Expenses) != 1 || res.Expenses[0].Category != "Food" {
		t.Fatalf("store changed by failed update: %+v", res.Expenses)
	}
}

func TestDeleteOneItemListLeavesViewEmpty(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	e := addExpense(t, svc, "alice", "2024-01-01", "Food", 1250, false)
	if err := svc.Delete(ctx, "alice", e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	res, err := svc.List(ctx, "alice", core.CategoryAll)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Expenses) != 0 {
		t.Fatalf("expected empty view, got %+v", res.Expenses)
	}
	last := pub.published[len(pub.published)-1]
	if last.Name != events.ExpenseDeleted {
		t.Fatalf("expected deleted event, got %+v", last)
	}
}

func TestDeleteTargetsOnlyTheIdentifiedRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Two field-for-field identical records, distinct IDs.
	first := addExpense(t, svc, "alice", "2024-01-01", "Food", 1250, false)
	second := addExpense(t, svc, "alice", "2024-01-01", "Food", 1250, false)

	if err := svc.Delete(ctx, "alice", second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	res, err := svc.List(ctx, "alice", core.CategoryAll)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Expenses) != 1 || res.Expenses[0].ID != first.ID {
		t.Fatalf("delete removed the wrong record: %+v", res.Expenses)
	}
}

func TestNilPublisherIsANoOp(t *testing.T) {
	st, err := jsonfile.New(t.TempDir())
	if err != nil {
		t.Fatalf("jsonfile.New: %v", err)
	}
	svc := NewService(st, nil)

	if _, err := svc.Add(context.Background(), "alice", Input{
		Date: "2024-01-01", Category: "Food", Amount: core.Money{Cents: 100}, Description: "x"}); err != nil {
		t.Fatalf("add with nil publisher: %v", err)
	}
}
