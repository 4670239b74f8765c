package core

import (
	"errors"
	"testing"
)

func validExpense() Expense {
	return Expense{
		ID:          "e1",
		Owner:       "alice",
		Date:        "2024-01-01",
		Category:    "Food",
		Amount:      Money{Cents: 1250},
		Description: "groceries",
	}
}

func TestExpenseValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{"valid", func(e *Expense) {}, nil},
		{"empty owner", func(e *Expense) { e.Owner = " " }, ErrEmptyOwner},
		{"bad date", func(e *Expense) { e.Date = "01/02/2024" }, ErrInvalidDate},
		{"empty date", func(e *Expense) { e.Date = "" }, ErrInvalidDate},
		{"empty category", func(e *Expense) { e.Category = "" }, ErrEmptyCategory},
		{"empty description", func(e *Expense) { e.Description = "  " }, ErrEmptyDescription},
		{"zero amount", func(e *Expense) { e.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(e *Expense) { e.Amount = Money{Cents: -5} }, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validExpense()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCategoryMatches(t *testing.T) {
	e := validExpense()
	cases := []struct {
		filter string
		want   bool
	}{
		{"All", true},
		{"", true},
		{"Food", true},
		{"food", true},
		{"FOOD", true},
		{"Rent", false},
	}
	for _, tc := range cases {
		if got := e.CategoryMatches(tc.filter); got != tc.want {
			t.Fatalf("filter %q: expected %v, got %v", tc.filter, tc.want, got)
		}
	}
}

func TestUserValidate(t *testing.T) {
	u := User{Username: "alice", PasswordHash: "x"}
	if err := u.Validate(); err != nil {
		t.Fatalf("valid user rejected: %v", err)
	}
	u.Username = ""
	if err := u.Validate(); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
}
