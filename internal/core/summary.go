package core

import "strings"

// Summary aggregates a set of expenses into total, paid and remaining amounts.
// Total == Paid + Remaining always holds.
type Summary struct {
	Total     Money
	Paid      Money
	Remaining Money
}

// Summarize computes the summary for the given expenses.
func Summarize(expenses []Expense) Summary {
	var s Summary
	for _, e := range expenses {
		s.Total.Cents += e.Amount.Cents
		if e.Paid {
			s.Paid.Cents += e.Amount.Cents
		}
	}
	s.Remaining.Cents = s.Total.Cents - s.Paid.Cents
	return s
}

// FilterByCategory returns the expenses matching the category filter,
// preserving input order. The sentinel CategoryAll (or an empty filter)
// returns the input unchanged.
func FilterByCategory(expenses []Expense, filter string) []Expense {
	if filter == "" || filter == CategoryAll {
		return expenses
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.CategoryMatches(filter) {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the distinct category names of the expenses, preserving
// first-seen order. Names differing only in case collapse to the first spelling.
func Categories(expenses []Expense) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(expenses))
	for _, e := range expenses {
		key := strings.ToLower(e.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e.Category)
	}
	return out
}
