package http

import (
	"errors"
	"strings"

	"spendbook/internal/core"
)

// isBadInput reports whether the error is a user-input validation failure
// rather than an infrastructure problem.
func isBadInput(err error) bool {
	for _, target := range []error{
		core.ErrInvalidDate,
		core.ErrInvalidAmount,
		core.ErrEmptyCategory,
		core.ErrEmptyDescription,
		core.ErrDescriptionLong,
		core.ErrEmptyUsername,
		core.ErrEmptyPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// formErrorMessage maps validation errors to user-facing flash text.
func formErrorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Please enter a valid positive amount"
	case errors.Is(err, core.ErrInvalidDate):
		return "Please enter a valid date (YYYY-MM-DD)"
	case errors.Is(err, core.ErrEmptyCategory):
		return "Category is required"
	case errors.Is(err, core.ErrEmptyDescription):
		return "Description is required"
	case errors.Is(err, core.ErrDescriptionLong):
		return "Description must be at most 200 characters"
	default:
		return "Invalid input"
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
