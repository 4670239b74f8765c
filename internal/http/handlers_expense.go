package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"spendbook/internal/core"
	"spendbook/internal/expense"
	applog "spendbook/internal/log"
	"spendbook/internal/store"
)

type addPage struct {
	Flash    *Flash
	Username string
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "add_expense.html", addPage{
		Flash:    popFlash(w, r),
		Username: currentUser(r),
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	owner := currentUser(r)

	in, err := parseExpenseForm(r)
	if err != nil {
		flashError(w, formErrorMessage(err))
		http.Redirect(w, r, "/add", http.StatusSeeOther)
		return
	}

	if _, err := s.expenses.Add(r.Context(), owner, in); err != nil {
		if isBadInput(err) {
			flashError(w, formErrorMessage(err))
			http.Redirect(w, r, "/add", http.StatusSeeOther)
			return
		}
		s.logger.ErrorContext(r.Context(), "Add expense failed",
			applog.FieldError, err, applog.FieldUsername, owner)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	flashSuccess(w, "Expense added successfully!")
	http.Redirect(w, r, "/view", http.StatusSeeOther)
}

type viewPage struct {
	Flash      *Flash
	Username   string
	Expenses   []core.Expense
	Summary    core.Summary
	Categories []string
	Selected   string
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	owner := currentUser(r)
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = core.CategoryAll
	}

	res, err := s.expenses.List(r.Context(), owner, category)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "List expenses failed",
			applog.FieldError, err, applog.FieldUsername, owner)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "view_expenses.html", viewPage{
		Flash:      popFlash(w, r),
		Username:   owner,
		Expenses:   res.Expenses,
		Summary:    res.Summary,
		Categories: res.Categories,
		Selected:   res.Category,
	})
}

type updatePage struct {
	Flash    *Flash
	Username string
	Expense  core.Expense
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	owner := currentUser(r)
	id := chi.URLParam(r, "id")

	e, err := s.expenses.Get(r.Context(), owner, id)
	if err != nil {
		// An unknown or foreign ID silently lands back on the list page.
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, "/view", http.StatusSeeOther)
			return
		}
		s.logger.ErrorContext(r.Context(), "Load expense failed",
			applog.FieldError, err, applog.FieldExpenseID, id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "update_expense.html", updatePage{
		Flash:    popFlash(w, r),
		Username: owner,
		Expense:  e,
	})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	owner := currentUser(r)
	id := chi.URLParam(r, "id")

	in, err := parseExpenseForm(r)
	if err != nil {
		flashError(w, formErrorMessage(err))
		http.Redirect(w, r, "/update/"+id, http.StatusSeeOther)
		return
	}

	switch err := s.expenses.Update(r.Context(), owner, id, in); {
	case err == nil:
		flashSuccess(w, "Expense updated successfully!")
		http.Redirect(w, r, "/view", http.StatusSeeOther)
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/view", http.StatusSeeOther)
	case isBadInput(err):
		flashError(w, formErrorMessage(err))
		http.Redirect(w, r, "/update/"+id, http.StatusSeeOther)
	default:
		s.logger.ErrorContext(r.Context(), "Update expense failed",
			applog.FieldError, err, applog.FieldExpenseID, id)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	owner := currentUser(r)
	id := chi.URLParam(r, "id")

	switch err := s.expenses.Delete(r.Context(), owner, id); {
	case err == nil:
		flashSuccess(w, "Expense deleted successfully!")
		http.Redirect(w, r, "/view", http.StatusSeeOther)
	case errors.Is(err, store.ErrNotFound):
		http.Redirect(w, r, "/view", http.StatusSeeOther)
	default:
		s.logger.ErrorContext(r.Context(), "Delete expense failed",
			applog.FieldError, err, applog.FieldExpenseID, id)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// parseExpenseForm reads the shared add/update form fields.
func parseExpenseForm(r *http.Request) (expense.Input, error) {
	if err := r.ParseForm(); err != nil {
		return expense.Input{}, core.ErrInvalidAmount
	}

	cents, err := core.ParseDecimalToCents(r.Form.Get("amount"))
	if err != nil {
		return expense.Input{}, err
	}

	return expense.Input{
		Date:        strings.TrimSpace(r.Form.Get("date")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Amount:      core.Money{Cents: cents},
		Description: sanitizeInput(r.Form.Get("description")),
		Paid:        r.Form.Get("is_paid") == "on",
	}, nil
}
