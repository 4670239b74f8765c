// Package jsonfile implements the store interfaces over two flat JSON files,
// one holding a top-level array of users and one of expenses. Every operation
// reads the whole file and every mutation rewrites it; a mutex serializes
// read-modify-write cycles so concurrent requests cannot lose updates.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"spendbook/internal/core"
	"spendbook/internal/store"
)

const (
	usersFile    = "users.json"
	expensesFile = "expenses.json"
)

type Store struct {
	mu           sync.Mutex
	usersPath    string
	expensesPath string
}

// New bootstraps the data directory and initializes absent files to an empty
// JSON array, mirroring first-run behavior on a fresh deployment.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	s := &Store{
		usersPath:    filepath.Join(dir, usersFile),
		expensesPath: filepath.Join(dir, expensesFile),
	}
	for _, path := range []string{s.usersPath, s.expensesPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
				return nil, fmt.Errorf("initialize %s: %w", filepath.Base(path), err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
		}
	}
	return s, nil
}

func (s *Store) Close() error { return nil }

// readList parses the whole file as a JSON array. A missing or empty file is
// an empty list; malformed content is ErrStoreUnreadable, not silent data loss.
func readList[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", store.ErrStoreUnreadable, filepath.Base(path), err)
	}
	return out, nil
}

// writeList rewrites the file with the full list. An empty list is persisted
// as [] rather than null so a fresh read round-trips.
func writeList[T any](path string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, u core.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readList[core.User](s.usersPath)
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.Username == u.Username {
			return store.ErrDuplicateUsername
		}
	}
	users = append(users, u)
	if err := writeList(s.usersPath, users); err != nil {
		return err
	}
	slog.InfoContext(ctx, "User created", "username", u.Username, "user_id", u.ID)
	return nil
}

func (s *Store) GetUser(ctx context.Context, username string) (core.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readList[core.User](s.usersPath)
	if err != nil {
		return core.User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, store.ErrNotFound
}

func (s *Store) AddExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := readList[core.Expense](s.expensesPath)
	if err != nil {
		return err
	}
	expenses = append(expenses, e)
	return writeList(s.expensesPath, expenses)
}

func (s *Store) ListExpenses(ctx context.Context, owner string) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := readList[core.Expense](s.expensesPath)
	if err != nil {
		return nil, err
	}
	out := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) GetExpense(ctx context.Context, owner, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := readList[core.Expense](s.expensesPath)
	if err != nil {
		return core.Expense{}, err
	}
	for _, e := range expenses {
		if e.ID == id && e.Owner == owner {
			return e, nil
		}
	}
	return core.Expense{}, store.ErrNotFound
}

func (s *Store) UpdateExpense(ctx context.Context, owner, id string, upd store.ExpenseUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := readList[core.Expense](s.expensesPath)
	if err != nil {
		return err
	}
	for i := range expenses {
		if expenses[i].ID != id || expenses[i].Owner != owner {
			continue
		}
		expenses[i].Date = upd.Date
		expenses[i].Category = upd.Category
		expenses[i].Amount = upd.Amount
		expenses[i].Description = upd.Description
		expenses[i].Paid = upd.Paid
		if err := expenses[i].Validate(); err != nil {
			return err
		}
		return writeList(s.expensesPath, expenses)
	}
	return store.ErrNotFound
}

func (s *Store) DeleteExpense(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expenses, err := readList[core.Expense](s.expensesPath)
	if err != nil {
		return err
	}
	for i := range expenses {
		if expenses[i].ID == id && expenses[i].Owner == owner {
			expenses = append(expenses[:i], expenses[i+1:]...)
			return writeList(s.expensesPath, expenses)
		}
	}
	return store.ErrNotFound
}
