// Package sqlite implements the store interfaces on an embedded SQLite
// database, for deployments that outgrow the flat-file backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"spendbook/internal/core"
	"spendbook/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) CreateUser(ctx context.Context, u core.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.CreatedAt)
	if err != nil {
		// The UNIQUE constraint on username is the authoritative duplicate check.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "username", u.Username, "user_id", u.ID)
	return nil
}

func (r *Repository) GetUser(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, store.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *Repository) AddExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, owner, date, category, amount_cents, description, is_paid, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Owner, e.Date, e.Category, e.Amount.Cents, e.Description, e.Paid, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("add expense: %w", err)
	}
	return nil
}

func (r *Repository) ListExpenses(ctx context.Context, owner string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, date, category, amount_cents, description, is_paid, created_at
		 FROM expenses WHERE owner = ? ORDER BY rowid`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *Repository) GetExpense(ctx context.Context, owner, id string) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner, date, category, amount_cents, description, is_paid, created_at
		 FROM expenses WHERE id = ? AND owner = ?`,
		id, owner)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, store.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func (r *Repository) UpdateExpense(ctx context.Context, owner, id string, upd store.ExpenseUpdate) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET date = ?, category = ?, amount_cents = ?, description = ?, is_paid = ?
		 WHERE id = ? AND owner = ?`,
		upd.Date, upd.Category, upd.Amount.Cents, upd.Description, upd.Paid, id, owner)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteExpense(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var e core.Expense
	err := row.Scan(&e.ID, &e.Owner, &e.Date, &e.Category, &e.Amount.Cents,
		&e.Description, &e.Paid, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, err
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	return e, nil
}
