package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"spendbook/internal/core"
	"spendbook/internal/store"
)

// memUsers is a minimal in-memory UserStore for service tests.
type memUsers struct {
	users []core.User
}

func (m *memUsers) CreateUser(_ context.Context, u core.User) error {
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return store.ErrDuplicateUsername
		}
	}
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) GetUser(_ context.Context, username string) (core.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return core.User{}, store.ErrNotFound
}

func TestSignupAndLogin(t *testing.T) {
	svc := NewService(&memUsers{}, bcrypt.MinCost)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.ID == "" {
		t.Fatal("signup should assign an ID")
	}
	if u.PasswordHash == "pw1" || !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Fatalf("password must be stored as a bcrypt hash, got %q", u.PasswordHash)
	}

	if _, err := svc.Login(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("login with correct password: %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	svc := NewService(&memUsers{}, bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(ctx, "alice", "pw2"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestSignupRejectsEmptyFields(t *testing.T) {
	svc := NewService(&memUsers{}, bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "  ", "pw"); !errors.Is(err, core.ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if _, err := svc.Signup(ctx, "alice", ""); !errors.Is(err, core.ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}
