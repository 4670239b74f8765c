// Package auth implements signup, login and session handling. Passwords are
// bcrypt-hashed before they touch the store; raw passwords are never persisted.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"spendbook/internal/core"
	"spendbook/internal/store"
)

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password, so login failures do not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUsernameTaken is returned by Signup for a duplicate username.
var ErrUsernameTaken = store.ErrDuplicateUsername

type Service struct {
	users      store.UserStore
	bcryptCost int
}

func NewService(users store.UserStore, bcryptCost int) *Service {
	return &Service{users: users, bcryptCost: bcryptCost}
}

// Signup creates a new account. Username matching is exact and case-sensitive.
func (s *Service) Signup(ctx context.Context, username, password string) (core.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return core.User{}, core.ErrEmptyUsername
	}
	if password == "" {
		return core.User{}, core.ErrEmptyPassword
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return core.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := core.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return core.User{}, err
	}

	slog.InfoContext(ctx, "Signup completed", "username", username)
	return u, nil
}

// Login verifies the credentials and returns the matching user. Unknown user
// and wrong password fail identically with ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (core.User, error) {
	u, err := s.users.GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return core.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return core.User{}, fmt.Errorf("look up user: %w", err)
	}
	if !CheckPassword(password, u.PasswordHash) {
		return core.User{}, ErrInvalidCredentials
	}

	slog.InfoContext(ctx, "Login succeeded", "username", username)
	return u, nil
}
