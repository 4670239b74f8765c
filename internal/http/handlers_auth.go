package http

import (
	"errors"
	"net/http"
	"strings"

	"spendbook/internal/auth"
	applog "spendbook/internal/log"
)

type authPage struct {
	Flash *Flash
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "signup.html", authPage{Flash: popFlash(w, r)})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, "Invalid form submission")
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")

	_, err := s.auth.Signup(r.Context(), username, password)
	switch {
	case err == nil:
		flashSuccess(w, "Account created successfully! Please login.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, auth.ErrUsernameTaken):
		flashError(w, "Username already exists")
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
	default:
		if isBadInput(err) {
			flashError(w, "Username and password are required")
			http.Redirect(w, r, "/signup", http.StatusSeeOther)
			return
		}
		s.logger.ErrorContext(r.Context(), "Signup failed",
			applog.FieldError, err, applog.FieldUsername, username)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login.html", authPage{Flash: popFlash(w, r)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, "Invalid form submission")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")

	u, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.ErrorContext(r.Context(), "Login failed",
				applog.FieldError, err, applog.FieldUsername, username)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		flashError(w, "Invalid username or password")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := s.sessions.Issue(w, u.Username); err != nil {
		s.logger.ErrorContext(r.Context(), "Session issue failed",
			applog.FieldError, err, applog.FieldUsername, username)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	flashSuccess(w, "Login successful!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Clearing is unconditional; an absent session is a no-op.
	s.sessions.Clear(w)
	flashSuccess(w, "Logged out successfully")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type homePage struct {
	Flash    *Flash
	Username string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "home.html", homePage{
		Flash:    popFlash(w, r),
		Username: currentUser(r),
	})
}
