// Package http wires the HTTP surface: routing, session enforcement,
// form handling and HTML rendering. Handlers hold no business logic; they
// translate requests into service calls and render the result.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"spendbook/internal/auth"
	"spendbook/internal/expense"
	applog "spendbook/internal/log"
	"spendbook/internal/middleware/ratelimit"
	"spendbook/internal/middleware/security"
	"spendbook/internal/middleware/trace"
	appweb "spendbook/web"
)

// Options collects the dependencies handlers need.
type Options struct {
	Auth     *auth.Service
	Expenses *expense.Service
	Sessions *auth.SessionManager
	Logger   *applog.Logger

	RequestsPerMinute int
}

type Server struct {
	http.Server

	templates *template.Template
	auth      *auth.Service
	expenses  *expense.Service
	sessions  *auth.SessionManager
	limiter   *ratelimit.Limiter
	logger    *applog.Logger

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.Config{})
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		templates: t,
		auth:      opts.Auth,
		expenses:  opts.Expenses,
		sessions:  opts.Sessions,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RequestsPerMinute,
		}),
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(trace.Middleware(logger))
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(limitMutations(s.limiter))

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	// Static assets served from the embedded FS
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssets(3600)).Handle("/static/*", static)
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	r.Get("/signup", s.handleSignupForm)
	r.Post("/signup", s.handleSignup)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(s.requireUser)
		pr.Get("/", s.handleHome)
		pr.Get("/add", s.handleAddForm)
		pr.Post("/add", s.handleAdd)
		pr.Get("/view", s.handleView)
		pr.Get("/update/{id}", s.handleUpdateForm)
		pr.Post("/update/{id}", s.handleUpdate)
		pr.Post("/delete/{id}", s.handleDelete)
	})

	s.Server = http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s, nil
}

// Shutdown stops the HTTP server and the limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// limitMutations rate-limits POST requests only; pure page reads stay cheap.
func limitMutations(l *ratelimit.Limiter) func(http.Handler) http.Handler {
	limited := l.Middleware(trace.ClientIP, nil)
	return func(next http.Handler) http.Handler {
		guarded := limited(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				guarded.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type contextKey string

const userKey contextKey = "user"

// requireUser redirects anonymous requests to the login page. There is no
// error page and no distinction from an expired session.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, err := s.sessions.Identify(r)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the username placed in the context by requireUser.
func currentUser(r *http.Request) string {
	if u, ok := r.Context().Value(userKey).(string); ok {
		return u
	}
	return ""
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// render executes the named template, failing with a 500 on template errors.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			applog.FieldError, err, "template", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
