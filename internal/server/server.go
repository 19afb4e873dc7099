package server

import (
	"context"
	"net/http"
	"time"

	"github.com/expensely/expensely-be/internal/auth"
	"github.com/expensely/expensely-be/internal/config"
	"github.com/expensely/expensely-be/internal/events"
	"github.com/expensely/expensely-be/internal/http/handlers"
	"github.com/expensely/expensely-be/internal/middleware"
	"github.com/expensely/expensely-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server. All
// collaborators are constructed once by the caller and injected here.
func New(cfg config.Config, store storage.ExpenseStore, authenticator auth.Authenticator, publisher events.Publisher) *Server {
	mux := http.NewServeMux()
	health := handlers.NewHealthHandler(time.Now())
	health.Register(mux)
	expenses := handlers.NewExpenseHandler(store, authenticator, publisher)
	expenses.Register(mux)

	handler := middleware.Recover(middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
