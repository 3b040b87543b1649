package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spendtrack/spendtrack-go/internal/auth"
	"github.com/spendtrack/spendtrack-go/internal/middleware"
)

// RouterConfig tunes the cross-cutting middleware; only the credential
// endpoints are rate limited.
type RouterConfig struct {
	AuthRPS   float64
	AuthBurst int
}

// DefaultRouterConfig returns the production middleware settings.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{AuthRPS: 5, AuthBurst: 10}
}

// NewRouter wires every route. The auth gate runs before every owner-scoped
// handler; signup, login and the health check stay outside it.
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	categoryHandler *CategoryHandler,
	expenseHandler *ExpenseHandler,
	tokens *auth.TokenService,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.AuthRPS, cfg.AuthBurst))
		r.Post("/api/auth/signup", authHandler.HandleSignup)
		r.Post("/api/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(tokens))

		r.Get("/api/users/me", userHandler.HandleGetMe)
		r.Put("/api/users/me", userHandler.HandleUpdateMe)
		r.Delete("/api/users/me", userHandler.HandleDeleteMe)

		r.Get("/api/categories", categoryHandler.HandleList)
		r.Post("/api/categories", categoryHandler.HandleCreate)
		r.Put("/api/categories/{id}", categoryHandler.HandleUpdate)
		r.Delete("/api/categories/{id}", categoryHandler.HandleDelete)

		r.Get("/api/expenses", expenseHandler.HandleList)
		r.Post("/api/expenses", expenseHandler.HandleCreate)
		r.Get("/api/expenses/{id}", expenseHandler.HandleGet)
		r.Put("/api/expenses/{id}", expenseHandler.HandleUpdate)
		r.Delete("/api/expenses/{id}", expenseHandler.HandleDelete)
	})

	return r
}
