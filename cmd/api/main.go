package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spendtrack/spendtrack-go/internal/auth"
	"github.com/spendtrack/spendtrack-go/internal/config"
	"github.com/spendtrack/spendtrack-go/internal/handler"
	"github.com/spendtrack/spendtrack-go/internal/repository"
	"github.com/spendtrack/spendtrack-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database initialization failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewHasher()

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, hasher, tokens))
	userHandler := handler.NewUserHandler(service.NewUserService(userRepo))
	categoryHandler := handler.NewCategoryHandler(service.NewCategoryService(categoryRepo))
	expenseHandler := handler.NewExpenseHandler(service.NewExpenseService(expenseRepo, categoryRepo))

	router := handler.NewRouter(authHandler, userHandler, categoryHandler, expenseHandler,
		tokens, handler.DefaultRouterConfig())

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
