package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/expensely/expensely-be/internal/auth"
	"github.com/expensely/expensely-be/internal/config"
	"github.com/expensely/expensely-be/internal/events"
	"github.com/expensely/expensely-be/internal/server"
	"github.com/expensely/expensely-be/internal/storage"
	"github.com/expensely/expensely-be/internal/storage/memory"
	"github.com/expensely/expensely-be/internal/storage/postgres"
	"github.com/expensely/expensely-be/internal/storage/sqlite"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx := context.Background()

	store, cleanup, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	defer cleanup()

	authenticator := newAuthenticator(cfg)
	publisher := newPublisher(cfg)
	defer publisher.Close()

	srv := server.New(cfg, store, authenticator, publisher)

	go func() {
		slog.Info("expensely backend listening",
			"addr", cfg.HTTPAddress(),
			"store_backend", cfg.StoreBackend,
			"auth_backend", cfg.AuthBackend)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		slog.Error("graceful shutdown error", "error", err)
	}
}

func newStore(ctx context.Context, cfg config.Config) (storage.ExpenseStore, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		store, err := postgres.NewExpenseStore(ctx, cfg.DatabaseURL, cfg.Table)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.StoreSQLite:
		store, err := sqlite.NewExpenseStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.StoreMemory:
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
}

func newAuthenticator(cfg config.Config) auth.Authenticator {
	if cfg.AuthBackend == config.AuthStub {
		slog.Warn("using stub authenticator; every caller resolves to the development identity")
		return auth.NewStubAuthenticator()
	}
	return auth.NewTokenVerifier(cfg.JWTSecret, cfg.JWTIssuer)
}

func newPublisher(cfg config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Warn("AMQP unavailable, record events disabled", "error", err)
		return events.NopPublisher{}
	}
	slog.Info("record events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	return publisher
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
