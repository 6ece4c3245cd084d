// cmd/api/main.go
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"finance-tracker/internal/auth"
	"finance-tracker/internal/config"
	"finance-tracker/internal/handler"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/storage/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}
	slog.Info("Connected to PostgreSQL")

	store := postgres.NewStorage(pool)

	tokenService := auth.NewTokenService(cfg)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	authHandler := handler.NewAuthHandler(store, tokenService)
	txHandler := handler.NewTransactionHandler(store)
	calcHandler := handler.NewCalculatorHandler()

	router := handler.NewRouter(authHandler, txHandler, calcHandler, authMiddleware)

	slog.Info("Server starting", "addr", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
