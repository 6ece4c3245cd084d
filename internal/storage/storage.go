// internal/storage/storage.go
package storage

import (
	"context"

	"finance-tracker/internal/domain"
)

type UserStorage interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	LinkTelegramID(ctx context.Context, userID, telegramID int64) error
}

type TransactionStorage interface {
	List(ctx context.Context, userID int64) ([]domain.Transaction, error)
	Create(ctx context.Context, userID int64, t domain.Transaction) (int64, error)
	Update(ctx context.Context, userID, id int64, description string, amount float64, category string) error
	Delete(ctx context.Context, userID, id int64) error
	ClearAll(ctx context.Context, userID int64) (int64, error)
	CategorySummary(ctx context.Context, userID int64) ([]domain.CategorySummary, error)
}
