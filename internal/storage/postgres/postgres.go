// internal/storage/postgres/postgres.go
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage implements storage.UserStorage and storage.TransactionStorage
// over a pgx connection pool. Every query touching transactions is
// filtered by the owning user id; there is no unscoped read or write.
type Storage struct {
	db *pgxpool.Pool
}

func NewStorage(db *pgxpool.Pool) *Storage {
	return &Storage{db: db}
}
