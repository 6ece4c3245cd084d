// internal/storage/postgres/users.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"finance-tracker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

func (s *Storage) CreateUser(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, username, password_hash
	`, username, passwordHash).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *Storage) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	var telegramID *int64
	err := s.db.QueryRow(ctx, `
		SELECT id, username, password_hash, telegram_id
		FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &telegramID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	if telegramID != nil {
		user.TelegramID = *telegramID
	}
	return &user, nil
}

func (s *Storage) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(ctx, `
		SELECT id, username, password_hash, telegram_id
		FROM users WHERE telegram_id = $1
	`, telegramID).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.TelegramID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by telegram id: %w", err)
	}
	return &user, nil
}

func (s *Storage) LinkTelegramID(ctx context.Context, userID, telegramID int64) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users SET telegram_id = $1 WHERE id = $2
	`, telegramID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("telegram account already linked: %w", domain.ErrValidation)
		}
		return fmt.Errorf("link telegram id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
