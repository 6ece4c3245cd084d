// internal/storage/postgres/transactions.go
package postgres

import (
	"context"
	"fmt"

	"finance-tracker/internal/domain"
)

func (s *Storage) List(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, description, amount, category, date, user_id
		FROM transactions
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Category, &t.Date, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (s *Storage) Create(ctx context.Context, userID int64, t domain.Transaction) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO transactions (description, amount, category, date, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, t.Description, t.Amount, t.Category, t.Date, userID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	return id, nil
}

// Update changes description, amount and category only; date and owner are
// immutable. A row that does not exist and a row owned by another user are
// both reported as domain.ErrNotFound.
func (s *Storage) Update(ctx context.Context, userID, id int64, description string, amount float64, category string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE transactions
		SET description = $1, amount = $2, category = $3
		WHERE id = $4 AND user_id = $5
	`, description, amount, category, id, userID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, userID, id int64) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Storage) ClearAll(ctx context.Context, userID int64) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM transactions WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Storage) CategorySummary(ctx context.Context, userID int64) ([]domain.CategorySummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT category, SUM(amount) AS amount
		FROM transactions
		WHERE user_id = $1
		GROUP BY category
		ORDER BY category
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("category summary: %w", err)
	}
	defer rows.Close()

	var summary []domain.CategorySummary
	for rows.Next() {
		var cs domain.CategorySummary
		if err := rows.Scan(&cs.Category, &cs.Amount); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		summary = append(summary, cs)
	}
	return summary, rows.Err()
}
