// internal/client/state.go
package client

import (
	"context"
	"time"

	"finance-tracker/internal/domain"
)

// Controller keeps the authoritative local copy of the transaction list.
// Derived views (totals, averages, filters) are computed from that copy
// without extra round-trips. Every mutation goes to the server first and
// then refreshes the list, so the cached state only ever reflects rows
// the server has acknowledged.
type Controller struct {
	api          *Client
	transactions []domain.Transaction
}

func NewController(api *Client) *Controller {
	return &Controller{api: api}
}

// Refresh replaces the local list with the server's. On error the previous
// list is kept.
func (s *Controller) Refresh(ctx context.Context) error {
	list, err := s.api.ListTransactions(ctx)
	if err != nil {
		return err
	}
	s.transactions = list
	return nil
}

func (s *Controller) Add(ctx context.Context, description string, amount float64, category, date string) error {
	if _, err := s.api.CreateTransaction(ctx, description, amount, category, date); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *Controller) Update(ctx context.Context, id int64, description string, amount float64, category string) error {
	if err := s.api.UpdateTransaction(ctx, id, description, amount, category); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *Controller) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *Controller) Clear(ctx context.Context) error {
	if err := s.api.ClearTransactions(ctx); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Transactions returns a copy of the cached list.
func (s *Controller) Transactions() []domain.Transaction {
	out := make([]domain.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// TotalSpent is the sum over the cached list.
func (s *Controller) TotalSpent() float64 {
	var total float64
	for _, t := range s.transactions {
		total += t.Amount
	}
	return total
}

// AverageAmount is TotalSpent divided by the row count, zero when empty.
func (s *Controller) AverageAmount() float64 {
	if len(s.transactions) == 0 {
		return 0
	}
	return s.TotalSpent() / float64(len(s.transactions))
}

// CategoryTotals recomputes per-category sums locally. The result matches
// the server's /api/category-summary for the same rows.
func (s *Controller) CategoryTotals() map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range s.transactions {
		totals[t.Category] += t.Amount
	}
	return totals
}

// FilterByCategory returns the cached rows with the given category.
func (s *Controller) FilterByCategory(category string) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// FilterByDateRange returns cached rows whose date falls in [from, to]
// inclusive. Rows with unparseable dates are skipped.
func (s *Controller) FilterByDateRange(from, to time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range s.transactions {
		ts, err := parseDate(t.Date)
		if err != nil {
			continue
		}
		if ts.Before(from) || ts.After(to) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", s)
}
