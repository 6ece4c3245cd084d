// internal/storage/memory/memory.go

// Package memory is an in-memory implementation of the storage interfaces
// with the same ownership-scoping semantics as the postgres one. Tests run
// the full HTTP stack against it instead of a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"finance-tracker/internal/domain"
)

type Storage struct {
	mu           sync.RWMutex
	users        map[int64]*domain.User
	transactions map[int64]*domain.Transaction
	nextUserID   int64
	nextTxID     int64
}

func NewStorage() *Storage {
	return &Storage{
		users:        make(map[int64]*domain.User),
		transactions: make(map[int64]*domain.Transaction),
		nextUserID:   1,
		nextTxID:     1,
	}
}

func (s *Storage) CreateUser(_ context.Context, username, passwordHash string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	user := &domain.User{ID: s.nextUserID, Username: username, PasswordHash: passwordHash}
	s.users[user.ID] = user
	s.nextUserID++
	out := *user
	return &out, nil
}

func (s *Storage) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Storage) FindByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.TelegramID == telegramID {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Storage) LinkTelegramID(_ context.Context, userID, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.TelegramID = telegramID
	return nil
}

func (s *Storage) List(_ context.Context, userID int64) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []domain.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			list = append(list, *t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *Storage) Create(_ context.Context, userID int64, t domain.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextTxID
	t.UserID = userID
	s.transactions[t.ID] = &t
	s.nextTxID++
	return t.ID, nil
}

func (s *Storage) Update(_ context.Context, userID, id int64, description string, amount float64, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	t.Description = description
	t.Amount = amount
	t.Category = category
	return nil
}

func (s *Storage) Delete(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *Storage) ClearAll(_ context.Context, userID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, t := range s.transactions {
		if t.UserID == userID {
			delete(s.transactions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Storage) CategorySummary(_ context.Context, userID int64) ([]domain.CategorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]float64)
	for _, t := range s.transactions {
		if t.UserID == userID {
			totals[t.Category] += t.Amount
		}
	}

	var summary []domain.CategorySummary
	for category, amount := range totals {
		summary = append(summary, domain.CategorySummary{Category: category, Amount: amount})
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].Category < summary[j].Category })
	return summary, nil
}
