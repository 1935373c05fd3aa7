// Package store provides quote repositories for the Quotes API backend.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// Memory is an in-process quote repository. Quotes are listed in insertion
// order, which matches created_at order because the service stamps them.
// Callers always receive copies.
type Memory struct {
	mu     sync.RWMutex
	order  []string
	quotes map[string]domain.Quote
}

var _ ports.QuoteRepository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{quotes: make(map[string]domain.Quote)}
}

// List returns every quote.
func (m *Memory) List(_ context.Context) ([]domain.Quote, error) {
	return m.filter(func(domain.Quote) bool { return true }), nil
}

// ListByOwner returns the quotes whose UserID equals owner.
func (m *Memory) ListByOwner(_ context.Context, owner string) ([]domain.Quote, error) {
	return m.filter(func(q domain.Quote) bool { return q.UserID == owner }), nil
}

func (m *Memory) filter(keep func(domain.Quote) bool) []domain.Quote {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Quote, 0, len(m.order))
	for _, id := range m.order {
		if q := m.quotes[id]; keep(q) {
			out = append(out, q)
		}
	}

	return out
}

// Get returns the quote with the given id or a NotFoundError.
func (m *Memory) Get(_ context.Context, id string) (*domain.Quote, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.quotes[id]
	if !ok {
		return nil, domain.NewNotFoundError("quote", id)
	}

	return &q, nil
}

// Insert stores a new quote. Inserting an existing id is a validation error.
func (m *Memory) Insert(_ context.Context, q *domain.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.quotes[q.ID]; exists {
		return domain.NewValidationErrorWithValue("id", "already exists", q.ID)
	}

	m.quotes[q.ID] = *q
	m.order = append(m.order, q.ID)

	return nil
}

// Replace overwrites a stored quote in place, keeping its position.
func (m *Memory) Replace(_ context.Context, q *domain.Quote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.quotes[q.ID]; !exists {
		return domain.NewNotFoundError("quote", q.ID)
	}

	m.quotes[q.ID] = *q

	return nil
}

// Delete removes a quote.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.quotes[id]; !exists {
		return domain.NewNotFoundError("quote", id)
	}

	delete(m.quotes, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })

	return nil
}

// Name implements ports.HealthChecker.
func (m *Memory) Name() string {
	return "quote-store"
}

// Check implements ports.HealthChecker. The memory store is always ready.
func (m *Memory) Check(_ context.Context) error {
	return nil
}
