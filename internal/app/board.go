package app

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// Board is the client-side view of the quote feed: the public list, the
// signed-in user's list, and the last error. After every mutation it
// refetches "mine" rather than patching local state. On failure the
// previous lists are kept and the error becomes the banner until dismissed.
type Board struct {
	client ports.QuoteClient
	tokens ports.TokenSource
	logger *slog.Logger

	mu   sync.RWMutex
	all  []domain.Quote
	mine []domain.Quote
	err  error
}

// BoardConfig contains configuration for the board.
type BoardConfig struct {
	Client ports.QuoteClient

	// Tokens may be nil for a signed-out board; protected actions then fail
	// with an AuthError without a request.
	Tokens ports.TokenSource
	Logger *slog.Logger
}

// NewBoard creates an empty board. Panics if Client is nil.
func NewBoard(cfg BoardConfig) *Board {
	if cfg.Client == nil {
		panic("Board: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Board{
		client: cfg.Client,
		tokens: cfg.Tokens,
		logger: logger,
		all:    []domain.Quote{},
		mine:   []domain.Quote{},
	}
}

// RefreshAll reloads the public list.
func (b *Board) RefreshAll(ctx context.Context) error {
	quotes, err := b.client.ListAll(ctx)
	if err != nil {
		return b.fail(ctx, "refresh all", err)
	}

	b.mu.Lock()
	b.all = quotes
	b.mu.Unlock()

	return nil
}

// RefreshMine reloads the caller's list.
func (b *Board) RefreshMine(ctx context.Context) error {
	quotes, err := b.client.ListMine(ctx, b.tokens)
	if err != nil {
		return b.fail(ctx, "refresh mine", err)
	}

	b.mu.Lock()
	b.mine = quotes
	b.mu.Unlock()

	return nil
}

// Refresh reloads both lists concurrently. Either failure leaves both
// lists as they were. A signed-out board has no "mine" and only reloads
// the public list.
func (b *Board) Refresh(ctx context.Context) error {
	if b.tokens == nil {
		return b.RefreshAll(ctx)
	}

	all, mine, err := Parallel2(ctx,
		b.client.ListAll,
		func(ctx context.Context) ([]domain.Quote, error) { return b.client.ListMine(ctx, b.tokens) },
	)
	if err != nil {
		return b.fail(ctx, "refresh", err)
	}

	b.mu.Lock()
	b.all, b.mine = all, mine
	b.mu.Unlock()

	return nil
}

// Create submits a new quote and reloads the caller's list. The returned
// error covers the submission only.
func (b *Board) Create(ctx context.Context, input domain.QuoteInput) (*domain.Quote, error) {
	q, err := b.client.Create(ctx, input, b.tokens)
	if err != nil {
		return nil, b.fail(ctx, "create", err)
	}

	b.refetchMine(ctx)

	return q, nil
}

// Update edits a quote and reloads the caller's list.
func (b *Board) Update(ctx context.Context, id string, input domain.QuoteInput) (*domain.Quote, error) {
	q, err := b.client.Update(ctx, id, input, b.tokens)
	if err != nil {
		return nil, b.fail(ctx, "update", err)
	}

	b.refetchMine(ctx)

	return q, nil
}

// Delete removes a quote and reloads the caller's list.
func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.client.Delete(ctx, id, b.tokens); err != nil {
		return b.fail(ctx, "delete", err)
	}

	b.refetchMine(ctx)

	return nil
}

// refetchMine reloads "mine" after a mutation that already succeeded. A
// failed reload only raises the banner.
func (b *Board) refetchMine(ctx context.Context) {
	_ = b.RefreshMine(ctx)
}

// All returns a copy of the public list.
func (b *Board) All() []domain.Quote {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.all)
}

// Mine returns a copy of the caller's list.
func (b *Board) Mine() []domain.Quote {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.mine)
}

// Err returns the banner error, or nil.
func (b *Board) Err() error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.err
}

// DismissError clears the banner.
func (b *Board) DismissError() {
	b.mu.Lock()
	b.err = nil
	b.mu.Unlock()
}

func (b *Board) fail(ctx context.Context, action string, err error) error {
	b.logger.WarnContext(ctx, "board action failed",
		slog.String("action", action),
		slog.Any("error", err),
	)

	b.mu.Lock()
	b.err = err
	b.mu.Unlock()

	return err
}
