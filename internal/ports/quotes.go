// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrForbidden, etc.)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/jsamuelsen/quoteshare/internal/domain"
)

// TokenSource supplies a bearer token for the signed-in user.
// It is called immediately before every protected request; callers must not
// cache the result.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenVerifier decodes and verifies a bearer token into an identity.
// Returns domain.ErrUnauthorized for any invalid, expired or malformed token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// QuoteClient is the typed client for the remote Quotes API.
//
// Key considerations:
//   - Each call issues at most one outbound request and never retries
//   - Invalid input and missing credentials are rejected without a request
//   - Remote failures are mapped to domain errors
type QuoteClient interface {
	// ListAll returns every quote. It sends no credentials.
	ListAll(ctx context.Context) ([]domain.Quote, error)

	// ListMine returns the quotes owned by the token's identity.
	ListMine(ctx context.Context, tokens TokenSource) ([]domain.Quote, error)

	// Create submits a new quote owned by the token's identity.
	Create(ctx context.Context, input domain.QuoteInput, tokens TokenSource) (*domain.Quote, error)

	// Update replaces text and author of a quote the caller owns.
	Update(ctx context.Context, id string, input domain.QuoteInput, tokens TokenSource) (*domain.Quote, error)

	// Delete removes a quote the caller owns.
	Delete(ctx context.Context, id string, tokens TokenSource) error
}

// QuoteRepository persists quotes for the backend.
// List methods return quotes in creation order; an empty store yields an
// empty, non-nil slice.
type QuoteRepository interface {
	// List returns all quotes.
	List(ctx context.Context) ([]domain.Quote, error)

	// ListByOwner returns the quotes whose UserID equals owner.
	ListByOwner(ctx context.Context, owner string) ([]domain.Quote, error)

	// Get retrieves a quote by id.
	// Returns domain.ErrNotFound if the quote does not exist.
	Get(ctx context.Context, id string) (*domain.Quote, error)

	// Insert stores a new quote.
	Insert(ctx context.Context, q *domain.Quote) error

	// Replace overwrites an existing quote.
	// Returns domain.ErrNotFound if the quote does not exist.
	Replace(ctx context.Context, q *domain.Quote) error

	// Delete removes a quote by id.
	// Returns domain.ErrNotFound if the quote does not exist.
	Delete(ctx context.Context, id string) error
}
