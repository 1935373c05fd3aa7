// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// QuoteService implements the Quotes API use cases on top of a repository.
// It assigns ids and timestamps and enforces ownership; the repository
// only stores what it is given.
type QuoteService struct {
	repo   ports.QuoteRepository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Logger     *slog.Logger

	// Clock and NewID are overridable for tests.
	Clock func() time.Time
	NewID func() string
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if Repository is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("QuoteService: Repository is required")
	}

	svc := &QuoteService{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		now:    cfg.Clock,
		newID:  cfg.NewID,
	}

	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	if svc.now == nil {
		svc.now = time.Now
	}

	if svc.newID == nil {
		svc.newID = uuid.NewString
	}

	return svc
}

// ListAll returns every quote. No identity is required.
func (s *QuoteService) ListAll(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}

	return quotes, nil
}

// ListMine returns the caller's quotes.
func (s *QuoteService) ListMine(ctx context.Context, caller domain.Identity) ([]domain.Quote, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}

	quotes, err := s.repo.ListByOwner(ctx, caller.Subject)
	if err != nil {
		return nil, fmt.Errorf("listing quotes for owner: %w", err)
	}

	return quotes, nil
}

// Create stores a new quote owned by the caller.
func (s *QuoteService) Create(ctx context.Context, caller domain.Identity, input domain.QuoteInput) (*domain.Quote, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.timestamp()
	q := &domain.Quote{
		ID:        s.newID(),
		Text:      input.Text,
		Author:    input.Author,
		UserID:    caller.Subject,
		UserEmail: caller.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, q); err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	s.logger.InfoContext(ctx, "quote created",
		slog.String("quote_id", q.ID),
		slog.String("user_id", q.UserID),
	)

	return q, nil
}

// Update replaces text and author of a quote the caller owns.
// A missing quote is reported before an ownership failure.
func (s *QuoteService) Update(ctx context.Context, caller domain.Identity, id string, input domain.QuoteInput) (*domain.Quote, error) {
	if err := requireIdentity(caller); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	q, err := s.owned(ctx, caller, id, "update quote")
	if err != nil {
		return nil, err
	}

	q.Text = input.Text
	q.Author = input.Author
	q.UpdatedAt = s.after(q.UpdatedAt)

	if err := s.repo.Replace(ctx, q); err != nil {
		return nil, fmt.Errorf("updating quote: %w", err)
	}

	s.logger.InfoContext(ctx, "quote updated", slog.String("quote_id", id))

	return q, nil
}

// Delete removes a quote the caller owns.
func (s *QuoteService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if err := requireIdentity(caller); err != nil {
		return err
	}

	if _, err := s.owned(ctx, caller, id, "delete quote"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	s.logger.InfoContext(ctx, "quote deleted", slog.String("quote_id", id))

	return nil
}

func (s *QuoteService) owned(ctx context.Context, caller domain.Identity, id, operation string) (*domain.Quote, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !q.OwnedBy(caller) {
		s.logger.WarnContext(ctx, "ownership check failed",
			slog.String("operation", operation),
			slog.String("quote_id", id),
			slog.String("user_id", caller.Subject),
		)

		return nil, domain.NewForbiddenError(operation, "Not authorized")
	}

	return q, nil
}

// timestamp is the current time in UTC at the microsecond precision the
// stores keep.
func (s *QuoteService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// after returns a timestamp strictly later than prev, even if the clock
// has not advanced.
func (s *QuoteService) after(prev time.Time) time.Time {
	now := s.timestamp()
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}

	return now
}

func requireIdentity(caller domain.Identity) error {
	if caller.Subject == "" {
		return domain.NewAuthError("missing identity")
	}

	return nil
}
