// Package acl implements the Anti-Corruption Layer pattern for external services.
// ACL adapters translate between external API models and domain models,
// protecting the domain from external system changes.
package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/jsamuelsen/quoteshare/internal/adapters/clients"
	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the Quotes API origin.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteClient against the Quotes API REST contract.
type QuoteClient struct {
	BaseAdapter

	logger *slog.Logger
}

var _ ports.QuoteClient = (*QuoteClient)(nil)

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.ServiceName()),
		logger:      logger,
	}
}

// quoteDTO is the wire representation of a quote.
// This is an internal type - never exposed outside the ACL.
type quoteDTO struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	CreatedAt timestamp `json:"created_at"`
	UpdatedAt timestamp `json:"updated_at"`
}

// quoteInputDTO is the request body for create and update.
type quoteInputDTO struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// timestamp accepts RFC 3339 as well as the zone-less ISO 8601 form
// ("2024-05-01T10:00:00.123456") some backends emit; the latter is read as UTC.
type timestamp struct{ time.Time }

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("unrecognised timestamp %q", s)
}

// ListAll fetches every quote. No credentials are sent.
// Implements ports.QuoteClient.
func (c *QuoteClient) ListAll(ctx context.Context) ([]domain.Quote, error) {
	c.logger.DebugContext(ctx, "listing all quotes")

	return c.list(ctx, call{
		method:    http.MethodGet,
		path:      "/quotes/all",
		operation: "list all quotes",
	})
}

// ListMine fetches the quotes owned by the token's identity.
// Implements ports.QuoteClient.
func (c *QuoteClient) ListMine(ctx context.Context, tokens ports.TokenSource) ([]domain.Quote, error) {
	const op = "list my quotes"

	token, err := bearer(ctx, tokens)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "listing own quotes")

	quotes, err := c.list(ctx, call{
		method:    http.MethodGet,
		path:      "/quotes/my",
		operation: op,
		opts:      []clients.RequestOption{clients.WithBearer(token)},
	})

	return quotes, credentialError(err)
}

// Create submits a new quote. Invalid input is rejected without a request.
// Implements ports.QuoteClient.
func (c *QuoteClient) Create(ctx context.Context, input domain.QuoteInput, tokens ports.TokenSource) (*domain.Quote, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	token, err := bearer(ctx, tokens)
	if err != nil {
		return nil, err
	}

	body, err := encodeInput(input)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "creating quote", slog.String("author", input.Author))

	q, err := c.one(ctx, call{
		method:    http.MethodPost,
		path:      "/quotes",
		body:      body,
		operation: "create quote",
		opts:      []clients.RequestOption{clients.WithBearer(token)},
	})
	if err != nil {
		return nil, credentialError(err)
	}

	return q, nil
}

// Update replaces text and author of an existing quote.
// Implements ports.QuoteClient.
func (c *QuoteClient) Update(ctx context.Context, id string, input domain.QuoteInput, tokens ports.TokenSource) (*domain.Quote, error) {
	if err := ValidateRequired(id, "id"); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	token, err := bearer(ctx, tokens)
	if err != nil {
		return nil, err
	}

	body, err := encodeInput(input)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "updating quote", slog.String("quote_id", id))

	return c.one(ctx, call{
		method:    http.MethodPut,
		path:      "/quotes/" + url.PathEscape(id),
		body:      body,
		operation: "update quote",
		entityID:  id,
		opts:      []clients.RequestOption{clients.WithBearer(token)},
	})
}

// Delete removes a quote. Any 2xx response is success; the body is ignored.
// Implements ports.QuoteClient.
func (c *QuoteClient) Delete(ctx context.Context, id string, tokens ports.TokenSource) error {
	if err := ValidateRequired(id, "id"); err != nil {
		return err
	}

	token, err := bearer(ctx, tokens)
	if err != nil {
		return err
	}

	c.logger.DebugContext(ctx, "deleting quote", slog.String("quote_id", id))

	body, err := c.do(ctx, call{
		method:    http.MethodDelete,
		path:      "/quotes/" + url.PathEscape(id),
		operation: "delete quote",
		entityID:  id,
		opts:      []clients.RequestOption{clients.WithBearer(token)},
	})
	if err != nil {
		return err
	}

	closeQuietly(body)

	return nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.ServiceName()
}

// Check calls the API root, which answers without authentication.
// Implements ports.HealthChecker.
func (c *QuoteClient) Check(ctx context.Context) error {
	body, err := c.do(ctx, call{
		method:    http.MethodGet,
		path:      "/",
		operation: "health check",
	})
	if err != nil {
		return err
	}

	closeQuietly(body)

	return nil
}

func (c *QuoteClient) list(ctx context.Context, req call) ([]domain.Quote, error) {
	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	dtos, err := DecodeResponse[[]quoteDTO](body)
	if err != nil {
		return nil, c.malformed(req.operation, err)
	}

	quotes, err := TranslateSlice(*dtos, translateQuote)
	if err != nil {
		return nil, c.malformed(req.operation, err)
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated quote list",
		slog.String("operation", req.operation),
		slog.Int("count", len(quotes)))

	return quotes, nil
}

func (c *QuoteClient) one(ctx context.Context, req call) (*domain.Quote, error) {
	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	dto, err := DecodeResponse[quoteDTO](body)
	if err != nil {
		return nil, c.malformed(req.operation, err)
	}

	q, err := translateQuote(dto)
	if err != nil {
		return nil, c.malformed(req.operation, err)
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated quote",
		slog.String("operation", req.operation),
		slog.String("quote_id", q.ID))

	return q, nil
}

// malformed reports a 2xx response whose body breaks the contract.
func (c *QuoteClient) malformed(operation string, err error) error {
	return domain.NewServerError(c.ServiceName(), 0, fmt.Sprintf("malformed %s response: %v", operation, err))
}

// translateQuote converts the wire DTO to a domain Quote.
func translateQuote(dto *quoteDTO) (*domain.Quote, error) {
	if dto.ID == "" {
		return nil, errors.New("quote without id")
	}

	return &domain.Quote{
		ID:        dto.ID,
		Text:      dto.Text,
		Author:    dto.Author,
		UserID:    dto.UserID,
		UserEmail: dto.UserEmail,
		CreatedAt: dto.CreatedAt.Time,
		UpdatedAt: dto.UpdatedAt.Time,
	}, nil
}

func encodeInput(input domain.QuoteInput) (*bytes.Reader, error) {
	b, err := json.Marshal(quoteInputDTO{Text: input.Text, Author: input.Author})
	if err != nil {
		return nil, fmt.Errorf("encoding quote input: %w", err)
	}

	return bytes.NewReader(b), nil
}

// bearer fetches a fresh token. A missing source, an error or an empty
// token all fail with an AuthError before any request is made.
func bearer(ctx context.Context, tokens ports.TokenSource) (string, error) {
	if tokens == nil {
		return "", domain.NewAuthError("no token source")
	}

	token, err := tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.NewAuthError("token unavailable"), err)
	}

	if token == "" {
		return "", domain.NewAuthError("empty token")
	}

	return token, nil
}

// credentialError reads a 403 on an owner-less call (list mine, create) as
// a credential problem: there is no resource whose ownership could fail.
func credentialError(err error) error {
	var forbidden *domain.ForbiddenError
	if errors.As(err, &forbidden) {
		return domain.NewAuthError(forbidden.Reason)
	}

	return err
}
