package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/platform/config"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS quotes (
    id         TEXT PRIMARY KEY,
    text       TEXT NOT NULL,
    author     TEXT NOT NULL,
    user_id    TEXT NOT NULL,
    user_email TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quotes_user_created ON quotes(user_id, created_at);
`

const selectColumns = `SELECT id, text, author, user_id, user_email, created_at, updated_at FROM quotes`

// uniqueViolation is the SQLSTATE for a duplicate primary key.
const uniqueViolation = "23505"

// Postgres is a quote repository backed by a pgx connection pool.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ ports.QuoteRepository = (*Postgres)(nil)

// NewPostgres connects, pings and ensures the quotes table exists.
func NewPostgres(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Postgres, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing store dsn: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring quotes table: %w", err)
	}

	logger.Info("connected to postgres", slog.Int("max_conns", int(poolCfg.MaxConns)))

	return &Postgres{pool: pool, logger: logger}, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// List returns every quote, oldest first.
func (p *Postgres) List(ctx context.Context) ([]domain.Quote, error) {
	return p.query(ctx, selectColumns+` ORDER BY created_at, id`)
}

// ListByOwner returns the owner's quotes, oldest first.
func (p *Postgres) ListByOwner(ctx context.Context, owner string) ([]domain.Quote, error) {
	return p.query(ctx, selectColumns+` WHERE user_id = $1 ORDER BY created_at, id`, owner)
}

func (p *Postgres) query(ctx context.Context, sql string, args ...any) ([]domain.Quote, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying quotes: %w", err)
	}

	quotes, err := pgx.CollectRows(rows, scanQuote)
	if err != nil {
		return nil, fmt.Errorf("scanning quotes: %w", err)
	}

	if quotes == nil {
		quotes = []domain.Quote{}
	}

	return quotes, nil
}

// Get returns one quote or a NotFoundError.
func (p *Postgres) Get(ctx context.Context, id string) (*domain.Quote, error) {
	rows, err := p.pool.Query(ctx, selectColumns+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("querying quote: %w", err)
	}

	q, err := pgx.CollectExactlyOneRow(rows, scanQuote)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("quote", id)
	}

	if err != nil {
		return nil, fmt.Errorf("scanning quote: %w", err)
	}

	return &q, nil
}

// Insert stores a new quote.
func (p *Postgres) Insert(ctx context.Context, q *domain.Quote) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO quotes (id, text, author, user_id, user_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		q.ID, q.Text, q.Author, q.UserID, q.UserEmail, q.CreatedAt, q.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.NewValidationErrorWithValue("id", "already exists", q.ID)
	}

	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}

	return nil
}

// Replace overwrites text, author and updated_at. Ownership and creation
// fields are never changed.
func (p *Postgres) Replace(ctx context.Context, q *domain.Quote) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE quotes SET text = $2, author = $3, updated_at = $4 WHERE id = $1`,
		q.ID, q.Text, q.Author, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating quote: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("quote", q.ID)
	}

	return nil
}

// Delete removes a quote.
func (p *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting quote: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("quote", id)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (p *Postgres) Name() string {
	return "quote-store"
}

// Check implements ports.HealthChecker.
func (p *Postgres) Check(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func scanQuote(row pgx.CollectableRow) (domain.Quote, error) {
	var q domain.Quote

	err := row.Scan(&q.ID, &q.Text, &q.Author, &q.UserID, &q.UserEmail, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return domain.Quote{}, err
	}

	q.CreatedAt = q.CreatedAt.UTC()
	q.UpdatedAt = q.UpdatedAt.UTC()

	return q, nil
}
