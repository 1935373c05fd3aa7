//go:build integration

package integration

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteshare/internal/adapters/auth"
	"github.com/jsamuelsen/quoteshare/internal/adapters/clients"
	"github.com/jsamuelsen/quoteshare/internal/adapters/clients/acl"
	quoteshttp "github.com/jsamuelsen/quoteshare/internal/adapters/http"
	"github.com/jsamuelsen/quoteshare/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteshare/internal/adapters/store"
	"github.com/jsamuelsen/quoteshare/internal/app"
	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/platform/config"
	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

var stackAuth = config.AuthConfig{
	JWTSecret: "integration-secret-0123456789abcdef",
	Issuer:    "quoteshare-integration",
	Audience:  "quotes-api",
	TokenTTL:  time.Minute,
	Leeway:    time.Second,
}

// stack is the whole system in one process: real client, gin router,
// memory store, all talking over a loopback HTTP server.
type stack struct {
	server *httptest.Server
	issuer *auth.Issuer
	client *acl.QuoteClient
}

func newStack() (*stack, error) {
	gin.SetMode(gin.TestMode)

	repo := store.NewMemory()
	registry := ports.NewHealthRegistry()

	if err := registry.Register(repo); err != nil {
		return nil, err
	}

	engine := gin.New()
	quoteshttp.SetupRouter(engine, quoteshttp.RouterConfig{
		Logger:        logging.Discard(),
		Verifier:      auth.NewVerifier(stackAuth),
		CORS:          config.CORSConfig{AllowedOrigins: []string{"*"}},
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("quoteshare", "it", "none", "now")),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Repository: repo,
			Logger:     logging.Discard(),
		})),
		Timeout: 5 * time.Second,
	})

	server := httptest.NewServer(engine)

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     server.URL,
		ServiceName: "quotes-api",
		Timeout:     5 * time.Second,
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Logger: logging.Discard(),
	})
	if err != nil {
		server.Close()
		return nil, err
	}

	return &stack{
		server: server,
		issuer: auth.NewIssuer(stackAuth),
		client: acl.NewQuoteClient(acl.QuoteClientConfig{Client: httpClient, Logger: logging.Discard()}),
	}, nil
}

func newTestStack(t *testing.T) *stack {
	t.Helper()

	s, err := newStack()
	require.NoError(t, err)
	t.Cleanup(s.close)

	return s
}

func (s *stack) close() {
	s.server.Close()
}

// tokens returns a token source for a user. The email is derived from the name.
func (s *stack) tokens(user string) ports.TokenSource {
	return s.issuer.Source(domain.Identity{Subject: "uid-" + user, Email: user + "@example.com"})
}

// board returns a fresh board signed in as user; an empty user is signed out.
func (s *stack) board(user string) *app.Board {
	var tokens ports.TokenSource
	if user != "" {
		tokens = s.tokens(user)
	}

	return app.NewBoard(app.BoardConfig{
		Client: s.client,
		Tokens: tokens,
		Logger: logging.Discard(),
	})
}
