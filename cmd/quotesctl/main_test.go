package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quoteshare/internal/adapters/auth"
	quoteshttp "github.com/jsamuelsen/quoteshare/internal/adapters/http"
	"github.com/jsamuelsen/quoteshare/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteshare/internal/adapters/store"
	"github.com/jsamuelsen/quoteshare/internal/app"
	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/platform/config"
	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
)

// newBackend serves the real API over a memory store, verifying tokens with
// the same default auth settings quotesctl loads.
func newBackend(t *testing.T) string {
	t.Helper()

	return serve(t, nil)
}

// serve is newBackend with a hook that may answer a request before the API
// does. It returns false to pass the request on.
func serve(t *testing.T, intercept func(http.ResponseWriter, *http.Request) bool) string {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg, err := config.Load("test")
	require.NoError(t, err)

	engine := gin.New()
	quoteshttp.SetupRouter(engine, quoteshttp.RouterConfig{
		Logger:   logging.Discard(),
		Verifier: auth.NewVerifier(cfg.Auth),
		QuoteHandler: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
			Repository: store.NewMemory(),
			Logger:     logging.Discard(),
		})),
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if intercept != nil && intercept(w, r) {
			return
		}

		engine.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	return srv.URL
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestQuotesctl_Lifecycle(t *testing.T) {
	base := newBackend(t)

	out, _, err := execute(t, "--base-url", base, "--as", "alice", "--email", "alice@example.com",
		"-o", "json", "create", "--text", "Simplicity is prerequisite for reliability", "--author", "Dijkstra")
	require.NoError(t, err)

	var created quoteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, "alice", created.UserID)
	assert.Equal(t, "alice@example.com", created.UserEmail)

	out, _, err = execute(t, "--base-url", base, "-o", "json", "list-all")
	require.NoError(t, err)

	var all []quoteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	require.Len(t, all, 1)

	out, _, err = execute(t, "--base-url", base, "--as", "bob", "-o", "json", "mine")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	_, stderr, err := execute(t, "--base-url", base, "--as", "bob", "delete", created.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "Not authorized")

	out, _, err = execute(t, "--base-url", base, "--as", "alice", "update", created.ID,
		"--text", "Simplicity is a prerequisite", "--author", "Dijkstra")
	require.NoError(t, err)
	assert.Contains(t, out, "Simplicity is a prerequisite")
	assert.Contains(t, out, "edited")

	out, _, err = execute(t, "--base-url", base, "--as", "alice", "delete", created.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Quote deleted")

	out, _, err = execute(t, "--base-url", base, "all")
	require.NoError(t, err)
	assert.Contains(t, out, "No quotes yet.")
}

func TestQuotesctl_CreateSucceedsWhenReloadFails(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) bool {
		if r.URL.Path != "/quotes/my" {
			return false
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"database unavailable"}`))

		return true
	})

	out, stderr, err := execute(t, "--base-url", base, "--as", "alice", "-o", "json",
		"create", "--text", "Talk is cheap", "--author", "Linus Torvalds")
	require.NoError(t, err)

	var created quoteJSON
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, stderr, "the failed reload is reported as a notice")

	out, _, err = execute(t, "--base-url", base, "-o", "json", "list-all")
	require.NoError(t, err)
	assert.Contains(t, out, created.ID)
}

func TestQuotesctl_SignedOut(t *testing.T) {
	base := newBackend(t)

	_, stderr, err := execute(t, "--base-url", base, "list-mine")

	require.Error(t, err)
	assert.Contains(t, stderr, "Not authenticated")
}

func TestQuotesctl_InvalidInputSendsNothing(t *testing.T) {
	_, stderr, err := execute(t, "--base-url", "http://127.0.0.1:1", "--token", "t", "create", "--text", " ", "--author", "x")

	require.Error(t, err)
	assert.Contains(t, stderr, "Invalid quote")
}

func TestQuotesctl_Unreachable(t *testing.T) {
	_, stderr, err := execute(t, "--base-url", "http://127.0.0.1:1", "all")

	require.Error(t, err)
	assert.Contains(t, stderr, "Cannot reach the Quotes API")
}

func TestQuotesctl_Token(t *testing.T) {
	out, _, err := execute(t, "--as", "carol", "token")
	require.NoError(t, err)

	cfg, err := config.Load("test")
	require.NoError(t, err)

	id, err := auth.NewVerifier(cfg.Auth).Verify(t.Context(), string(bytes.TrimSpace([]byte(out))))
	require.NoError(t, err)
	assert.Equal(t, "carol", id.Subject)

	_, _, err = execute(t, "token")
	assert.EqualError(t, err, "--as is required")
}

func TestBannerText(t *testing.T) {
	assert.Equal(t, "Quote not found.", bannerText(domain.NewNotFoundError("quote", "q1")))
	assert.Equal(t, "Not authenticated: pass --token or --as.", bannerText(domain.NewAuthError("missing token")))
	assert.Contains(t, bannerText(domain.NewServerError("quotes-api", 500, "boom")), "Something went wrong")
}
