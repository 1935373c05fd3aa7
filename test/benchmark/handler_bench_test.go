package benchmark

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteshare/internal/adapters/auth"
	quoteshttp "github.com/jsamuelsen/quoteshare/internal/adapters/http"
	"github.com/jsamuelsen/quoteshare/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quoteshare/internal/adapters/store"
	"github.com/jsamuelsen/quoteshare/internal/app"
	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/platform/config"
	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

var benchAuth = config.AuthConfig{
	JWTSecret: "benchmark-secret-0123456789abcdef",
	Issuer:    "quoteshare-bench",
	Audience:  "quotes-api",
	TokenTTL:  time.Hour,
}

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// createGinContext creates a Gin context for handler testing.
func createGinContext(w http.ResponseWriter, r *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = r
	return c
}

// setupHealthHandler creates a HealthHandler with a minimal registry for benchmarking.
func setupHealthHandler() *handlers.HealthHandler {
	registry := ports.NewHealthRegistry()
	buildInfo := handlers.NewBuildInfo("quotes-api", "1.0.0", "abc123", "2024-01-01T00:00:00Z")
	return handlers.NewHealthHandler(registry, buildInfo)
}

// setupRouter builds the full API over a memory store seeded with n quotes.
func setupRouter(b *testing.B, n int) *gin.Engine {
	b.Helper()

	repo := store.NewMemory()
	service := app.NewQuoteService(app.QuoteServiceConfig{Repository: repo, Logger: logging.Discard()})

	for i := range n {
		_, err := service.Create(context.Background(),
			domain.Identity{Subject: fmt.Sprintf("user%d", i%10), Email: "bench@example.com"},
			domain.QuoteInput{Text: fmt.Sprintf("quote %d", i), Author: "bench"})
		if err != nil {
			b.Fatal(err)
		}
	}

	engine := gin.New()
	quoteshttp.SetupRouter(engine, quoteshttp.RouterConfig{
		Logger:       logging.Discard(),
		Verifier:     auth.NewVerifier(benchAuth),
		QuoteHandler: handlers.NewQuoteHandler(service),
	})

	return engine
}

// BenchmarkLivenessHandler measures the performance of the liveness endpoint.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := setupHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.Liveness(c)
	}
}

// BenchmarkReadinessHandler_WithChecks measures readiness with registered health checks.
func BenchmarkReadinessHandler_WithChecks(b *testing.B) {
	registry := ports.NewHealthRegistry()

	_ = registry.Register(store.NewMemory())
	_ = registry.Register(ports.HealthCheckerFunc{CheckerName: "upstream", Fn: func(context.Context) error { return nil }})

	handler := handlers.NewHealthHandler(registry, handlers.NewBuildInfo("quotes-api", "1.0.0", "abc123", "2024-01-01T00:00:00Z"))
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.Readiness(c)
	}
}

// BenchmarkListAll measures the public listing through the full middleware chain.
func BenchmarkListAll(b *testing.B) {
	for _, n := range []int{0, 100, 1000} {
		b.Run(fmt.Sprintf("quotes=%d", n), func(b *testing.B) {
			router := setupRouter(b, n)
			req := httptest.NewRequest(http.MethodGet, "/quotes/all", http.NoBody)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
			}
		})
	}
}

// BenchmarkListMine includes bearer token verification.
func BenchmarkListMine(b *testing.B) {
	router := setupRouter(b, 1000)

	token, err := auth.NewIssuer(benchAuth).Issue(domain.Identity{Subject: "user3", Email: "u3@example.com"})
	if err != nil {
		b.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/quotes/my", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// BenchmarkCreate measures binding, validation and insert.
func BenchmarkCreate(b *testing.B) {
	router := setupRouter(b, 0)

	token, err := auth.NewIssuer(benchAuth).Issue(domain.Identity{Subject: "writer", Email: "w@example.com"})
	if err != nil {
		b.Fatal(err)
	}

	const body = `{"text":"Measure twice, cut once","author":"Proverb"}`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
