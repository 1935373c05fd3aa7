package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
)

// serveIDs runs one request through RequestID and CorrelationID and
// returns the ids the handler saw plus the response.
func serveIDs(t *testing.T, headers map[string]string) (reqID, corrID string, w *httptest.ResponseRecorder) {
	t.Helper()

	router := gin.New()
	router.Use(RequestID(), CorrelationID())
	router.GET("/quotes/all", func(c *gin.Context) {
		reqID = RequestIDFromContext(c.Request.Context())
		corrID = CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/quotes/all", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return reqID, corrID, w
}

func TestRequestAndCorrelationID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		headers  map[string]string
		wantReq  string
		wantCorr string
	}{
		{
			name:     "caller ids are kept",
			headers:  map[string]string{HeaderRequestID: "req-1", HeaderCorrelationID: "cli-create-7"},
			wantReq:  "req-1",
			wantCorr: "cli-create-7",
		},
		{
			name:     "surrounding whitespace is dropped",
			headers:  map[string]string{HeaderRequestID: "  req-2 ", HeaderCorrelationID: "corr-2"},
			wantReq:  "req-2",
			wantCorr: "corr-2",
		},
		{
			name:    "missing ids are minted",
			headers: nil,
		},
		{
			name:     "oversized ids are replaced",
			headers:  map[string]string{HeaderRequestID: strings.Repeat("x", maxIDLength+1), HeaderCorrelationID: "corr-3"},
			wantCorr: "corr-3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reqID, corrID, w := serveIDs(t, tt.headers)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, w.Header().Get(HeaderRequestID), reqID)
			assert.Equal(t, w.Header().Get(HeaderCorrelationID), corrID)

			if tt.wantReq != "" {
				assert.Equal(t, tt.wantReq, reqID)
			} else {
				assert.Len(t, reqID, 36)
			}

			if tt.wantCorr != "" {
				assert.Equal(t, tt.wantCorr, corrID)
			} else {
				assert.Len(t, corrID, 36)
			}
		})
	}
}

func TestIDs_TagRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(ContextLogger(logger), RequestID(), CorrelationID())
	router.GET("/quotes/all", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("listing quotes")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/quotes/all", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	req.Header.Set(HeaderCorrelationID, "corr-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
	assert.Contains(t, buf.String(), `"correlation_id":"corr-42"`)
}

func TestIDsFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, CorrelationIDFromContext(nil)) //nolint:staticcheck // nil guard

	ctx := ContextWithCorrelationID(ContextWithRequestID(context.Background(), "req-9"), "corr-9")

	assert.Equal(t, "req-9", RequestIDFromContext(ctx))
	assert.Equal(t, "corr-9", CorrelationIDFromContext(ctx))
}
