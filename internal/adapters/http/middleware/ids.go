// Package middleware holds the gin middleware in front of the quotes routes.
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
)

const (
	// HeaderRequestID identifies one HTTP call to the Quotes API.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID spans a whole user action, such as a create and
	// the reload of "mine" that follows it.
	HeaderCorrelationID = "X-Correlation-ID"

	// maxIDLength bounds caller-supplied ids before they reach log lines.
	maxIDLength = 128
)

type idKey string

const (
	requestIDKey     idKey = "request_id"
	correlationIDKey idKey = "correlation_id"
)

// RequestID tags every call with an id. A caller's X-Request-ID is kept,
// otherwise a UUID v4 is minted. The id is echoed in the response, stored
// for the quotes client to forward and added to the request logger.
func RequestID() gin.HandlerFunc {
	return tagRequest(HeaderRequestID, requestIDKey, logging.WithRequestID)
}

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return tagRequest(HeaderCorrelationID, correlationIDKey, logging.WithCorrelationID)
}

func tagRequest(header string, key idKey, tagLogger func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(header))
		if id == "" || len(id) > maxIDLength {
			id = uuid.NewString()
		}

		c.Header(header, id)

		ctx := context.WithValue(c.Request.Context(), key, id)
		c.Request = c.Request.WithContext(tagLogger(ctx, id))

		c.Next()
	}
}

// RequestIDFromContext returns the id stored by RequestID or
// ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idFrom(ctx, requestIDKey)
}

// CorrelationIDFromContext returns the id stored by CorrelationID or
// ContextWithCorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idFrom(ctx, correlationIDKey)
}

// ContextWithRequestID lets code outside the server, like the CLI, choose
// the request id the quotes client forwards.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID is ContextWithRequestID for the correlation id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func idFrom(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
