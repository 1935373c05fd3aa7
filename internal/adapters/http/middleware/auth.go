package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quoteshare/internal/adapters/http/dto"
	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/platform/logging"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

const (
	// ContextKeyIdentity is the gin context key for the verified caller.
	ContextKeyIdentity = "identity"

	bearerPrefix = "bearer "
)

// RequireBearer returns middleware that verifies the Authorization bearer
// token and stores the caller's identity. Missing or invalid tokens abort
// with 401 UNAUTHORIZED.
func RequireBearer(verifier ports.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, "Not authenticated")
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logging.FromContext(c.Request.Context()).Debug("bearer token rejected",
				slog.Any("error", err),
			)
			dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, "Not authenticated")

			return
		}

		c.Set(ContextKeyIdentity, id)

		ctx := c.Request.Context()
		ctx = logging.WithContext(ctx, logging.FromContext(ctx).With(slog.String("user_id", id.Subject)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// BearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

// GetIdentity returns the verified caller stored by RequireBearer.
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	v, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return domain.Identity{}, false
	}

	id, ok := v.(domain.Identity)

	return id, ok
}
