// Package auth issues and verifies the bearer tokens that identify quote owners.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsamuelsen/quoteshare/internal/domain"
	"github.com/jsamuelsen/quoteshare/internal/platform/config"
	"github.com/jsamuelsen/quoteshare/internal/ports"
)

// Claims are the JWT claims carried by a quoteshare token.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints HS256 tokens. It stands in for the external identity
// provider in local development and tests.
type Issuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewIssuer creates an issuer from auth configuration.
func NewIssuer(cfg config.AuthConfig) *Issuer {
	return &Issuer{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      cfg.TokenTTL,
		now:      time.Now,
	}
}

// Issue signs a token for the identity.
func (i *Issuer) Issue(id domain.Identity) (string, error) {
	if id.Subject == "" {
		return "", errors.New("issuing token: subject is required")
	}

	now := i.now()
	claims := Claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Subject,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Source returns a token source that mints a fresh token for id on every call.
func (i *Issuer) Source(id domain.Identity) ports.TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return i.Issue(id)
	})
}

// Verifier validates tokens minted with the shared secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier creates a verifier from auth configuration.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret: []byte(cfg.JWTSecret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithLeeway(cfg.Leeway),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify parses the token and returns the identity it carries.
// Every failure is a domain.AuthError.
func (v *Verifier) Verify(_ context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.NewAuthError("missing token")
	}

	var claims Claims

	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.NewAuthError(reason(err)), err)
	}

	if claims.Subject == "" {
		return domain.Identity{}, domain.NewAuthError("token has no subject")
	}

	return domain.Identity{Subject: claims.Subject, Email: claims.Email}, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "invalid signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed token"
	default:
		return "invalid token"
	}
}

// TokenFunc adapts a function to ports.TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

// Token implements ports.TokenSource.
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is a token source that always returns the same token.
type StaticToken string

// Token implements ports.TokenSource.
func (s StaticToken) Token(context.Context) (string, error) {
	return string(s), nil
}
