package ports

import (
	"context"

	"github.com/br-labs/restaurant-api/internal/core/domain"
)

// AuthService defines registration and login use cases.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenClaims is the identity carried inside a verified token.
type TokenClaims struct {
	UserID string
	Roles  []string
}

// TokenService issues and verifies the signed, time-limited bearer
// tokens used to authenticate requests. Tokens are stateless: validity
// derives entirely from the signature and expiry, so revocation is not
// supported.
type TokenService interface {
	Issue(userID string, roles []string) (string, error)
	// Validate reports whether token is well-formed, carries a valid
	// signature, and has not expired. A token without an expiry claim
	// is invalid. It never panics and never returns an error; any
	// defect makes the token invalid.
	Validate(token string) bool
	// ExtractUserID returns the subject claim of a token. Callers are
	// expected to Validate first; malformed input yields an error, never
	// a panic.
	ExtractUserID(token string) (string, error)
	// ExtractClaims returns the full identity claims of a token.
	ExtractClaims(token string) (*TokenClaims, error)
}
