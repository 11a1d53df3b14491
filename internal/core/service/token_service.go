package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/br-labs/restaurant-api/internal/core/ports"
)

var errMalformedToken = errors.New("malformed token")

// TokenService issues and verifies HS256-signed bearer tokens. Validity
// is anchored on the signature and the expiry claim only; no server-side
// token state is kept, so issued tokens cannot be revoked before expiry.
type TokenService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewTokenService(secret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), tokenTTL: tokenTTL}
}

// Issue signs a token binding the subject user id and its role claims,
// expiring after the configured lifetime.
func (s *TokenService) Issue(userID string, roles []string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   userID,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate reports whether token is structurally well-formed (three
// non-empty dot-separated segments), carries a valid HS256 signature,
// and has not expired. A token without an expiry claim is invalid.
// Every defect yields false, never an error.
func (s *TokenService) Validate(token string) bool {
	if !wellFormed(token) {
		return false
	}

	parsed, err := jwt.Parse(token, s.keyFunc, jwt.WithExpirationRequired())
	return err == nil && parsed.Valid
}

// ExtractUserID returns the subject claim of token. Callers should
// Validate first; malformed or unverifiable input fails with an error.
func (s *TokenService) ExtractUserID(token string) (string, error) {
	claims, err := s.ExtractClaims(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// ExtractClaims parses token and returns its identity claims.
func (s *TokenService) ExtractClaims(token string) (*ports.TokenClaims, error) {
	if !wellFormed(token) {
		return nil, errMalformedToken
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc, jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errMalformedToken
	}

	return &ports.TokenClaims{UserID: sub, Roles: roleClaims(claims)}, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return s.secret, nil
}

// wellFormed checks for exactly three non-empty dot-separated segments.
func wellFormed(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// roleClaims decodes the roles claim, which arrives as []interface{}
// after JSON round-tripping.
func roleClaims(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if name, ok := r.(string); ok {
			roles = append(roles, name)
		}
	}
	return roles
}
