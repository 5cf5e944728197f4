package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims holds the claims of a Shopify App Bridge session token. The
// dest claim carries the shop origin; it is the authenticated shop identity
// for all admin endpoints.
type SessionClaims struct {
	jwt.RegisteredClaims
	Dest string `json:"dest"`
	Sid  string `json:"sid,omitempty"`
}

// Shop returns the shop domain from the dest claim, without the scheme.
func (c *SessionClaims) Shop() string {
	return strings.TrimPrefix(strings.TrimPrefix(c.Dest, "https://"), "http://")
}

// TokenVerifier validates Shopify session tokens. Tokens are signed with the
// app's API secret (HS256) and carry the API key in the audience claim.
type TokenVerifier struct {
	secret []byte
	apiKey string
	leeway time.Duration
}

// NewTokenVerifier creates a verifier for the given app credentials.
func NewTokenVerifier(apiSecret, apiKey string) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(apiSecret),
		apiKey: apiKey,
		leeway: 5 * time.Second,
	}
}

// Verify parses and validates a session token, returning its claims.
func (v *TokenVerifier) Verify(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secret, nil
		},
		jwt.WithAudience(v.apiKey),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Shop() == "" {
		return nil, fmt.Errorf("session token missing dest claim")
	}

	return claims, nil
}
