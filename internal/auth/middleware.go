package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	claimsKey contextKey = "auth_claims"
	shopKey   contextKey = "auth_shop"
)

// ClaimsFromContext extracts session-token claims from request context.
func ClaimsFromContext(ctx context.Context) *SessionClaims {
	claims, _ := ctx.Value(claimsKey).(*SessionClaims)
	return claims
}

// ShopFromContext extracts the authenticated shop domain from request context.
func ShopFromContext(ctx context.Context) string {
	shop, _ := ctx.Value(shopKey).(string)
	return shop
}

// AuthenticateAdmin returns middleware that validates Shopify session tokens
// on admin endpoints and stores the shop identity in the request context.
func AuthenticateAdmin(verifier *TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"missing Authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"invalid Authorization format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				http.Error(w, `{"code":"UNAUTHORIZED","message":"invalid session token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, shopKey, claims.Shop())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
