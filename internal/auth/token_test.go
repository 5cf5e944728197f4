package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-api-secret-test-api-secret!"
	testAPIKey = "test-api-key"
)

func signSessionToken(t *testing.T, secret, audience, dest string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    dest + "/admin",
			Subject:   "12345",
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
		Dest: dest,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyValidToken(t *testing.T) {
	v := NewTokenVerifier(testSecret, testAPIKey)
	token := signSessionToken(t, testSecret, testAPIKey, "https://demo-shop.myshopify.com", time.Minute)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "demo-shop.myshopify.com", claims.Shop())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewTokenVerifier(testSecret, testAPIKey)
	token := signSessionToken(t, "another-secret-another-secret!!!", testAPIKey, "https://demo-shop.myshopify.com", time.Minute)

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongAudience(t *testing.T) {
	v := NewTokenVerifier(testSecret, testAPIKey)
	token := signSessionToken(t, testSecret, "other-app-key", "https://demo-shop.myshopify.com", time.Minute)

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewTokenVerifier(testSecret, testAPIKey)
	token := signSessionToken(t, testSecret, testAPIKey, "https://demo-shop.myshopify.com", -time.Minute)

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsMissingDest(t *testing.T) {
	v := NewTokenVerifier(testSecret, testAPIKey)
	token := signSessionToken(t, testSecret, testAPIKey, "", time.Minute)

	_, err := v.Verify(token)
	assert.Error(t, err)
}

func TestShopStripsScheme(t *testing.T) {
	c := &SessionClaims{Dest: "https://demo-shop.myshopify.com"}
	assert.Equal(t, "demo-shop.myshopify.com", c.Shop())

	c = &SessionClaims{Dest: "demo-shop.myshopify.com"}
	assert.Equal(t, "demo-shop.myshopify.com", c.Shop())
}
