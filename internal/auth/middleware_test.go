package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateAdminSetsShopContext(t *testing.T) {
	v := NewTokenVerifier(testSecret, testAPIKey)
	token := signSessionToken(t, testSecret, testAPIKey, "https://demo-shop.myshopify.com", time.Minute)

	var gotShop string
	h := AuthenticateAdmin(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotShop = ShopFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "demo-shop.myshopify.com", gotShop)
}

func TestAuthenticateAdminRejectsMissingHeader(t *testing.T) {
	v := NewTokenVerifier(testSecret, testAPIKey)
	h := AuthenticateAdmin(v)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/admin/settings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateAdminRejectsBadToken(t *testing.T) {
	v := NewTokenVerifier(testSecret, testAPIKey)
	h := AuthenticateAdmin(v)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("GET", "/admin/settings", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
