package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-api/models"
	"marketplace-api/store"
	"marketplace-api/utils"
)

func okHandler(t *testing.T, wantEmail string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if wantEmail != "" {
			email, ok := EmailFromContext(r.Context())
			assert.True(t, ok)
			assert.Equal(t, wantEmail, email)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	utils.JwtKey = []byte("test-secret")
	utils.TokenTTL = time.Hour

	valid, err := utils.GenerateJWT("a@x.com")
	require.NoError(t, err)

	utils.TokenTTL = -time.Hour
	expired, err := utils.GenerateJWT("a@x.com")
	require.NoError(t, err)
	utils.TokenTTL = time.Hour

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer scheme", "Basic abc123", http.StatusUnauthorized},
		{"malformed token", "Bearer not.a.token", http.StatusForbidden},
		{"expired token", "Bearer " + expired, http.StatusForbidden},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/order", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			AuthMiddleware(okHandler(t, "a@x.com")).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_WrongKey(t *testing.T) {
	utils.JwtKey = []byte("other-secret")
	utils.TokenTTL = time.Hour
	token, err := utils.GenerateJWT("a@x.com")
	require.NoError(t, err)

	utils.JwtKey = []byte("test-secret")
	req := httptest.NewRequest(http.MethodGet, "/order", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthMiddleware(okHandler(t, "")).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	db := store.NewMemoryStore()

	_, err := db.Users.Upsert(ctx, "admin@x.com", models.Profile{})
	require.NoError(t, err)
	require.NoError(t, db.Users.GrantAdmin(ctx, "admin@x.com"))
	_, err = db.Users.Upsert(ctx, "user@x.com", models.Profile{})
	require.NoError(t, err)

	guard := NewGuard(db.Users)

	tests := []struct {
		name       string
		email      string
		wantStatus int
	}{
		{"admin passes", "admin@x.com", http.StatusOK},
		{"plain user denied", "user@x.com", http.StatusForbidden},
		{"unknown identity denied", "ghost@x.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/alluser", nil)
			req = req.WithContext(WithEmail(req.Context(), tt.email))
			rec := httptest.NewRecorder()
			guard.RequireAdmin(okHandler(t, "")).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdmin_NoIdentityBound(t *testing.T) {
	guard := NewGuard(store.NewMemoryStore().Users)
	req := httptest.NewRequest(http.MethodGet, "/alluser", nil)
	rec := httptest.NewRecorder()
	guard.RequireAdmin(okHandler(t, "")).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
