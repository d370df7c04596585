package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"marketplace-api/store"
	"marketplace-api/utils"
)

// Key type for context
type contextKey string

const emailContextKey = contextKey("email")

// EmailFromContext returns the authenticated email bound by AuthMiddleware.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailContextKey).(string)
	return email, ok
}

// WithEmail binds an authenticated email to the context. Exported for tests.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailContextKey, email)
}

// AuthMiddleware verifies the bearer token and attaches the bound email to
// the request context. A missing credential is unauthorized; a credential
// that fails verification (malformed, mis-signed, expired) is forbidden.
// The check never consults the store.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondError(w, utils.Unauthenticated("Unauthorized Access"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.RespondError(w, utils.Unauthenticated("Unauthorized Access"))
			return
		}

		claims, err := utils.ParseJWT(parts[1])
		if err != nil {
			utils.RespondError(w, utils.Forbidden("Forbidden Access"))
			return
		}

		ctx := WithEmail(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Guard decides privileged operations from the stored role of the caller.
type Guard struct {
	Users store.UserStore
}

func NewGuard(users store.UserStore) *Guard {
	return &Guard{Users: users}
}

// RequireAdmin ensures the authenticated identity exists and holds the
// admin role at the time of the check. The role is read live from the
// store, never from the token: a promotion or downgrade takes effect on
// the next request.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := EmailFromContext(r.Context())
		if !ok {
			utils.RespondError(w, utils.Unauthenticated("Unauthorized Access"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		user, err := g.Users.ByEmail(ctx, email)
		if err != nil || !user.IsAdmin() {
			utils.RespondError(w, utils.Forbidden("Forbidden"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
