package http

import (
	"context"
	"net/http"
	"strings"

	"sacco-backend/internal/security"
)

type contextKey string

const callerContextKey contextKey = "caller"

// AuthMiddleware validates bearer tokens and places the caller's claims into
// the request context. The engine trusts the identity the token carries.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}
		claims, err := m.tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
			return
		}
		ctx := context.WithValue(r.Context(), callerContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromContext returns the authenticated caller, or nil outside the
// authenticated subtree.
func CallerFromContext(ctx context.Context) *security.CallerClaims {
	claims, _ := ctx.Value(callerContextKey).(*security.CallerClaims)
	return claims
}

// RequireAdmin gates a handler to admin-role callers.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := CallerFromContext(r.Context())
		if caller == nil || !caller.IsAdmin() {
			writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "admin role required"})
			return
		}
		next(w, r)
	}
}
