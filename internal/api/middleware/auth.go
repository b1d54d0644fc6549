package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mhorvat/vjezbajmo-api/internal/api/shared"
	"github.com/mhorvat/vjezbajmo-api/internal/service/auth"
)

// AuthMiddleware provides JWT session handling for routes. Sessions are
// optional on most endpoints; only per-user progress requires one.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates an AuthMiddleware. A nil token service means
// sessions are disabled and every request stays anonymous.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Optional attaches the user id to the context when a valid bearer token
// is present, and lets the request through anonymously otherwise. A token
// that is present but invalid is still rejected: silently downgrading a
// broken session to anonymous would hide client bugs.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || m.tokens == nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.tokens.ValidateToken(r.Context(), token)
		if err != nil {
			respondUnauthorized(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Require rejects requests without a valid session.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.tokens == nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication is not enabled")
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		userID, err := m.tokens.ValidateToken(r.Context(), token)
		if err != nil {
			respondUnauthorized(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func respondUnauthorized(w http.ResponseWriter, r *http.Request, err error) {
	switch err {
	case auth.ErrExpiredToken:
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
	default:
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
	}
}
