package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhorvat/vjezbajmo-api/internal/api/shared"
	"github.com/mhorvat/vjezbajmo-api/internal/service/auth"
)

func newTokens(t *testing.T) auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService("thisisasecretkeythatis32charslong!!", time.Hour)
	require.NoError(t, err)
	return svc
}

func echoUserHandler() (http.Handler, *string, *bool) {
	var gotUser string
	var reached bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		gotUser, _ = shared.UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return h, &gotUser, &reached
}

func TestOptional_AnonymousPassesThrough(t *testing.T) {
	next, gotUser, reached := echoUserHandler()
	mw := NewAuthMiddleware(newTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.Optional(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *reached)
	assert.Empty(t, *gotUser)
}

func TestOptional_ValidTokenSetsUser(t *testing.T) {
	tokens := newTokens(t)
	token, err := tokens.GenerateToken(context.Background(), "user-7")
	require.NoError(t, err)

	next, gotUser, _ := echoUserHandler()
	mw := NewAuthMiddleware(tokens)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.Optional(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", *gotUser)
}

func TestOptional_BrokenTokenIsRejected(t *testing.T) {
	next, _, reached := echoUserHandler()
	mw := NewAuthMiddleware(newTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	mw.Optional(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached, "an invalid session must not be downgraded to anonymous")
}

func TestRequire_MissingHeaderIs401(t *testing.T) {
	next, _, reached := echoUserHandler()
	mw := NewAuthMiddleware(newTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.Require(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *reached)
}

func TestRequire_ValidTokenPasses(t *testing.T) {
	tokens := newTokens(t)
	token, err := tokens.GenerateToken(context.Background(), "user-7")
	require.NoError(t, err)

	next, gotUser, _ := echoUserHandler()
	mw := NewAuthMiddleware(tokens)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.Require(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-7", *gotUser)
}

func TestRequire_DisabledSessionsIs401(t *testing.T) {
	next, _, _ := echoUserHandler()
	mw := NewAuthMiddleware(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.Require(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
