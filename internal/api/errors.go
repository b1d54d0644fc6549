package api

import (
	"errors"
	"net/http"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/generation"
	"github.com/mhorvat/vjezbajmo-api/internal/service/auth"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. A missing
// API key is the caller's problem, not the server's, so it maps to 400; all
// generation and validation failures collapse to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrMissingCredential),
		errors.Is(err, generation.ErrUnknownProvider),
		errors.Is(err, domain.ErrUnknownExerciseType),
		errors.Is(err, domain.ErrUnknownCefrLevel):
		return http.StatusBadRequest

	case errors.Is(err, auth.ErrAuthRequired),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized

	case errors.Is(err, domain.ErrExerciseNotFound):
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Internal detail (provider errors, schema violations) never leaks
// through here.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, generation.ErrMissingCredential):
		return "No API key available"

	case errors.Is(err, generation.ErrUnknownProvider):
		return "Unknown generation provider"

	case errors.Is(err, domain.ErrUnknownExerciseType):
		return "Unknown exercise type"

	case errors.Is(err, domain.ErrUnknownCefrLevel):
		return "Unknown CEFR level"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrAuthRequired):
		return "Authentication required"

	case errors.Is(err, domain.ErrExerciseNotFound):
		return "Exercise not found"

	case errors.Is(err, generation.ErrGenerationFailed):
		return "Failed to generate exercise"

	default:
		return "An unexpected error occurred"
	}
}
