package api

import (
	"log/slog"
	"net/http"

	"github.com/mhorvat/vjezbajmo-api/internal/api/shared"
	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/progress"
)

// ProgressHandler serves per-user completion records. Both endpoints sit
// behind the required-session middleware.
type ProgressHandler struct {
	progress progress.Store
	logger   *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(progressStore progress.Store, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress: progressStore,
		logger:   logger.With(slog.String("component", "progress_handler")),
	}
}

// MarkCompletedRequest is the body of POST /api/progress.
type MarkCompletedRequest struct {
	ExerciseID    string   `json:"exerciseId" validate:"required"`
	ExerciseType  string   `json:"exerciseType" validate:"required"`
	CefrLevel     string   `json:"cefrLevel" validate:"required"`
	Theme         *string  `json:"theme,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	AttemptNumber int      `json:"attemptNumber,omitempty"`
	Title         string   `json:"title,omitempty"`
}

// ProgressResponse is the body of GET /api/progress.
type ProgressResponse struct {
	Completed []domain.CompletionRecord `json:"completed"`
}

// List handles GET /api/progress.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	records, err := h.progress.GetCompletedExercises(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", err)
		return
	}
	if records == nil {
		records = []domain.CompletionRecord{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProgressResponse{Completed: records})
}

// Mark handles POST /api/progress.
func (h *ProgressHandler) Mark(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req MarkCompletedRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"exerciseId, exerciseType and cefrLevel are required")
		return
	}

	exerciseType, err := domain.ParseExerciseType(req.ExerciseType)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	cefrLevel, err := domain.ParseCefrLevel(req.CefrLevel)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	attempt := req.AttemptNumber
	if attempt <= 0 {
		attempt = 1
	}

	record := domain.CompletionRecord{
		ExerciseID:    req.ExerciseID,
		ExerciseType:  exerciseType,
		CefrLevel:     cefrLevel,
		Theme:         req.Theme,
		Score:         req.Score,
		AttemptNumber: attempt,
		Title:         req.Title,
	}
	if err := h.progress.MarkExerciseCompleted(r.Context(), userID, record); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]string{"status": "recorded"})
}
