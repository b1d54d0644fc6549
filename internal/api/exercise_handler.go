package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mhorvat/vjezbajmo-api/internal/api/shared"
	"github.com/mhorvat/vjezbajmo-api/internal/checker"
	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/progress"
	"github.com/mhorvat/vjezbajmo-api/internal/service"
)

// ExerciseHandler serves exercise acquisition, lookup and answer checking.
type ExerciseHandler struct {
	exercises service.ExerciseService
	progress  progress.Store
	logger    *slog.Logger
}

// NewExerciseHandler creates an ExerciseHandler.
func NewExerciseHandler(
	exercises service.ExerciseService,
	progressStore progress.Store,
	logger *slog.Logger,
) *ExerciseHandler {
	return &ExerciseHandler{
		exercises: exercises,
		progress:  progressStore,
		logger:    logger.With(slog.String("component", "exercise_handler")),
	}
}

// AcquireExerciseRequest is the body of POST /api/exercises.
type AcquireExerciseRequest struct {
	ExerciseType         string   `json:"exerciseType" validate:"required"`
	CefrLevel            string   `json:"cefrLevel" validate:"required"`
	Provider             string   `json:"provider,omitempty"`
	APIKey               string   `json:"apiKey,omitempty"`
	Theme                *string  `json:"theme,omitempty"`
	ForceRegenerate      bool     `json:"forceRegenerate,omitempty"`
	CompletedExerciseIDs []string `json:"completedExerciseIds,omitempty"`
}

// CheckAnswerRequest is the body of POST /api/exercises/check.
type CheckAnswerRequest struct {
	ExerciseID string `json:"exerciseId" validate:"required"`
	QuestionID string `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
}

// ExerciseDetailResponse is the body of GET /api/exercises/{id}.
type ExerciseDetailResponse struct {
	Exercise     domain.ExerciseSet  `json:"exercise"`
	ExerciseType domain.ExerciseType `json:"exerciseType"`
	CefrLevel    domain.CefrLevel    `json:"cefrLevel"`
	Theme        *string             `json:"theme,omitempty"`
	CreatedAt    string              `json:"createdAt"`
}

// Acquire handles POST /api/exercises.
func (h *ExerciseHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	var req AcquireExerciseRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "exerciseType and cefrLevel are required")
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

	completed := req.CompletedExerciseIDs
	if userID, ok := shared.UserID(r.Context()); ok {
		records, err := h.progress.GetCompletedExercises(r.Context(), userID)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", err)
			return
		}
		completed = append(completed, progress.SetIDs(records)...)
	}

	set, err := h.exercises.AcquireExercise(r.Context(), service.AcquireRequest{
		ExerciseType:    exerciseType,
		CefrLevel:       cefrLevel,
		Provider:        req.Provider,
		APIKey:          req.APIKey,
		Theme:           req.Theme,
		CompletedIDs:    completed,
		ForceRegenerate: req.ForceRegenerate,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, set)
}

// GetByID handles GET /api/exercises/{id}.
func (h *ExerciseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.exercises.GetExerciseByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ExerciseDetailResponse{
		Exercise:     entry.Data,
		ExerciseType: entry.ExerciseType,
		CefrLevel:    entry.CefrLevel,
		Theme:        entry.Theme,
		CreatedAt:    entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Check handles POST /api/exercises/check.
func (h *ExerciseHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req CheckAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "exerciseId and questionId are required")
		return
	}

	entry, err := h.exercises.GetExerciseByID(r.Context(), req.ExerciseID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	accepted, explanation, err := checker.QuestionAnswer(entry.Data, req.QuestionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, checker.Check(req.Answer, accepted, explanation))
}
