package api

import (
	"log/slog"
	"net/http"

	"github.com/mhorvat/vjezbajmo-api/internal/api/shared"
	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/progress"
	"github.com/mhorvat/vjezbajmo-api/internal/worksheets"
)

// WorksheetHandler serves the pre-authored worksheet bank.
type WorksheetHandler struct {
	rotator  *worksheets.Rotator
	progress progress.Store
	logger   *slog.Logger
}

// NewWorksheetHandler creates a WorksheetHandler.
func NewWorksheetHandler(
	rotator *worksheets.Rotator,
	progressStore progress.Store,
	logger *slog.Logger,
) *WorksheetHandler {
	return &WorksheetHandler{
		rotator:  rotator,
		progress: progressStore,
		logger:   logger.With(slog.String("component", "worksheet_handler")),
	}
}

// NextWorksheetResponse is the body of GET /api/worksheets/next.
type NextWorksheetResponse struct {
	Worksheet *worksheets.Worksheet `json:"worksheet"`
	Exercise  domain.ExerciseSet    `json:"exercise"`
	Title     string                `json:"title"`
}

// RemainingResponse is the body of GET /api/worksheets/remaining.
type RemainingResponse struct {
	Remaining bool `json:"remaining"`
}

// worksheetQuery parses the exerciseType/cefrLevel/theme triple shared by
// both worksheet endpoints.
func worksheetQuery(r *http.Request) (domain.ExerciseType, domain.CefrLevel, *string, error) {
	exerciseType, err := domain.ParseExerciseType(r.URL.Query().Get("exerciseType"))
	if err != nil {
		return "", "", nil, err
	}
	cefrLevel, err := domain.ParseCefrLevel(r.URL.Query().Get("cefrLevel"))
	if err != nil {
		return "", "", nil, err
	}

	var theme *string
	if raw := r.URL.Query().Get("theme"); raw != "" {
		theme = &raw
	}
	return exerciseType, cefrLevel, theme, nil
}

func (h *WorksheetHandler) servedIDs(r *http.Request) ([]string, error) {
	userID, ok := shared.UserID(r.Context())
	if !ok {
		return r.URL.Query()["completed"], nil
	}

	records, err := h.progress.GetCompletedExercises(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	return append(r.URL.Query()["completed"], progress.SetIDs(records)...), nil
}

// Next handles GET /api/worksheets/next. Exhaustion of the pool is a 404:
// the client should fall back to generated exercises.
func (h *WorksheetHandler) Next(w http.ResponseWriter, r *http.Request) {
	exerciseType, cefrLevel, theme, err := worksheetQuery(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	served, err := h.servedIDs(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", err)
		return
	}

	ws := h.rotator.Next(exerciseType, cefrLevel, theme, served)
	if ws == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "No worksheets remaining")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NextWorksheetResponse{
		Worksheet: ws,
		Exercise:  ws.Set(),
		Title:     ws.Title,
	})
}

// Remaining handles GET /api/worksheets/remaining.
func (h *WorksheetHandler) Remaining(w http.ResponseWriter, r *http.Request) {
	exerciseType, cefrLevel, theme, err := worksheetQuery(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	served, err := h.servedIDs(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RemainingResponse{
		Remaining: h.rotator.HasRemaining(exerciseType, cefrLevel, theme, served),
	})
}
