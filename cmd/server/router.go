package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mhorvat/vjezbajmo-api/internal/api"
	apimiddleware "github.com/mhorvat/vjezbajmo-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	exerciseHandler := api.NewExerciseHandler(app.exercises, app.progressStore, app.logger)
	worksheetHandler := api.NewWorksheetHandler(app.rotator, app.progressStore, app.logger)
	progressHandler := api.NewProgressHandler(app.progressStore, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.tokens)

	r.Route("/api", func(r chi.Router) {
		// Exercise and worksheet endpoints work anonymously; a session
		// merely adds server-side completion filtering.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Optional)
			r.Post("/exercises", exerciseHandler.Acquire)
			r.Get("/exercises/{id}", exerciseHandler.GetByID)
			r.Post("/exercises/check", exerciseHandler.Check)
			r.Get("/worksheets/next", worksheetHandler.Next)
			r.Get("/worksheets/remaining", worksheetHandler.Remaining)
		})

		// Per-user progress requires a session.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Require)
			r.Get("/progress", progressHandler.List)
			r.Post("/progress", progressHandler.Mark)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
