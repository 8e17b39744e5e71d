package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"gramlite/internal/lib/api/response"
)

// NotFound answers requests to unknown routes with the standard envelope.
func NotFound(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("unknown route", slog.String("path", r.URL.Path))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("No such route"))
	}
}
