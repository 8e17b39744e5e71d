package errors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"gramlite/internal/lib/api/response"
)

// NotAllowed answers a known route hit with the wrong HTTP method.
func NotAllowed(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("method not allowed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error("Method not supported for this route"))
	}
}
