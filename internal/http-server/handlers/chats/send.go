package chats

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"gramlite/internal/lib/api/response"
)

type SendRequest struct {
	Text string `json:"text" validate:"required"`
}

// SendMessage appends a user message to the active chat. Whitespace-only
// text is rejected here, mirroring the store's own validation.
func SendMessage(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil || strings.TrimSpace(req.Text) == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("text is required"))
			return
		}

		msg, ok := handler.SendMessage(req.Text)
		if !ok {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("No active chat"))
			return
		}

		render.JSON(w, r, response.Ok(msg))
	}
}
