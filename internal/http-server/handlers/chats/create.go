package chats

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"gramlite/entity"
	"gramlite/internal/lib/api/response"
)

type CreateRequest struct {
	Kind string `json:"kind" validate:"required,oneof=ai contact"`
}

var validate = validator.New()

// CreateChat creates a new empty chat of the requested kind and makes it
// the active chat.
func CreateChat(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("kind must be \"ai\" or \"contact\""))
			return
		}

		chat := handler.CreateChat(entity.ChatKind(req.Kind))

		log.Info("chat created via api",
			slog.String("chat_id", chat.ID),
			slog.String("kind", req.Kind),
		)
		render.JSON(w, r, response.Ok(chat))
	}
}
