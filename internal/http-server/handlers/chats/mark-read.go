package chats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"gramlite/internal/lib/api/response"
)

// MarkRead marks every message in a chat read without selecting it.
func MarkRead(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if _, ok := handler.Chat(id); !ok {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Chat not found"))
			return
		}

		handler.MarkChatRead(id)
		render.JSON(w, r, response.Ok("chat marked read"))
	}
}
