package chats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"gramlite/internal/lib/api/response"
)

// SelectChat makes a chat the active one; all of its messages become read.
func SelectChat(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if _, ok := handler.Chat(id); !ok {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Chat not found"))
			return
		}

		handler.SelectChat(id)
		render.JSON(w, r, response.Ok("chat selected"))
	}
}
