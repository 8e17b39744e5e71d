package chats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"gramlite/entity"
	"gramlite/internal/lib/api/response"
)

// GetChats returns the chat list for the sidebar, optionally filtered by
// a case-insensitive substring match against chat names.
func GetChats(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")

		summaries := handler.Summaries(query)
		if summaries == nil {
			summaries = []entity.ChatSummary{}
		}

		render.JSON(w, r, response.Ok(summaries))
	}
}
