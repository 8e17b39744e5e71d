package chats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"gramlite/entity"
	"gramlite/internal/lib/api/response"
)

// StateResponse is the full conversation snapshot the UI renders from.
type StateResponse struct {
	Chats        []entity.Chat `json:"chats"`
	ActiveChatID string        `json:"active_chat_id"`
}

// GetState returns a read-only snapshot of the whole conversation state.
func GetState(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chatList, activeID := handler.Snapshot()
		if chatList == nil {
			chatList = []entity.Chat{}
		}

		render.JSON(w, r, response.Ok(StateResponse{
			Chats:        chatList,
			ActiveChatID: activeID,
		}))
	}
}
