package chats

import "gramlite/entity"

// Core defines the conversation operations required by the chat handlers.
type Core interface {
	Summaries(query string) []entity.ChatSummary
	CreateChat(kind entity.ChatKind) entity.Chat
	Chat(id string) (entity.Chat, bool)
	SelectChat(id string)
	SendMessage(text string) (entity.Message, bool)
	MarkChatRead(id string)
	Messages(id string, limit, offset int) ([]entity.Message, bool)
	Snapshot() ([]entity.Chat, string)
	ActiveChatID() string
}
