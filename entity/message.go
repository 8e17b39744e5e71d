package entity

import "time"

// Sender tags the provenance of a message, not its delivery path.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderAI      Sender = "ai"
	SenderContact Sender = "contact"
)

// MessageStatus tracks whether the recipient has consumed a message.
// A message is created "sent", becomes "delivered" when it arrives in a
// chat nobody is viewing, and "read" once its chat is selected.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

// Message represents a single message in a chat conversation.
// Text and CreatedAt are immutable after creation; only Status transitions.
type Message struct {
	ID        string        `json:"id"`
	ChatID    string        `json:"chat_id"`
	Sender    Sender        `json:"sender"`
	Text      string        `json:"text"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
