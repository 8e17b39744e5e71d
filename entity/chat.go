package entity

import "time"

// ChatKind determines whether sending a message triggers a simulated reply.
type ChatKind string

const (
	ChatAI      ChatKind = "ai"
	ChatContact ChatKind = "contact"
)

// Chat represents a single conversation thread with an AI assistant
// or a human contact. Messages are append-only, in chronological order.
type Chat struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	Kind        ChatKind  `json:"type"`
	IsOnline    bool      `json:"is_online"`
	UnreadCount int       `json:"unread_count"`
	Messages    []Message `json:"messages"`
}

// LastMessage returns the most recent message, or nil for an empty chat.
// It is always derived from Messages, never stored separately.
func (c *Chat) LastMessage() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return &c.Messages[len(c.Messages)-1]
}

// Clone returns a deep copy so callers never alias store-owned state.
func (c *Chat) Clone() Chat {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}

// ChatSummary represents a chat entry for the sidebar chat list.
type ChatSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	Kind        ChatKind  `json:"type"`
	IsOnline    bool      `json:"is_online"`
	Unread      int       `json:"unread"`
	LastMessage string    `json:"last_message"`
	LastTime    time.Time `json:"last_time"`
}

// Summary builds the chat-list view of the chat.
func (c *Chat) Summary() ChatSummary {
	s := ChatSummary{
		ID:       c.ID,
		Name:     c.Name,
		Avatar:   c.Avatar,
		Kind:     c.Kind,
		IsOnline: c.IsOnline,
		Unread:   c.UnreadCount,
	}
	if last := c.LastMessage(); last != nil {
		s.LastMessage = last.Text
		s.LastTime = last.CreatedAt
	}
	return s
}
