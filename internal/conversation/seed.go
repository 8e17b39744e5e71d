package conversation

import (
	"time"

	"github.com/google/uuid"

	"gramlite/entity"
)

// seedChats builds the first-run mock state: a few AI assistants and
// human contacts with some history, including unread incoming messages.
// The unread counters match the number of non-user messages not yet read.
func seedChats() []entity.Chat {
	now := time.Now().UTC()

	grambot := entity.Chat{
		ID:       uuid.NewString(),
		Name:     "GramBot",
		Avatar:   "🤖",
		Kind:     entity.ChatAI,
		IsOnline: true,
	}
	grambot.Messages = []entity.Message{
		seedMsg(grambot.ID, entity.SenderUser, "Hello! What can you do?", entity.StatusRead, now.Add(-2*time.Hour)),
		seedMsg(grambot.ID, entity.SenderAI, "Hi! I'm GramBot. Ask me anything and I'll do my best to help.", entity.StatusRead, now.Add(-2*time.Hour+5*time.Second)),
		seedMsg(grambot.ID, entity.SenderAI, "By the way, I'm here whenever you need me.", entity.StatusDelivered, now.Add(-30*time.Minute)),
	}
	grambot.UnreadCount = 1

	nova := entity.Chat{
		ID:       uuid.NewString(),
		Name:     "Nova Assistant",
		Avatar:   "🧠",
		Kind:     entity.ChatAI,
		IsOnline: true,
	}
	nova.Messages = []entity.Message{
		seedMsg(nova.ID, entity.SenderAI, "Welcome! I can help with writing, planning and research.", entity.StatusRead, now.Add(-26*time.Hour)),
	}

	alice := entity.Chat{
		ID:       uuid.NewString(),
		Name:     "Alice Freeman",
		Avatar:   "👩",
		Kind:     entity.ChatContact,
		IsOnline: true,
	}
	alice.Messages = []entity.Message{
		seedMsg(alice.ID, entity.SenderUser, "Hey Alice, are we still on for Friday?", entity.StatusRead, now.Add(-5*time.Hour)),
		seedMsg(alice.ID, entity.SenderContact, "Yes! Looking forward to it.", entity.StatusDelivered, now.Add(-4*time.Hour)),
		seedMsg(alice.ID, entity.SenderContact, "Should I bring anything?", entity.StatusDelivered, now.Add(-4*time.Hour+40*time.Second)),
	}
	alice.UnreadCount = 2

	bob := entity.Chat{
		ID:       uuid.NewString(),
		Name:     "Bob Carter",
		Avatar:   "👨",
		Kind:     entity.ChatContact,
		IsOnline: false,
	}
	bob.Messages = []entity.Message{
		seedMsg(bob.ID, entity.SenderContact, "Check out this article I mentioned.", entity.StatusRead, now.Add(-3*24*time.Hour)),
		seedMsg(bob.ID, entity.SenderUser, "Thanks, will do!", entity.StatusRead, now.Add(-3*24*time.Hour+10*time.Minute)),
	}

	return []entity.Chat{grambot, nova, alice, bob}
}

func seedMsg(chatID string, sender entity.Sender, text string, status entity.MessageStatus, at time.Time) entity.Message {
	return entity.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Sender:    sender,
		Text:      text,
		Status:    status,
		CreatedAt: at,
	}
}
