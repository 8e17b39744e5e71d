package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"gramlite/entity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeHandler struct {
	markedRead []string
}

func (f *fakeHandler) HandleMarkRead(chatID string) error {
	f.markedRead = append(f.markedRead, chatID)
	return nil
}

func TestHandleClientMessageMarkRead(t *testing.T) {
	h := NewHub(discardLogger())
	handler := &fakeHandler{}
	h.SetHandler(handler)

	h.HandleClientMessage([]byte(`{"type":"mark_read","data":{"chat_id":"chat-7"}}`))

	if len(handler.markedRead) != 1 || handler.markedRead[0] != "chat-7" {
		t.Fatalf("expected mark_read for chat-7, got %v", handler.markedRead)
	}
}

func TestHandleClientMessageIgnoresBadInput(t *testing.T) {
	h := NewHub(discardLogger())
	handler := &fakeHandler{}
	h.SetHandler(handler)

	inputs := [][]byte{
		[]byte(`not json`),
		[]byte(`{}`),
		[]byte(`{"type":"unknown","data":{}}`),
		[]byte(`{"type":"mark_read","data":"wrong shape"}`),
		[]byte(`{"type":"mark_read","data":{"chat_id":""}}`),
		[]byte(`{"type":"mark_read"}`),
	}
	for _, in := range inputs {
		h.HandleClientMessage(in)
	}

	if len(handler.markedRead) != 0 {
		t.Fatalf("bad input reached the handler: %v", handler.markedRead)
	}
}

func TestHandleClientMessageNoHandler(t *testing.T) {
	h := NewHub(discardLogger())

	// Must not panic without a handler wired.
	h.HandleClientMessage([]byte(`{"type":"mark_read","data":{"chat_id":"x"}}`))
}

func TestBroadcastEventShapes(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
		want string
	}{
		{
			name: "new message",
			ev:   Event{Type: "new_message", Data: entity.Message{ID: "m1", ChatID: "c1", Text: "hi"}},
			want: "new_message",
		},
		{
			name: "typing",
			ev:   Event{Type: "typing", Data: map[string]any{"chat_id": "c1", "typing": true}},
			want: "typing",
		},
		{
			name: "read receipt",
			ev:   Event{Type: "read_receipt", Data: map[string]string{"chat_id": "c1"}},
			want: "read_receipt",
		},
	}

	for _, tc := range cases {
		raw, err := json.Marshal(tc.ev)
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}
		var decoded struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		if decoded.Type != tc.want {
			t.Errorf("%s: type %q, want %q", tc.name, decoded.Type, tc.want)
		}
		if len(decoded.Data) == 0 {
			t.Errorf("%s: empty data payload", tc.name)
		}
	}
}

func TestSlowClientEvicted(t *testing.T) {
	h := NewHub(discardLogger())
	go h.Run()

	client := &Client{send: make(chan []byte, 1)}
	client.send <- []byte("backlog") // full buffer, nobody reading
	h.register <- client

	h.BroadcastMessage(entity.Message{ID: "m1", ChatID: "c1", Text: "hi"})

	deadline := time.Now().Add(2 * time.Second)
	for {
		h.mu.Lock()
		_, still := h.clients[client]
		h.mu.Unlock()
		if !still {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("slow client was not evicted")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Eviction closes the send channel behind the undelivered backlog.
	<-client.send
	if _, ok := <-client.send; ok {
		t.Fatal("expected send channel closed after eviction")
	}
}

type fakeSnapshots struct{}

func (fakeSnapshots) Snapshot() ([]entity.Chat, string) {
	return []entity.Chat{{ID: "c1", Name: "Alice"}}, "c1"
}

func TestSendStateDeliversSnapshot(t *testing.T) {
	h := NewHub(discardLogger())
	h.SetSnapshotProvider(fakeSnapshots{})

	client := &Client{send: make(chan []byte, 1)}
	h.sendState(client)

	select {
	case raw := <-client.send:
		var ev struct {
			Type string `json:"type"`
			Data struct {
				Chats        []entity.Chat `json:"chats"`
				ActiveChatID string        `json:"active_chat_id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("unmarshal state event: %v", err)
		}
		if ev.Type != "state" {
			t.Errorf("type %q, want state", ev.Type)
		}
		if len(ev.Data.Chats) != 1 || ev.Data.Chats[0].ID != "c1" {
			t.Errorf("unexpected chats: %+v", ev.Data.Chats)
		}
		if ev.Data.ActiveChatID != "c1" {
			t.Errorf("active chat %q, want c1", ev.Data.ActiveChatID)
		}
	default:
		t.Fatal("no state event delivered")
	}
}
