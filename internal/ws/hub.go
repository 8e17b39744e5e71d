package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"gramlite/entity"
	"gramlite/internal/metrics"
)

// ClientMessageHandler handles incoming WebSocket messages from clients.
type ClientMessageHandler interface {
	HandleMarkRead(chatID string) error
}

// SnapshotProvider supplies the full conversation state for the initial
// event a client receives right after connecting.
type SnapshotProvider interface {
	Snapshot() ([]entity.Chat, string)
}

// Event represents a WebSocket event sent to connected clients.
type Event struct {
	Type string `json:"type"` // "state", "new_message", "chat_updated", "typing", "read_receipt"
	Data any    `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts
// state-change events to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	handler    ClientMessageHandler
	snapshots  SnapshotProvider
	log        *slog.Logger
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// SetHandler sets the handler for incoming client messages.
func (h *Hub) SetHandler(handler ClientMessageHandler) {
	h.handler = handler
}

// SetSnapshotProvider sets the source of the initial state event.
func (h *Hub) SetSnapshotProvider(p SnapshotProvider) {
	h.snapshots = p
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.WSClientConnected()
			h.sendState(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WSClientDisconnected()
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			// Write lock: a client that cannot keep up is evicted here.
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
					metrics.WSClientDisconnected()
				}
			}
			h.mu.Unlock()
		}
	}
}

// sendState pushes the full conversation snapshot to a single client.
func (h *Hub) sendState(client *Client) {
	if h.snapshots == nil {
		return
	}
	chats, activeID := h.snapshots.Snapshot()
	data, err := json.Marshal(Event{
		Type: "state",
		Data: map[string]any{
			"chats":          chats,
			"active_chat_id": activeID,
		},
	})
	if err != nil {
		return
	}
	select {
	case client.send <- data:
	default:
	}
}

// BroadcastMessage sends a new_message event to all connected clients.
func (h *Hub) BroadcastMessage(msg entity.Message) {
	h.broadcast <- &Event{
		Type: "new_message",
		Data: msg,
	}
}

// BroadcastChatUpdated sends the refreshed chat-list entry for a chat.
func (h *Hub) BroadcastChatUpdated(summary entity.ChatSummary) {
	h.broadcast <- &Event{
		Type: "chat_updated",
		Data: summary,
	}
}

// BroadcastTyping signals that a simulated reply is being composed.
func (h *Hub) BroadcastTyping(chatID string, typing bool) {
	h.broadcast <- &Event{
		Type: "typing",
		Data: map[string]any{
			"chat_id": chatID,
			"typing":  typing,
		},
	}
}

// BroadcastReadReceipt tells clients a chat has been fully read.
func (h *Hub) BroadcastReadReceipt(chatID string) {
	h.broadcast <- &Event{
		Type: "read_receipt",
		Data: map[string]string{
			"chat_id": chatID,
		},
	}
}

// clientEvent represents an incoming WebSocket message from a client.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClientMessage parses and dispatches an incoming client message.
func (h *Hub) HandleClientMessage(raw []byte) {
	if h.handler == nil {
		return
	}

	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		if h.log != nil {
			h.log.Warn("failed to parse client ws message", slog.String("error", err.Error()))
		}
		return
	}

	switch event.Type {
	case "mark_read":
		var data struct {
			ChatID string `json:"chat_id"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			if h.log != nil {
				h.log.Warn("failed to parse mark_read data", slog.String("error", err.Error()))
			}
			return
		}
		if data.ChatID == "" {
			return
		}
		if err := h.handler.HandleMarkRead(data.ChatID); err != nil {
			if h.log != nil {
				h.log.Error("failed to handle mark_read",
					slog.String("chat_id", data.ChatID),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
