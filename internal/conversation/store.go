package conversation

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"gramlite/entity"
	"gramlite/internal/lib/sl"
	"gramlite/internal/metrics"
)

// Replier produces a simulated reply for an AI chat. Generate blocks
// until the reply text is ready and never fails.
type Replier interface {
	Generate(input string) string
}

// StateStorage mirrors the conversation state to a durable local store.
type StateStorage interface {
	SaveChats(chats []entity.Chat) error
	LoadChats() ([]entity.Chat, error)
}

// Listener receives state-change events after each mutation, so the
// presentation layer can re-render without polling.
type Listener interface {
	BroadcastMessage(msg entity.Message)
	BroadcastChatUpdated(summary entity.ChatSummary)
	BroadcastTyping(chatID string, typing bool)
	BroadcastReadReceipt(chatID string)
}

// Store owns the conversation state: the ordered chat list, per-chat
// message history and the active chat selection. It is the single writer;
// readers only ever receive copies. All mutations — including simulated
// reply arrivals — are serialized and go through the same append path.
type Store struct {
	mu           sync.Mutex
	chats        []*entity.Chat
	index        map[string]*entity.Chat
	activeChatID string
	msgSeq       uint64
	stateVer     uint64

	// persistMu serializes storage writes; persisted is the highest
	// version written, guarded by persistMu.
	persistMu sync.Mutex
	persisted uint64

	storage  StateStorage
	replier  Replier
	listener Listener
	log      *slog.Logger
}

// New creates an empty store. Call the setters, then Init.
func New(logger *slog.Logger) *Store {
	return &Store{
		index: make(map[string]*entity.Chat),
		log:   logger.With(sl.Module("conversation")),
	}
}

func (s *Store) SetStorage(storage StateStorage) {
	s.storage = storage
}

func (s *Store) SetReplier(replier Replier) {
	s.replier = replier
}

func (s *Store) SetListener(listener Listener) {
	s.listener = listener
}

// Init loads the persisted state, falling back to the seed data when
// nothing usable is stored. An empty persisted chat list counts as
// nothing stored, so enabling seeding later still takes effect. It never
// fails: the store always starts with a usable state.
func (s *Store) Init(seed bool) {
	var chats []entity.Chat
	if s.storage != nil {
		loaded, err := s.storage.LoadChats()
		if err != nil {
			s.log.Error("loading persisted state", sl.Err(err))
		}
		chats = loaded
	}

	if len(chats) == 0 && seed {
		chats = seedChats()
		s.log.Info("no persisted state, using seed data", slog.Int("chats", len(chats)))
	}

	s.mu.Lock()
	s.chats = make([]*entity.Chat, 0, len(chats))
	s.index = make(map[string]*entity.Chat, len(chats))
	for i := range chats {
		c := chats[i]
		s.chats = append(s.chats, &c)
		s.index[c.ID] = &c
	}
	snap, ver := s.stampLocked()
	s.mu.Unlock()

	s.persist(snap, ver)
}

// CreateChat inserts a new empty chat of the given kind, makes it the
// active chat and returns it. It always succeeds.
func (s *Store) CreateChat(kind entity.ChatKind) entity.Chat {
	s.mu.Lock()

	n := 1
	for _, c := range s.chats {
		if c.Kind == kind {
			n++
		}
	}

	chat := &entity.Chat{
		ID:       uuid.NewString(),
		Name:     defaultName(kind, n),
		Avatar:   defaultAvatar(kind),
		Kind:     kind,
		IsOnline: true,
	}
	s.chats = append(s.chats, chat)
	s.index[chat.ID] = chat
	s.activeChatID = chat.ID

	out := chat.Clone()
	summary := chat.Summary()
	snap, ver := s.stampLocked()
	s.mu.Unlock()

	metrics.RecordChatCreated(string(kind))
	s.persist(snap, ver)
	if s.listener != nil {
		s.listener.BroadcastChatUpdated(summary)
	}

	s.log.Info("chat created",
		slog.String("chat_id", out.ID),
		slog.String("kind", string(kind)),
	)
	return out
}

// SelectChat makes the chat the active one and marks all of its messages
// read. Unknown ids are ignored.
func (s *Store) SelectChat(id string) {
	s.mu.Lock()
	chat, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		s.log.Debug("select ignored, unknown chat", slog.String("chat_id", id))
		return
	}

	s.activeChatID = id
	markRead(chat)

	summary := chat.Summary()
	snap, ver := s.stampLocked()
	s.mu.Unlock()

	s.persist(snap, ver)
	if s.listener != nil {
		s.listener.BroadcastReadReceipt(id)
		s.listener.BroadcastChatUpdated(summary)
	}
}

// SendMessage appends a user message to the active chat. Blank text and
// a missing active selection are no-ops (ok=false). For AI chats the
// reply simulator is scheduled against the chat id captured here, so the
// reply lands in this chat even if the selection changes meanwhile.
func (s *Store) SendMessage(text string) (entity.Message, bool) {
	if strings.TrimSpace(text) == "" {
		return entity.Message{}, false
	}

	s.mu.Lock()
	chat, ok := s.index[s.activeChatID]
	if !ok {
		s.mu.Unlock()
		return entity.Message{}, false
	}

	msg := entity.Message{
		ID:        s.nextMessageID(),
		ChatID:    chat.ID,
		Sender:    entity.SenderUser,
		Text:      text,
		Status:    entity.StatusSent,
		CreatedAt: time.Now().UTC(),
	}
	chat.Messages = append(chat.Messages, msg)

	kind := chat.Kind
	chatID := chat.ID
	summary := chat.Summary()
	snap, ver := s.stampLocked()
	s.mu.Unlock()

	metrics.RecordMessageSent(string(kind))
	s.persist(snap, ver)
	if s.listener != nil {
		s.listener.BroadcastMessage(msg)
		s.listener.BroadcastChatUpdated(summary)
	}

	if kind == entity.ChatAI && s.replier != nil {
		if s.listener != nil {
			s.listener.BroadcastTyping(chatID, true)
		}
		go func(chatID, text string) {
			s.deliverReply(chatID, s.replier.Generate(text))
		}(chatID, text)
	}

	return msg, true
}

// deliverReply appends a simulated reply to its originating chat. It runs
// through the same serialized mutation path as every other command, so a
// reply cannot race a concurrent send. If the chat is not the active one
// at arrival time, the message stays unread and the counter grows.
func (s *Store) deliverReply(chatID, text string) {
	s.mu.Lock()
	chat, ok := s.index[chatID]
	if !ok {
		s.mu.Unlock()
		s.log.Warn("reply dropped, chat vanished", slog.String("chat_id", chatID))
		return
	}

	status := entity.StatusDelivered
	if chatID == s.activeChatID {
		status = entity.StatusRead
	} else {
		chat.UnreadCount++
	}

	msg := entity.Message{
		ID:        s.nextMessageID(),
		ChatID:    chatID,
		Sender:    entity.SenderAI,
		Text:      text,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	chat.Messages = append(chat.Messages, msg)

	summary := chat.Summary()
	snap, ver := s.stampLocked()
	s.mu.Unlock()

	metrics.RecordReply()
	s.persist(snap, ver)
	if s.listener != nil {
		s.listener.BroadcastTyping(chatID, false)
		s.listener.BroadcastMessage(msg)
		s.listener.BroadcastChatUpdated(summary)
	}
}

// MarkChatRead zeroes the unread counter and marks every message read.
// Idempotent; unknown ids are ignored.
func (s *Store) MarkChatRead(id string) {
	s.mu.Lock()
	chat, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return
	}

	markRead(chat)

	summary := chat.Summary()
	snap, ver := s.stampLocked()
	s.mu.Unlock()

	s.persist(snap, ver)
	if s.listener != nil {
		s.listener.BroadcastReadReceipt(id)
		s.listener.BroadcastChatUpdated(summary)
	}
}

// HandleMarkRead lets WebSocket clients mark a chat read.
func (s *Store) HandleMarkRead(chatID string) error {
	s.MarkChatRead(chatID)
	return nil
}

// FilteredChats returns copies of the chats whose name contains the query,
// case-insensitively, preserving the original order. An empty query
// returns every chat.
func (s *Store) FilteredChats(query string) []entity.Chat {
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Summaries returns the chat-list view, filtered like FilteredChats.
func (s *Store) Summaries(query string) []entity.ChatSummary {
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.ChatSummary, 0, len(s.chats))
	for _, c := range s.chats {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c.Summary())
		}
	}
	return out
}

// Chat returns a copy of a single chat by id.
func (s *Store) Chat(id string) (entity.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.index[id]
	if !ok {
		return entity.Chat{}, false
	}
	return chat.Clone(), true
}

// Messages returns a chronological slice of a chat's history. A limit
// of zero or less means everything from offset on. The second return is
// false when the chat does not exist.
func (s *Store) Messages(id string, limit, offset int) ([]entity.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat, ok := s.index[id]
	if !ok {
		return nil, false
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(chat.Messages) {
		return []entity.Message{}, true
	}

	end := len(chat.Messages)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]entity.Message, end-offset)
	copy(out, chat.Messages[offset:end])
	return out, true
}

// Snapshot returns a deep copy of every chat plus the active chat id.
func (s *Store) Snapshot() ([]entity.Chat, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneChatsLocked(), s.activeChatID
}

// ActiveChatID returns the current selection, empty when none.
func (s *Store) ActiveChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeChatID
}

func (s *Store) cloneChatsLocked() []entity.Chat {
	out := make([]entity.Chat, 0, len(s.chats))
	for _, c := range s.chats {
		out = append(out, c.Clone())
	}
	return out
}

// stampLocked clones the state and assigns it the next version number.
// Every mutation calls this before unlocking, so snapshot versions follow
// mutation order.
func (s *Store) stampLocked() ([]entity.Chat, uint64) {
	s.stateVer++
	return s.cloneChatsLocked(), s.stateVer
}

// persist mirrors a versioned snapshot to storage. Writes are serialized
// and stale snapshots are dropped, so a mutation that reaches storage
// late cannot overwrite a newer one. Failures are logged and counted;
// the in-memory state stays authoritative for the rest of the session.
func (s *Store) persist(chats []entity.Chat, ver uint64) {
	if s.storage == nil {
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if ver <= s.persisted {
		return
	}
	if err := s.storage.SaveChats(chats); err != nil {
		metrics.RecordPersistFailure()
		s.log.Error("persisting state", sl.Err(err))
		return
	}
	s.persisted = ver
}

// nextMessageID builds a sortable timestamp-derived id. The sequence
// suffix keeps ids distinct when two messages share a nanosecond.
func (s *Store) nextMessageID() string {
	ts := time.Now().UTC().UnixNano()
	seq := atomic.AddUint64(&s.msgSeq, 1)
	return fmt.Sprintf("%020d-%06d", ts, seq)
}

func markRead(chat *entity.Chat) {
	for i := range chat.Messages {
		chat.Messages[i].Status = entity.StatusRead
	}
	chat.UnreadCount = 0
}

func defaultName(kind entity.ChatKind, n int) string {
	if kind == entity.ChatAI {
		return fmt.Sprintf("Assistant %d", n)
	}
	return fmt.Sprintf("Contact %d", n)
}

func defaultAvatar(kind entity.ChatKind) string {
	if kind == entity.ChatAI {
		return "🤖"
	}
	return "👤"
}
