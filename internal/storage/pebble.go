package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/pebble"

	"gramlite/entity"
	"gramlite/internal/lib/sl"
)

// chatsKey is the fixed key the full conversation state is stored under.
const chatsKey = "gramlite:chats"

// Storage is the durable mirror of the conversation state, backed by an
// embedded Pebble key-value store. The in-memory state always stays
// authoritative; Storage only keeps a write-through copy across restarts.
type Storage struct {
	db  *pebble.DB
	log *slog.Logger
}

// Open opens (or creates) the Pebble database at the given path.
func Open(path string, logger *slog.Logger) (*Storage, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open %s: %w", path, err)
	}
	return &Storage{
		db:  db,
		log: logger.With(sl.Module("storage")),
	}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveChats writes the full chat collection under the fixed key.
// Timestamps serialize as RFC 3339 text and round-trip with millisecond
// precision or better.
func (s *Storage) SaveChats(chats []entity.Chat) error {
	data, err := json.Marshal(chats)
	if err != nil {
		return fmt.Errorf("marshal chats: %w", err)
	}
	if err := s.db.Set([]byte(chatsKey), data, pebble.Sync); err != nil {
		return fmt.Errorf("pebble set %s: %w", chatsKey, err)
	}
	return nil
}

// LoadChats reads the persisted chat collection. A missing key and a
// corrupt value are treated identically: (nil, nil), so the caller falls
// back to seed data. Corrupt state must never prevent startup.
func (s *Storage) LoadChats() ([]entity.Chat, error) {
	value, closer, err := s.db.Get([]byte(chatsKey))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pebble get %s: %w", chatsKey, err)
	}

	data := make([]byte, len(value))
	copy(data, value)
	if err := closer.Close(); err != nil {
		return nil, fmt.Errorf("pebble close value: %w", err)
	}

	var chats []entity.Chat
	if err := json.Unmarshal(data, &chats); err != nil {
		s.log.Warn("persisted chat state is corrupt, falling back to seed data", sl.Err(err))
		return nil, nil
	}
	return chats, nil
}

// PutRaw writes raw bytes under the state key. Exists for tests and
// recovery tooling that need to inject arbitrary stored content.
func (s *Storage) PutRaw(data []byte) error {
	return s.db.Set([]byte(chatsKey), data, pebble.Sync)
}
