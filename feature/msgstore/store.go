package msgstore

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"raid-status-bot/core/utils"

	"go.uber.org/zap"
)

// Backend persists the serialized message id map.
type Backend interface {
	// Read returns the stored document, or nil when nothing was stored yet.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored document.
	Write(ctx context.Context, data []byte) error
	// Location describes where the document lives, for logging.
	Location() string
}

// Store maps channel keys to the id of their status message.
//
// The reconciliation loop is the only writer. Snapshot may be called
// concurrently by the status server.
type Store struct {
	backend Backend
	logger  *zap.Logger

	mu  sync.RWMutex
	ids map[string]int
}

// New creates an empty store persisted through backend.
func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger, ids: map[string]int{}}
}

// Get returns the message id tracked for key.
func (s *Store) Get(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.ids[key]
	return id, ok
}

// Set tracks id for key, replacing any previous id.
func (s *Store) Set(key string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[key] = id
}

// Delete forgets the message of key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, key)
}

// Len returns the number of tracked messages.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Snapshot returns a copy of all tracked ids.
func (s *Store) Snapshot() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.ids)
}

// Load replaces the in-memory map with the persisted one.
// Missing or unreadable state is logged and results in an empty store; Load
// only fails when ctx is done.
func (s *Store) Load(ctx context.Context) error {
	l := s.logger.With(zap.String("location", s.backend.Location()))

	data, err := s.backend.Read(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		l.Warn("Failed to read message id state, starting empty", zap.Error(err))
		s.replace(map[string]int{})
		return nil
	}
	if data == nil {
		l.Info("No message id state found, starting empty")
		s.replace(map[string]int{})
		return nil
	}

	ids, err := decode(data)
	if err != nil {
		l.Warn("Message id state is corrupt, starting empty", zap.Error(err))
		s.replace(map[string]int{})
		return nil
	}

	s.replace(ids)
	l.Info("Message id state loaded", zap.Int("messages", len(ids)))
	return nil
}

// Save persists the current map.
func (s *Store) Save(ctx context.Context) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode message ids: %w", err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("write message ids to %s: %w", s.backend.Location(), err)
	}
	return nil
}

func (s *Store) replace(ids map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = ids
}

// decode accepts ids stored as JSON numbers or numeric strings.
func decode(data []byte) (map[string]int, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	ids := make(map[string]int, len(raw))
	for key, v := range raw {
		if id := utils.ToInt(v); key != "" && id > 0 {
			ids[key] = id
		}
	}
	return ids, nil
}
