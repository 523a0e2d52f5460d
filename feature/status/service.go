package status

import (
	"context"
	"sort"
	"time"

	"raid-status-bot/core/config"
	"raid-status-bot/feature/scheduler"

	"go.uber.org/zap"
)

// Reports exposes the outcome of the latest cycle.
type Reports interface {
	LastReport() (scheduler.Report, bool)
}

// Messages exposes the tracked status message ids.
type Messages interface {
	Snapshot() map[string]int
}

// Names exposes name data state and manual refresh.
type Names interface {
	Refresh(ctx context.Context) error
	Len() int
	UpdatedAt() time.Time
}

// TrackedMessage is one tracked status message.
type TrackedMessage struct {
	Key       string `json:"key"`
	ChatID    string `json:"chat_id"`
	ThreadID  int    `json:"thread_id,omitempty"`
	MessageID int    `json:"message_id"`
}

// NamesInfo describes the loaded name data.
type NamesInfo struct {
	Entries   int        `json:"entries"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Service answers status queries.
type Service struct {
	reports  Reports
	messages Messages
	names    Names
	logger   *zap.Logger
	started  time.Time
}

// NewService creates a status service.
func NewService(reports Reports, messages Messages, names Names, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reports: reports, messages: messages, names: names, logger: logger, started: time.Now()}
}

// Uptime returns the time since the service was created.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.started)
}

// LastReport returns the latest cycle report.
func (s *Service) LastReport() (scheduler.Report, bool) {
	return s.reports.LastReport()
}

// Messages lists tracked messages ordered by key.
func (s *Service) Messages() []TrackedMessage {
	snap := s.messages.Snapshot()
	out := make([]TrackedMessage, 0, len(snap))
	for key, id := range snap {
		tm := TrackedMessage{Key: key, ChatID: key, MessageID: id}
		if ck, err := config.ParseChannelKey(key); err == nil {
			tm.ChatID = ck.ChatID
			tm.ThreadID = ck.ThreadID
		}
		out = append(out, tm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// NamesInfo describes the loaded name data.
func (s *Service) NamesInfo() NamesInfo {
	info := NamesInfo{Entries: s.names.Len()}
	if at := s.names.UpdatedAt(); !at.IsZero() {
		info.UpdatedAt = &at
	}
	return info
}

// RefreshNames reloads name data immediately.
func (s *Service) RefreshNames(ctx context.Context) (NamesInfo, error) {
	if err := s.names.Refresh(ctx); err != nil {
		return s.NamesInfo(), err
	}
	return s.NamesInfo(), nil
}
