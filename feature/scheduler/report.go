package scheduler

import (
	"time"

	"raid-status-bot/core/reconcile"
)

// ChannelReport is the outcome of one channel within a cycle.
type ChannelReport struct {
	Key        string               `json:"key"`
	ChatID     string               `json:"chat_id"`
	ThreadID   int                  `json:"thread_id,omitempty"`
	Raids      int                  `json:"raids"`
	Action     reconcile.ActionType `json:"action"`
	MessageID  int                  `json:"message_id,omitempty"`
	QueryError string               `json:"query_error,omitempty"`
	Error      string               `json:"error,omitempty"`
}

// Report summarizes one reconciliation cycle.
type Report struct {
	CycleID   string          `json:"cycle_id"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration" swaggertype:"integer"`
	Channels  []ChannelReport `json:"channels"`
	SaveError string          `json:"save_error,omitempty"`
}

// Failed counts channels that were not brought up to date.
func (r Report) Failed() int {
	n := 0
	for _, ch := range r.Channels {
		if ch.Action == reconcile.ActionFailed {
			n++
		}
	}
	return n
}
