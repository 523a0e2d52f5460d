package reconcile

import (
	"context"

	"raid-status-bot/core/telegram"
)

// ActionType describes what a reconciliation did with a channel's status message.
type ActionType string

const (
	// ActionCreated sent a new status message to a channel without one.
	ActionCreated ActionType = "created"
	// ActionEdited replaced the text of the tracked message.
	ActionEdited ActionType = "edited"
	// ActionUnchanged means the tracked message already showed the text.
	ActionUnchanged ActionType = "unchanged"
	// ActionRecreated sent a new message after the tracked one could not be edited.
	ActionRecreated ActionType = "recreated"
	// ActionFailed left the channel as it was; it is retried next cycle.
	ActionFailed ActionType = "failed"
)

// Result is the outcome of one channel reconciliation.
type Result struct {
	// Key is the message store key of the channel.
	Key string `json:"key"`
	// Action is what happened.
	Action ActionType `json:"action"`
	// MessageID is the tracked message after reconciliation (0 when none).
	MessageID int `json:"message_id,omitempty"`
	// PreviousID is the message that was replaced by a recreate.
	PreviousID int `json:"previous_id,omitempty"`
	// Pinned reports a successful pin of a newly sent message.
	Pinned bool `json:"pinned,omitempty"`
	// Truncated reports that the text exceeded the length limit.
	Truncated bool `json:"truncated,omitempty"`
}

// Transport is the subset of the chat API the reconciler drives.
// *telegram.Client implements it.
type Transport interface {
	SendMessage(ctx context.Context, chatID string, threadID int, text string) (telegram.Response, error)
	EditMessage(ctx context.Context, chatID string, messageID int, text string) (telegram.Response, error)
	PinMessage(ctx context.Context, chatID string, messageID int) (telegram.Response, error)
	DeleteMessage(ctx context.Context, chatID string, messageID int) (telegram.Response, error)
}

// KeyStore maps channel keys to the id of their status message.
type KeyStore interface {
	Get(key string) (int, bool)
	Set(key string, id int)
	Delete(key string)
}

// Options configures text trimming.
type Options struct {
	// MaxLength is the message length limit in characters.
	MaxLength int
	// TruncatedMarker is appended to trimmed texts.
	TruncatedMarker string
}
