package reconcile

import (
	"context"
	"errors"
	"fmt"

	"raid-status-bot/core/config"

	"go.uber.org/zap"
)

// Reconciler keeps exactly one status message per channel up to date.
type Reconciler struct {
	transport Transport
	store     KeyStore
	opts      Options
	logger    *zap.Logger
}

// New creates a reconciler writing through transport and tracking ids in store.
func New(transport Transport, store KeyStore, opts Options, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{transport: transport, store: store, opts: opts, logger: logger}
}

// Reconcile brings the channel's status message in line with text.
//
// A tracked message is edited. "Not modified" rejections count as success; any
// other rejection drops the tracked id and sends a fresh message right away.
// Transport failures leave the store untouched so the next cycle retries.
// The returned error is non-nil only for ActionFailed.
func (r *Reconciler) Reconcile(ctx context.Context, ch config.Channel, text string) (Result, error) {
	key := ch.Key().String()
	text, truncated := TrimText(text, r.opts.MaxLength, r.opts.TruncatedMarker)
	l := r.logger.With(zap.String("chat_id", ch.ChatID), zap.Int("thread_id", ch.ThreadID))
	if truncated {
		l.Debug("Message text trimmed", zap.Int("limit", r.opts.MaxLength))
	}

	id, tracked := r.store.Get(key)
	if !tracked {
		res, err := r.create(ctx, ch, key, text, l)
		res.Truncated = truncated
		return res, err
	}

	resp, err := r.transport.EditMessage(ctx, ch.ChatID, id, text)
	if err != nil {
		return Result{Key: key, Action: ActionFailed, MessageID: id, Truncated: truncated},
			fmt.Errorf("edit message %d: %w", id, err)
	}
	switch {
	case resp.OK:
		return Result{Key: key, Action: ActionEdited, MessageID: id, Truncated: truncated}, nil
	case resp.NotModified():
		return Result{Key: key, Action: ActionUnchanged, MessageID: id, Truncated: truncated}, nil
	case resp.Throttled():
		l.Warn("Edit throttled, keeping the tracked message",
			zap.Int("message_id", id),
			zap.Int("retry_after", resp.RetryAfter),
		)
		return Result{Key: key, Action: ActionFailed, MessageID: id, Truncated: truncated},
			fmt.Errorf("edit message %d: %w", id, resp.Err("editMessageText"))
	}

	l.Info("Edit rejected, sending a new message",
		zap.Int("message_id", id),
		zap.Int("error_code", resp.ErrorCode),
		zap.String("description", resp.Description),
	)
	r.store.Delete(key)

	res, err := r.create(ctx, ch, key, text, l)
	res.Truncated = truncated
	if err != nil {
		return res, errors.Join(fmt.Errorf("edit message %d: %w", id, resp.Err("editMessageText")), err)
	}
	res.Action = ActionRecreated
	res.PreviousID = id
	return res, nil
}

func (r *Reconciler) create(ctx context.Context, ch config.Channel, key, text string, l *zap.Logger) (Result, error) {
	resp, err := r.transport.SendMessage(ctx, ch.ChatID, ch.ThreadID, text)
	if err != nil {
		return Result{Key: key, Action: ActionFailed}, fmt.Errorf("send message: %w", err)
	}
	if !resp.OK {
		return Result{Key: key, Action: ActionFailed}, fmt.Errorf("send message: %w", resp.Err("sendMessage"))
	}
	if resp.MessageID == 0 {
		return Result{Key: key, Action: ActionFailed}, errors.New("send message: response carries no message id")
	}

	r.store.Set(key, resp.MessageID)
	res := Result{Key: key, Action: ActionCreated, MessageID: resp.MessageID}
	if ch.PinOnCreate {
		res.Pinned = r.pin(ctx, ch, resp.MessageID, l)
	}
	return res, nil
}

// pin pins a new status message and removes the "message pinned" service
// message, assumed to be the next id in the chat. Failures are only logged.
func (r *Reconciler) pin(ctx context.Context, ch config.Channel, id int, l *zap.Logger) bool {
	l = l.With(zap.Int("message_id", id))

	resp, err := r.transport.PinMessage(ctx, ch.ChatID, id)
	if err == nil {
		err = resp.Err("pinChatMessage")
	}
	if err != nil {
		l.Warn("Failed to pin status message", zap.Error(err))
		return false
	}

	resp, err = r.transport.DeleteMessage(ctx, ch.ChatID, id+1)
	if err == nil {
		err = resp.Err("deleteMessage")
	}
	if err != nil {
		l.Debug("Pin notification not deleted", zap.Int("notification_id", id+1), zap.Error(err))
	}
	return true
}
