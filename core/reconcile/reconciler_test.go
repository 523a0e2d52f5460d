package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"raid-status-bot/core/config"
	"raid-status-bot/core/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) SendMessage(ctx context.Context, chatID string, threadID int, text string) (telegram.Response, error) {
	args := m.Called(ctx, chatID, threadID, text)
	return args.Get(0).(telegram.Response), args.Error(1)
}

func (m *mockTransport) EditMessage(ctx context.Context, chatID string, messageID int, text string) (telegram.Response, error) {
	args := m.Called(ctx, chatID, messageID, text)
	return args.Get(0).(telegram.Response), args.Error(1)
}

func (m *mockTransport) PinMessage(ctx context.Context, chatID string, messageID int) (telegram.Response, error) {
	args := m.Called(ctx, chatID, messageID)
	return args.Get(0).(telegram.Response), args.Error(1)
}

func (m *mockTransport) DeleteMessage(ctx context.Context, chatID string, messageID int) (telegram.Response, error) {
	args := m.Called(ctx, chatID, messageID)
	return args.Get(0).(telegram.Response), args.Error(1)
}

type memStore map[string]int

func (s memStore) Get(key string) (int, bool) {
	id, ok := s[key]
	return id, ok
}

func (s memStore) Set(key string, id int) { s[key] = id }

func (s memStore) Delete(key string) { delete(s, key) }

var (
	ctx                 = context.Background()
	anyCtx              = mock.Anything
	options             = Options{MaxLength: 3000, TruncatedMarker: "..."}
	rejectedNotModified = telegram.Response{ErrorCode: 400, Description: "Bad Request: message is not modified: specified new message content and reply markup are exactly the same"}
	rejectedNotFound    = telegram.Response{ErrorCode: 400, Description: "Bad Request: message to edit not found"}
)

func TestReconcileCreate(t *testing.T) {
	t.Run("Sends And Pins", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{}
		ch := config.Channel{ChatID: "-100", RaidLevels: []int{5}, PinOnCreate: true}

		tr.On("SendMessage", anyCtx, "-100", 0, "raids").Return(telegram.Response{OK: true, MessageID: 10}, nil).Once()
		tr.On("PinMessage", anyCtx, "-100", 10).Return(telegram.Response{OK: true}, nil).Once()
		tr.On("DeleteMessage", anyCtx, "-100", 11).Return(telegram.Response{OK: true}, nil).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.NoError(t, err)
		assert.Equal(t, ActionCreated, res.Action)
		assert.Equal(t, 10, res.MessageID)
		assert.True(t, res.Pinned)
		assert.Equal(t, memStore{"-100": 10}, store)
		tr.AssertExpectations(t)
	})

	t.Run("Topic Without Pin", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{}
		ch := config.Channel{ChatID: "-100", ThreadID: 7, RaidLevels: []int{5}}

		tr.On("SendMessage", anyCtx, "-100", 7, "raids").Return(telegram.Response{OK: true, MessageID: 3}, nil).Once()

		res, err := New(tr, store, options, nil).Reconcile(ctx, ch, "raids")
		require.NoError(t, err)
		assert.Equal(t, ActionCreated, res.Action)
		assert.False(t, res.Pinned)
		assert.Equal(t, memStore{"-100:7": 3}, store)
		tr.AssertNotCalled(t, "PinMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Pin Failure Keeps Tracked State", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{}
		ch := config.Channel{ChatID: "-100", RaidLevels: []int{5}, PinOnCreate: true}

		tr.On("SendMessage", anyCtx, "-100", 0, "raids").Return(telegram.Response{OK: true, MessageID: 10}, nil).Once()
		tr.On("PinMessage", anyCtx, "-100", 10).Return(telegram.Response{ErrorCode: 400, Description: "Bad Request: not enough rights to pin a message"}, nil).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.NoError(t, err)
		assert.Equal(t, ActionCreated, res.Action)
		assert.False(t, res.Pinned)
		assert.Equal(t, memStore{"-100": 10}, store)
		tr.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Notification Delete Failure Is Ignored", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{}
		ch := config.Channel{ChatID: "-100", RaidLevels: []int{5}, PinOnCreate: true}

		tr.On("SendMessage", anyCtx, "-100", 0, "raids").Return(telegram.Response{OK: true, MessageID: 10}, nil).Once()
		tr.On("PinMessage", anyCtx, "-100", 10).Return(telegram.Response{OK: true}, nil).Once()
		tr.On("DeleteMessage", anyCtx, "-100", 11).Return(telegram.Response{}, fmt.Errorf("timeout: %w", telegram.ErrTransport)).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.NoError(t, err)
		assert.True(t, res.Pinned)
		assert.Equal(t, 10, store["-100"])
	})

	t.Run("Send Rejected", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{}
		ch := config.Channel{ChatID: "-100", RaidLevels: []int{5}, PinOnCreate: true}

		tr.On("SendMessage", anyCtx, "-100", 0, "raids").Return(telegram.Response{ErrorCode: 403, Description: "Forbidden"}, nil).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.Error(t, err)
		var apiErr *telegram.APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, ActionFailed, res.Action)
		assert.Empty(t, store)
	})

	t.Run("Send Transport Failure", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{}
		ch := config.Channel{ChatID: "-100", RaidLevels: []int{5}}

		tr.On("SendMessage", anyCtx, "-100", 0, "raids").Return(telegram.Response{}, fmt.Errorf("dial: %w", telegram.ErrTransport)).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		assert.ErrorIs(t, err, telegram.ErrTransport)
		assert.Equal(t, ActionFailed, res.Action)
		assert.Empty(t, store)
	})
}

func TestReconcileTracked(t *testing.T) {
	ch := config.Channel{ChatID: "-100", RaidLevels: []int{5}, PinOnCreate: true}

	t.Run("Edited", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{"-100": 42}

		tr.On("EditMessage", anyCtx, "-100", 42, "raids").Return(telegram.Response{OK: true, MessageID: 42}, nil).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.NoError(t, err)
		assert.Equal(t, ActionEdited, res.Action)
		assert.Equal(t, memStore{"-100": 42}, store)
		tr.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Not Modified Is Success Without Resend", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{"-100": 42}

		tr.On("EditMessage", anyCtx, "-100", 42, "raids").Return(rejectedNotModified, nil).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.NoError(t, err)
		assert.Equal(t, ActionUnchanged, res.Action)
		assert.Equal(t, 42, res.MessageID)
		assert.Equal(t, memStore{"-100": 42}, store)
		tr.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		tr.AssertExpectations(t)
	})

	t.Run("Message Not Found Recreates", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{"-100": 42}

		tr.On("EditMessage", anyCtx, "-100", 42, "raids").Return(rejectedNotFound, nil).Once()
		tr.On("SendMessage", anyCtx, "-100", 0, "raids").Return(telegram.Response{OK: true, MessageID: 50}, nil).Once()
		tr.On("PinMessage", anyCtx, "-100", 50).Return(telegram.Response{OK: true}, nil).Once()
		tr.On("DeleteMessage", anyCtx, "-100", 51).Return(telegram.Response{OK: true}, nil).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.NoError(t, err)
		assert.Equal(t, ActionRecreated, res.Action)
		assert.Equal(t, 50, res.MessageID)
		assert.Equal(t, 42, res.PreviousID)
		assert.True(t, res.Pinned)
		assert.Equal(t, memStore{"-100": 50}, store)
		tr.AssertExpectations(t)
	})

	t.Run("Recreate Send Fails", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{"-100": 42}

		tr.On("EditMessage", anyCtx, "-100", 42, "raids").Return(rejectedNotFound, nil).Once()
		tr.On("SendMessage", anyCtx, "-100", 0, "raids").Return(telegram.Response{}, telegram.ErrTransport).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.Error(t, err)
		assert.Equal(t, ActionFailed, res.Action)
		assert.Empty(t, store)
		assert.ErrorIs(t, err, telegram.ErrTransport)
		var apiErr *telegram.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "editMessageText", apiErr.Method)
	})

	t.Run("Flood Control Keeps State", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{"-100": 42}
		throttled := telegram.Response{ErrorCode: 429, Description: "Too Many Requests: retry after 17", RetryAfter: 17}

		tr.On("EditMessage", anyCtx, "-100", 42, "raids").Return(throttled, nil).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.Error(t, err)
		assert.Equal(t, ActionFailed, res.Action)
		assert.Equal(t, 42, res.MessageID)
		assert.Equal(t, memStore{"-100": 42}, store)
		var apiErr *telegram.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 17, apiErr.RetryAfter)
		tr.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Transport Failure Keeps State", func(t *testing.T) {
		tr := new(mockTransport)
		store := memStore{"-100": 42}

		tr.On("EditMessage", anyCtx, "-100", 42, "raids").Return(telegram.Response{}, fmt.Errorf("read: %w", telegram.ErrTransport)).Once()

		res, err := New(tr, store, options, zap.NewNop()).Reconcile(ctx, ch, "raids")
		require.Error(t, err)
		assert.True(t, errors.Is(err, telegram.ErrTransport))
		assert.Equal(t, ActionFailed, res.Action)
		assert.Equal(t, memStore{"-100": 42}, store)
		tr.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReconcileKeyNormalization(t *testing.T) {
	tr := new(mockTransport)
	store := memStore{}
	rec := New(tr, store, options, zap.NewNop())

	unset := config.Channel{ChatID: "-100", RaidLevels: []int{5}}
	zero := config.Channel{ChatID: "-100", ThreadID: 0, RaidLevels: []int{5}}

	tr.On("SendMessage", anyCtx, "-100", 0, "first").Return(telegram.Response{OK: true, MessageID: 8}, nil).Once()
	tr.On("EditMessage", anyCtx, "-100", 8, "second").Return(telegram.Response{OK: true}, nil).Once()

	res, err := rec.Reconcile(ctx, unset, "first")
	require.NoError(t, err)
	assert.Equal(t, ActionCreated, res.Action)

	res, err = rec.Reconcile(ctx, zero, "second")
	require.NoError(t, err)
	assert.Equal(t, ActionEdited, res.Action)
	assert.Len(t, store, 1)
	tr.AssertExpectations(t)
}

func TestReconcileTrimsBeforeSending(t *testing.T) {
	tr := new(mockTransport)
	store := memStore{}
	rec := New(tr, store, Options{MaxLength: 12, TruncatedMarker: "..."}, zap.NewNop())
	ch := config.Channel{ChatID: "-100", RaidLevels: []int{5}}

	tr.On("SendMessage", anyCtx, "-100", 0, "raid 1...").Return(telegram.Response{OK: true, MessageID: 1}, nil).Once()

	res, err := rec.Reconcile(ctx, ch, "raid 1\nraid 2\nraid 3\n")
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	tr.AssertExpectations(t)
}
