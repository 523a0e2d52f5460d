package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"raid-status-bot/core/config"
	"raid-status-bot/core/logger"
	"raid-status-bot/core/reconcile"
	"raid-status-bot/feature/raids"
	"raid-status-bot/feature/render"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RaidSource returns the active raids of a channel query.
type RaidSource interface {
	GetRaids(ctx context.Context, levels []int, includeUnknown bool, geofence string, descending bool) ([]raids.Raid, error)
}

// Renderer builds message text.
type Renderer interface {
	Render(ch config.Channel, sections []render.Section) string
}

// Reconciler pushes message text to a channel.
type Reconciler interface {
	Reconcile(ctx context.Context, ch config.Channel, text string) (reconcile.Result, error)
}

// NameRefresher reloads name data.
type NameRefresher interface {
	Refresh(ctx context.Context) error
}

// StateStore persists tracked message ids.
type StateStore interface {
	Save(ctx context.Context) error
}

// Deps bundles the collaborators of a Loop.
type Deps struct {
	Source     RaidSource
	Renderer   Renderer
	Reconciler Reconciler
	Names      NameRefresher
	Store      StateStore
}

// Options configures the loop timing.
type Options struct {
	// Interval is the pause after each cycle.
	Interval time.Duration
	// NamesInterval is the minimum time between name refreshes.
	NamesInterval time.Duration
}

// Loop runs reconciliation cycles over all channels.
type Loop struct {
	deps     Deps
	channels []config.Channel
	opts     Options
	logger   *zap.Logger
	now      func() time.Time

	namesRefreshedAt time.Time

	mu   sync.Mutex
	last *Report
}

// New creates a loop over channels.
func New(deps Deps, channels []config.Channel, opts Options, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{deps: deps, channels: channels, opts: opts, logger: log, now: time.Now}
}

// Run refreshes names, then runs a cycle every Interval until ctx is done.
// Panics inside a cycle are logged and do not stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Info("Reconciliation loop started",
		zap.Int("channels", len(l.channels)),
		zap.Duration("interval", l.opts.Interval),
		zap.Duration("names_interval", l.opts.NamesInterval),
	)
	l.refreshNames(ctx)

	for {
		if ctx.Err() != nil {
			l.logger.Info("Reconciliation loop stopped")
			return nil
		}
		if l.now().Sub(l.namesRefreshedAt) >= l.opts.NamesInterval {
			l.refreshNames(ctx)
		}

		l.safeCycle(ctx)

		timer := time.NewTimer(l.opts.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
}

// RunCycle reconciles every channel once, in configured order, and saves the
// message ids afterwards.
func (l *Loop) RunCycle(ctx context.Context) Report {
	report := Report{CycleID: uuid.NewString(), StartedAt: l.now()}
	log := logger.WithCycle(l.logger, report.CycleID)
	log.Debug("Cycle started")

	for _, ch := range l.channels {
		if ctx.Err() != nil {
			log.Info("Cycle interrupted", zap.Error(ctx.Err()))
			break
		}
		report.Channels = append(report.Channels, l.reconcileChannel(ctx, ch, log))
	}

	// Persist even when interrupted so ids of messages already sent survive.
	if err := l.deps.Store.Save(context.WithoutCancel(ctx)); err != nil {
		log.Warn("Failed to save message ids", zap.Error(err))
		report.SaveError = err.Error()
	}

	report.Duration = time.Since(report.StartedAt)
	log.Info("Cycle finished",
		zap.Int("channels", len(report.Channels)),
		zap.Int("failed", report.Failed()),
		zap.Duration("duration", report.Duration),
	)

	l.mu.Lock()
	l.last = &report
	l.mu.Unlock()
	return report
}

// LastReport returns the report of the most recent cycle.
func (l *Loop) LastReport() (Report, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last == nil {
		return Report{}, false
	}
	return *l.last, true
}

// Compose queries and renders the message of one channel without sending it.
// Failed queries count as "no raids"; their errors are returned joined next
// to the text.
func (l *Loop) Compose(ctx context.Context, ch config.Channel) (string, int, error) {
	var (
		sections []render.Section
		errs     []error
		count    int
	)

	query := func(levels []int) []raids.Raid {
		list, err := l.deps.Source.GetRaids(ctx, levels, ch.IncludeUnknown, ch.Geofence, ch.OrderDescending)
		if err != nil {
			errs = append(errs, fmt.Errorf("levels %v: %w", levels, err))
			return nil
		}
		count += len(list)
		return list
	}

	if ch.GroupByLevel {
		for _, level := range ch.RaidLevels {
			sections = append(sections, render.Section{Level: level, Raids: query([]int{level})})
		}
	} else {
		sections = append(sections, render.Section{Raids: query(ch.RaidLevels)})
	}

	return l.deps.Renderer.Render(ch, sections), count, errors.Join(errs...)
}

func (l *Loop) reconcileChannel(ctx context.Context, ch config.Channel, log *zap.Logger) (rep ChannelReport) {
	rep = ChannelReport{Key: ch.Key().String(), ChatID: ch.ChatID, ThreadID: ch.ThreadID}
	log = log.With(zap.String("chat_id", ch.ChatID), zap.Int("thread_id", ch.ThreadID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Channel reconciliation panicked", zap.Any("panic", r), zap.Stack("stack"))
			rep.Action = reconcile.ActionFailed
			rep.Error = fmt.Sprint(r)
		}
	}()

	text, count, err := l.Compose(ctx, ch)
	rep.Raids = count
	if err != nil {
		log.Warn("Raid query failed, showing no raids", zap.Error(err))
		rep.QueryError = err.Error()
	}

	res, err := l.deps.Reconciler.Reconcile(ctx, ch, text)
	rep.Action = res.Action
	rep.MessageID = res.MessageID
	if err != nil {
		log.Warn("Channel not updated", zap.String("action", string(res.Action)), zap.Error(err))
		rep.Error = err.Error()
		return rep
	}

	log.Debug("Channel updated",
		zap.String("action", string(res.Action)),
		zap.Int("message_id", res.MessageID),
		zap.Int("raids", count),
	)
	return rep
}

func (l *Loop) safeCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Cycle panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	l.RunCycle(ctx)
}

func (l *Loop) refreshNames(ctx context.Context) {
	// A failed refresh is not retried before the next interval.
	l.namesRefreshedAt = l.now()
	if err := l.deps.Names.Refresh(ctx); err != nil {
		l.logger.Warn("Name data refresh failed, keeping previous names", zap.Error(err))
	}
}
