package cmd

import (
	"context"

	"raid-status-bot/core/config"
	"raid-status-bot/core/database"
	"raid-status-bot/core/reconcile"
	"raid-status-bot/core/storage"
	"raid-status-bot/core/telegram"
	"raid-status-bot/feature/msgstore"
	"raid-status-bot/feature/names"
	"raid-status-bot/feature/raids"
	"raid-status-bot/feature/render"
	"raid-status-bot/feature/scheduler"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// components holds everything a reconciliation loop needs.
type components struct {
	db       *gorm.DB
	names    *names.Resolver
	store    *msgstore.Store
	renderer *render.Renderer
	source   *raids.Source
}

// buildComponents opens the database and creates the non-transport parts.
// An unreachable database or state bucket is logged; the loop then reports
// query errors and works from an empty message store until they recover.
func buildComponents(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*components, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Ping(ctx, db, cfg.Database); err != nil {
		logg.Warn("Scanner database unreachable, raids will show as empty until it recovers",
			zap.String("host", cfg.Database.Host),
			zap.Error(err),
		)
	} else {
		logg.Info("Connected to scanner database",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
		)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	backend, err := newBackend(ctx, cfg, logg)
	if err != nil {
		return nil, err
	}

	resolver := names.NewResolver(cfg.NamesURL(), cfg.Names.Attempts, logg.Named("names"))
	return &components{
		db:       db,
		names:    resolver,
		store:    msgstore.New(backend, logg.Named("msgstore")),
		renderer: render.New(resolver, cfg.Templates, cfg.Format, loc).WithParseMode(cfg.Telegram.ParseMode),
		source:   raids.NewSource(db, cfg.Database.OrderColumn),
	}, nil
}

func newBackend(ctx context.Context, cfg *config.Config, logg *zap.Logger) (msgstore.Backend, error) {
	if cfg.Store.Driver != "s3" {
		return msgstore.NewFileBackend(cfg.Store.Path), nil
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		logg.Warn("Could not prepare state bucket, starting without saved message ids",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.Error(err),
		)
	}
	return msgstore.NewS3Backend(client, cfg.Storage.Bucket, cfg.Store.Object), nil
}

// newLoop wires the reconciliation loop. transport may be nil for dry runs
// that only call Compose.
func newLoop(cfg *config.Config, c *components, transport reconcile.Transport, logg *zap.Logger) *scheduler.Loop {
	var rec scheduler.Reconciler
	if transport != nil {
		rec = reconcile.New(transport, c.store, reconcile.Options{
			MaxLength:       cfg.Telegram.MaxMessageLength,
			TruncatedMarker: cfg.Templates.MsgLimitReached,
		}, logg.Named("reconcile"))
	}

	return scheduler.New(scheduler.Deps{
		Source:     c.source,
		Renderer:   c.renderer,
		Reconciler: rec,
		Names:      c.names,
		Store:      c.store,
	}, cfg.Channels, scheduler.Options{
		Interval:      cfg.CycleInterval(),
		NamesInterval: cfg.NamesInterval(),
	}, logg.Named("scheduler"))
}

// newTransport creates the Telegram client.
func newTransport(cfg *config.Config) (*telegram.Client, error) {
	return telegram.NewClient(cfg.General.Token, cfg.Telegram)
}
