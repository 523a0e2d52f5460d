package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"raid-status-bot/core/config"
	"raid-status-bot/core/database"
	"raid-status-bot/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func unreachableConfig(t *testing.T) *config.Config {
	return &config.Config{
		Database: database.Config{
			Host:           "127.0.0.1",
			Port:           1, // Nothing listens here
			User:           "rdm",
			Password:       "secret",
			Name:           "rdmdb",
			TimeoutSeconds: 1,
			OrderColumn:    "raid_end_timestamp",
		},
		Store: config.Store{Driver: "file", Path: filepath.Join(t.TempDir(), ".msgid_cache")},
	}
}

func TestBuildComponents(t *testing.T) {
	t.Run("Database Down At Startup", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)

		comps, err := buildComponents(context.Background(), unreachableConfig(t), zap.New(core))
		require.NoError(t, err)
		require.NotNil(t, comps)
		assert.NotNil(t, comps.db)
		assert.NotNil(t, comps.source)
		assert.NotNil(t, comps.store)
		assert.Equal(t, 1, logs.FilterMessage("Scanner database unreachable, raids will show as empty until it recovers").Len())

		// The empty store still loads and the loop can be built on top
		require.NoError(t, comps.store.Load(context.Background()))
		assert.NotNil(t, newLoop(unreachableConfig(t), comps, nil, zap.NewNop()))
	})

	t.Run("State Bucket Down At Startup", func(t *testing.T) {
		cfg := unreachableConfig(t)
		cfg.Store = config.Store{Driver: "s3", Object: "msgid_cache.json"}
		cfg.Storage = storage.Config{Endpoint: "127.0.0.1:1", Bucket: "raid-status-bot", TimeoutSeconds: 1}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		core, logs := observer.New(zapcore.WarnLevel)
		comps, err := buildComponents(ctx, cfg, zap.New(core))
		require.NoError(t, err)
		require.NotNil(t, comps)
		assert.Equal(t, 1, logs.FilterMessage("Could not prepare state bucket, starting without saved message ids").Len())
	})
}
