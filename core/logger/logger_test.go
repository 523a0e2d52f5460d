package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"Debug console", Config{Level: "debug", Format: "console"}, false},
		{"Info json", Config{Level: "info", Format: "json"}, false},
		{"Warn", Config{Level: "warn", Format: "json"}, false},
		{"Empty level", Config{Format: "json"}, false},
		{"Invalid level", Config{Level: "loud", Format: "json"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestNew_WarnLevelFiltersInfo(t *testing.T) {
	l, err := New(&Config{Level: "warn", Format: "json"})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_WithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	l, err := New(&Config{Level: "info", Format: "json", File: path})
	require.NoError(t, err)
	l.Info("hello")
	_ = l.Sync()
	assert.FileExists(t, path)
}

func TestWithCycle(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	WithCycle(l, "abc").Info("tagged")
	WithCycle(l, "").Info("untagged")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].ContextMap()["cycle_id"])
	_, ok := entries[1].ContextMap()["cycle_id"]
	assert.False(t, ok)
}
