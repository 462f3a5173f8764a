package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "arcade.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 800*time.Millisecond, cfg.MismatchDelay)
	assert.Empty(t, cfg.Remote.Bucket)
	assert.Equal(t, "auto", cfg.Remote.Region)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("ARCADE_DB_PATH", "/data/game.db")
	t.Setenv("ARCADE_SYNC_INTERVAL", "5m")
	t.Setenv("ARCADE_REMOTE_BUCKET", "arcade-sync")
	t.Setenv("ARCADE_REMOTE_ENDPOINT", "https://example.r2.cloudflarestorage.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/game.db", cfg.DBPath)
	assert.Equal(t, 5*time.Minute, cfg.SyncInterval)
	assert.Equal(t, "arcade-sync", cfg.Remote.Bucket)
	assert.Equal(t, "https://example.r2.cloudflarestorage.com", cfg.Remote.Endpoint)
}
