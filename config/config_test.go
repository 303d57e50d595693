package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, KUnset, cfg.MinSeparation)
	assert.Equal(t, "bst", cfg.StoreBackend)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 100, cfg.MaxRequestsPerMin)
	assert.Equal(t, 3, cfg.RedisReminderQueueDB)
	assert.Equal(t, "runway", cfg.DatabaseName)
	assert.False(t, cfg.AuditEnabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MIN_SEPARATION", "15")
	t.Setenv("MODE", "Console")
	t.Setenv("EVENTS_ENABLED", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.MinSeparation)
	assert.Equal(t, ModeConsole, cfg.Mode)
	assert.True(t, cfg.EventsEnabled)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("MIN_SEPARATION", "15")
	t.Setenv("STORE_BACKEND", "bst")

	cfg, err := Load([]string{"--k", "3", "--backend", "btree", "--mode", "console", "--port", "9090"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MinSeparation)
	assert.Equal(t, "btree", cfg.StoreBackend)
	assert.Equal(t, ModeConsole, cfg.Mode)
	assert.Equal(t, "9090", cfg.AppPort)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load([]string{"--mode", "batch"})
	assert.ErrorContains(t, err, "unknown mode")

	_, err = Load([]string{"--k", "-5"})
	assert.Error(t, err)

	_, err = Load([]string{"--no-such-flag"})
	assert.Error(t, err)
}
