package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "petcrossing.db", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval())
	assert.Equal(t, 15*time.Second, cfg.VetCooldown())
	assert.Equal(t, 10*time.Second, cfg.WalkCooldown())
	assert.Equal(t, 8*time.Second, cfg.PlayCooldown())
	assert.False(t, cfg.Parental.Enabled)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
listen_addr: ":9090"
log_level: debug
tick_interval_ms: 100
parental:
  enabled: true
  limit_minutes: 60
  window_start: "21:00"
  window_end: "07:00"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval())
	// Untouched keys keep their defaults.
	assert.Equal(t, "petcrossing.db", cfg.DBPath)
	assert.Equal(t, 15*time.Second, cfg.VetCooldown())
	assert.True(t, cfg.Parental.Enabled)
	assert.Equal(t, 60, cfg.Parental.LimitMinutes)
	assert.Equal(t, "21:00", cfg.Parental.WindowStart)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
