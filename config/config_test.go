package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.True(t, s.LogConsole)
	assert.Equal(t, "soldier.yaml", s.LoadoutFile)
	assert.Equal(t, "range.yaml", s.RangeFile)
	assert.Equal(t, "prefabs", s.PrefabDir)
	assert.True(t, s.Watch)
	assert.Equal(t, 60, s.TickRate)
	assert.Equal(t, time.Second/60, s.Tick())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := "log_level: debug\nloadout_file: soldier_scripted.yaml\nwatch: false\ntick_rate: 120\n"
	path := filepath.Join(dir, "fpscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "soldier_scripted.yaml", s.LoadoutFile)
	assert.Equal(t, "range.yaml", s.RangeFile)
	assert.False(t, s.Watch)
	assert.Equal(t, time.Second/120, s.Tick())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FPSCORE_LOG_LEVEL", "warn")
	t.Setenv("FPSCORE_TICK_RATE", "30")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", s.LogLevel)
	assert.Equal(t, 30, s.TickRate)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("/nonexistent/fpscore.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_rate: -5\n"), 0644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick_rate")
}
