package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir so no real config file is read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "calma:", cfg.Storage.RedisPrefix)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, ".config", "calma", "logs"), cfg.Log.Dir)
	assert.False(t, cfg.Log.Console)
	assert.Equal(t, 7, cfg.Insights.WindowDays)
	assert.Equal(t, "8009112000", cfg.HelpLine.Phone)
	assert.Equal(t, "525500000000", cfg.HelpLine.WhatsApp)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("CALMA_STORAGE_BACKEND", "redis")
	t.Setenv("CALMA_STORAGE_REDIS_ADDR", "localhost:6379")
	t.Setenv("CALMA_STORAGE_REDIS_DB", "2")
	t.Setenv("CALMA_INSIGHTS_WINDOW_DAYS", "30")
	t.Setenv("CALMA_LOG_CONSOLE", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Storage.Backend)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 2, cfg.Storage.RedisDB)
	assert.Equal(t, 30, cfg.Insights.WindowDays)
	assert.True(t, cfg.Log.Console)
}

func TestLoadRedisRequiresAddr(t *testing.T) {
	isolate(t)
	t.Setenv("CALMA_STORAGE_BACKEND", "redis")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RedisAddr")
}

func TestLoadDefaultFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "calma", "config.yaml"), `
log:
  level: debug
insights:
  window_days: 30
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Insights.WindowDays)
	assert.Equal(t, "sqlite", cfg.Storage.Backend, "unset keys keep defaults")
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "calma.yaml")
	writeFile(t, path, `
storage:
  path: /tmp/other.db
helpline:
  phone: "911"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Storage.Path)
	assert.Equal(t, "911", cfg.HelpLine.Phone)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "calma.yaml")
	writeFile(t, path, "log:\n  level: debug\n")
	t.Setenv("CALMA_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name, env, value, field string
	}{
		{"bad backend", "CALMA_STORAGE_BACKEND", "postgres", "Backend"},
		{"bad level", "CALMA_LOG_LEVEL", "verbose", "Level"},
		{"zero window", "CALMA_INSIGHTS_WINDOW_DAYS", "0", "WindowDays"},
		{"non numeric helpline", "CALMA_HELPLINE_PHONE", "800-911", "Phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.value)
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
