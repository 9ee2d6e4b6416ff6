package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/calma/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, err := New(config.Log{Level: "info", Dir: dir})
	require.NoError(t, err)

	log.Info("mood recorded", zap.String("emotion", "Bien"))
	log.Debug("hidden")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1, "debug is below the configured level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "mood recorded", rec["msg"])
	assert.Equal(t, "Bien", rec["emotion"])
	assert.Equal(t, "info", rec["level"])
	assert.Contains(t, rec, "ts")
}

func TestNewDebugLevel(t *testing.T) {
	dir := t.TempDir()
	log, err := New(config.Log{Level: "debug", Dir: dir})
	require.NoError(t, err)
	log.Debug("visible")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestNewNoSinksIsNop(t *testing.T) {
	log, err := New(config.Log{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, log)
	log.Info("dropped")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.Log{Level: "loud"})
	assert.Error(t, err)
}
