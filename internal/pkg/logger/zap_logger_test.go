package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.log")
	l := NewIsolatedLogger(path)

	l.Info("WEBSOCKET", "client registered", map[string]interface{}{"user_id": "u-1"})
	l.Debug("WEBSOCKET", "dropped below info", nil)
	_ = l.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"message":"client registered"`)
	assert.Contains(t, lines[0], `"module":"WEBSOCKET"`)
	assert.Contains(t, lines[0], `"user_id":"u-1"`)
	assert.Contains(t, lines[0], `"level":"INFO"`)
}

func TestNopLoggerAcceptsNilDetails(t *testing.T) {
	l := NewNopLogger()
	assert.NotPanics(t, func() {
		l.Error("TEST", "boom", nil)
		l.Warn("TEST", "careful", map[string]interface{}{"error": "x"})
	})
}
