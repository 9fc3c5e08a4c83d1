package zerolog

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_FieldsAndErrors(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithWriter("sakura", buf)

	log.Error("save failed", "user", "a@x.com", "error", errors.New("disk full"), 42, "ignored")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "save failed", lines[0]["message"])
	assert.Equal(t, "sakura", lines[0]["service"])
	assert.Equal(t, "a@x.com", lines[0]["user"])
	assert.Equal(t, "disk full", lines[0]["error"])
	assert.Equal(t, "error", lines[0]["level"])
}

func TestLogger_SetLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithWriter("sakura", buf)
	log.SetLevel("WARN")

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestLogger_WithAndWithContext(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithWriter("sakura", buf)

	log.With("request_id", "abc").Info("one")
	log.WithContext(map[string]interface{}{"route": "/login"}).Info("two")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "abc", lines[0]["request_id"])
	assert.Equal(t, "/login", lines[1]["route"])
	assert.NotContains(t, lines[1], "request_id")
}

func TestNewZerologLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sakura.log")
	log := NewZerologLogger("sakura", path)

	log.Info("to file", "k", "v")

	assert.FileExists(t, path)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("DEBUG").String())
	assert.Equal(t, "warn", parseLevel("warning").String())
	assert.Equal(t, "info", parseLevel("nonsense").String())
}
