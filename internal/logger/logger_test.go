package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, line []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(line, &entry))
	return entry
}

// ── NewLogger ──

func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("syncctl")
	l.Logger = l.Output(&buf)

	l.Info().Msg("hello")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "syncctl", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func", "caller is reported under the func key")
}

func TestNewLogger_GlobalLevelIsDebug(t *testing.T) {
	NewLogger("level-role")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

// ── NewClientLogger ──

func TestNewClientLogger_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	first := NewClientLogger("bizsync-client", path)
	first.Info().Msg("first")

	second := NewClientLogger("bizsync-client", path)
	second.Warn().Str("resource", "clients").Msg("second")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, decodeEntry(t, scanner.Bytes()))
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 2, "второй логгер дописывает, а не перезаписывает файл")
	assert.Equal(t, "first", lines[0]["message"])
	assert.Equal(t, "clients", lines[1]["resource"])
	assert.Equal(t, "warn", lines[1]["level"])
}

func TestNewClientLogger_UnwritablePathFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "client.log")

	l := NewClientLogger("bizsync-client", path)
	require.NotNil(t, l)
	l.Info().Msg("goes to stderr")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

// ── child loggers ──

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("inherited-role")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Info().Msg("child message")

	assert.Equal(t, "inherited-role", decodeEntry(t, buf.Bytes())["role"])
}

func TestWithResource(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("syncctl")
	parent.Logger = parent.Output(&buf)

	parent.WithResource("invoices").Debug().Int64("queue_item_id", 7).Msg("submitted")
	parent.Info().Msg("untagged")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	tagged := decodeEntry(t, []byte(lines[0]))
	assert.Equal(t, "invoices", tagged["resource"])
	assert.EqualValues(t, 7, tagged["queue_item_id"])

	assert.NotContains(t, decodeEntry(t, []byte(lines[1])), "resource", "parent must stay untagged")
}

// ── Nop ──

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// ── FromContext / FromRequest ──

func TestFromContext(t *testing.T) {
	t.Run("no logger attached", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})

	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("resource", "jobs").Logger()

		FromContext(zl.WithContext(context.Background())).Info().Msg("from context")

		assert.Equal(t, "jobs", decodeEntry(t, buf.Bytes())["resource"])
	})
}

func TestFromRequest(t *testing.T) {
	t.Run("no logger attached", func(t *testing.T) {
		require.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/api/queue", nil)))
	})

	t.Run("attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()
		req := httptest.NewRequest(http.MethodGet, "/api/queue", nil)
		req = req.WithContext(zl.WithContext(req.Context()))

		FromRequest(req).Info().Msg("from request")

		assert.Equal(t, "abc", decodeEntry(t, buf.Bytes())["trace_id"])
	})
}
