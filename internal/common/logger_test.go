package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	for _, format := range []string{"console", "json", "pretty"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			h, err := NewHandler(&buf, slog.LevelInfo, format)
			require.NoError(t, err)

			logger := slog.New(h)
			logger.Debug("hidden")
			logger.Info("visible", "topic", "servicio")

			out := buf.String()
			assert.NotContains(t, out, "hidden")
			assert.Contains(t, out, "visible")
			assert.Contains(t, out, "servicio")
		})
	}

	_, err := NewHandler(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func captureDefault(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	require.NoError(t, SetupLogger(&buf, level, "json"))
	return &buf
}

func TestLogHelpers(t *testing.T) {
	buf := captureDefault(t, slog.LevelDebug)

	LogError(errors.New("boom"), "extract failed", Fields{"language": "es", "count": 2})
	LogWarn("skipped", Fields{"reason": "unsupported"})
	LogInfo("done", nil)
	LogDebug("details", Fields{"b": 1, "a": 2})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "ERROR", first["level"])
	assert.Equal(t, "boom", first["error"])
	assert.Equal(t, "es", first["language"])

	assert.Less(t, strings.Index(lines[3], `"a"`), strings.Index(lines[3], `"b"`), "fields are sorted")
}

func TestSetupLogger_InvalidFormat(t *testing.T) {
	assert.Error(t, SetupLogger(&bytes.Buffer{}, slog.LevelInfo, "yaml"))
}
