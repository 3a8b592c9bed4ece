package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(&buf, "json", "debug")
	require.NoError(t, err)
	l.Debug("hello", "a", 1)
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "hello", lines[0]["msg"])

	buf.Reset()
	l, err = New(&buf, "text", "warn")
	require.NoError(t, err)
	l.Info("quiet")
	assert.Empty(t, buf.String())
	l.Warn("loud")
	assert.Contains(t, buf.String(), "msg=loud")

	_, err = New(&buf, "yaml", "info")
	assert.Error(t, err)
	_, err = New(&buf, "text", "chatty")
	assert.Error(t, err)
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, slog.LevelInfo).WithK(4).WithMetric("minkowski", 3)
	l.Info("x")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.EqualValues(t, 4, lines[0]["k"])
	assert.Equal(t, "minkowski", lines[0]["metric"])
	assert.EqualValues(t, 3, lines[0]["p"])
}

func TestLogIteration(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, slog.LevelDebug)
	ctx := context.Background()

	l.LogIteration(ctx, 1, 0, time.Millisecond, nil)
	l.LogIteration(ctx, 2, 3, time.Millisecond, nil)
	l.LogIteration(ctx, 3, 0, 0, errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.EqualValues(t, 3, lines[1]["empty"])
	assert.Equal(t, "ERROR", lines[2]["level"])
	assert.Equal(t, "boom", lines[2]["error"])
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogRun(context.Background(), 10, 2, time.Second, nil)
}
