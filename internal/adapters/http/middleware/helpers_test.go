package middleware_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// logCapture records JSON log lines written at DEBUG and above.
type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&c.buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// entries decodes every captured line.
func (c *logCapture) entries(t *testing.T) []map[string]any {
	t.Helper()

	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(c.buf.Bytes()))
	for sc.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
		out = append(out, entry)
	}
	require.NoError(t, sc.Err())
	return out
}

// entry returns the first line with the given message.
func (c *logCapture) entry(t *testing.T, msg string) map[string]any {
	t.Helper()

	for _, e := range c.entries(t) {
		if e["msg"] == msg {
			return e
		}
	}
	t.Fatalf("no log line with msg %q in:\n%s", msg, c.buf.String())
	return nil
}
