//go:build dev

package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"
)

const defaultSocket = "/tmp/mcplogd.sock"
const appName = "buildgraph"

type entry struct {
	App       string         `json:"app"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// socketHandler forwards log records to a local mcplogd daemon. Records are dropped
// when the daemon is not running.
type socketHandler struct {
	level slog.Level
	attrs []slog.Attr
}

func socketSink(level slog.Level) slog.Handler {
	return &socketHandler{level: level}
}

func (h *socketHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *socketHandler) Handle(_ context.Context, r slog.Record) error {
	conn, err := net.Dial("unix", defaultSocket)
	if err != nil {
		return nil
	}
	defer conn.Close()

	metadata := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		metadata[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		metadata[a.Key] = a.Value.Any()
		return true
	})

	e := entry{
		App:       appName,
		Level:     strings.ToLower(r.Level.String()),
		Message:   r.Message,
		Timestamp: r.Time.UTC().Format(time.RFC3339Nano),
		Metadata:  metadata,
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	fmt.Fprintf(conn, "%s\n", data)
	return nil
}

func (h *socketHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &socketHandler{level: h.level, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

func (h *socketHandler) WithGroup(string) slog.Handler {
	return h
}
