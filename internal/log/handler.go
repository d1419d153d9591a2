package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// CallbackHandler is a slog.Handler that forwards log records to a callback function
type CallbackHandler struct {
	level    slog.Level
	mu       *sync.Mutex
	callback CallbackFunc
	attrs    []slog.Attr
}

// NewCallbackHandler creates a new slog handler that forwards logs to a callback
func NewCallbackHandler(callback CallbackFunc, level slog.Level) *CallbackHandler {
	return &CallbackHandler{
		level:    level,
		mu:       &sync.Mutex{},
		callback: callback,
	}
}

// Enabled reports whether the handler handles records at the given level
func (h *CallbackHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle forwards the record, with stored attributes added, to the callback
func (h *CallbackHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.callback == nil {
		return nil
	}

	if len(h.attrs) > 0 {
		record = record.Clone()
		record.AddAttrs(h.attrs...)
	}

	h.callback(record)
	return nil
}

// WithAttrs returns a new Handler whose attributes consist of both the receiver's attributes and the arguments
func (h *CallbackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CallbackHandler{
		level:    h.level,
		mu:       h.mu,
		callback: h.callback,
		attrs:    merged,
	}
}

// WithGroup is not supported; groups are flattened
func (h *CallbackHandler) WithGroup(name string) slog.Handler {
	return h
}

// Handler is a slog.Handler writing "[LEVEL] message key=value" lines
type Handler struct {
	level  slog.Level
	mu     *sync.Mutex
	output io.Writer
	attrs  []slog.Attr
}

// NewHandler creates a new handler for formatted output
func NewHandler(output io.Writer, level slog.Level) *Handler {
	return &Handler{
		level:  level,
		mu:     &sync.Mutex{},
		output: output,
	}
}

// Enabled returns whether the handler handles records at the given level
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle processes the Record and outputs formatted log
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	msg := LevelPrefix(r.Level) + r.Message
	for _, a := range h.attrs {
		msg += formatAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		msg += formatAttr(a)
		return true
	})

	_, err := fmt.Fprintln(h.output, msg)
	return err
}

// WithAttrs returns a new Handler with the given attributes
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &Handler{
		level:  h.level,
		mu:     h.mu,
		output: h.output,
		attrs:  merged,
	}
}

// WithGroup is not supported; groups are flattened
func (h *Handler) WithGroup(name string) slog.Handler {
	return h
}

// LevelPrefix returns the prefix printed in front of a message. INFO has none.
func LevelPrefix(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "[ERROR] "
	case level >= slog.LevelWarn:
		return "[WARN] "
	case level >= slog.LevelInfo:
		return ""
	default:
		return "[DEBUG] "
	}
}

func formatAttr(a slog.Attr) string {
	if a.Key == slog.TimeKey {
		return ""
	}
	return fmt.Sprintf(" %s=%v", a.Key, a.Value.Any())
}
