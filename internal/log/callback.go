package log

import (
	"fmt"
	"log/slog"
)

// CallbackFunc is a function that receives log records
type CallbackFunc func(record slog.Record)

// NewCallbackLogger creates a logger that forwards logs to a callback function
func NewCallbackLogger(callback CallbackFunc, minLevel slog.Level) *slog.Logger {
	return slog.New(NewCallbackHandler(callback, minLevel))
}

// FormatRecord renders a record the same way Handler does, without the
// trailing newline.
func FormatRecord(r slog.Record) string {
	msg := LevelPrefix(r.Level) + r.Message
	r.Attrs(func(a slog.Attr) bool {
		msg += formatAttr(a)
		return true
	})
	return msg
}

// ErrorAttr is the attribute used for errors across the CLI
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", fmt.Sprint(err))
}
