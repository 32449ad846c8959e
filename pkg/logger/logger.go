package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log is usable before Init; Init swaps in the JSON handler.
var Log = slog.Default()

func Init() {
	InitWithLevel(os.Getenv("LOG_LEVEL"))
}

// InitWithLevel configures the JSON handler at the named level
// ("debug", "info", "warn", "error"). Unknown names mean debug.
func InitWithLevel(level string) {
	InitTo(os.Stdout, level)
}

// InitTo is InitWithLevel writing to w.
func InitTo(w io.Writer, level string) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelDebug
}
