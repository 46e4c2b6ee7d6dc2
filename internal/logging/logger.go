package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the global logger instance used throughout the application.
var Logger *slog.Logger

func init() {
	if err := InitLogger(os.Stderr, ""); err != nil {
		_ = InitLogger(os.Stderr, "info")
	}
}

// InitLogger points the global logger at w with the given level (debug, info,
// warn, error). An empty level falls back to LOG_LEVEL, then to info.
func InitLogger(w io.Writer, logLevel string) error {
	if logLevel == "" {
		if logLevel = os.Getenv("LOG_LEVEL"); logLevel == "" {
			logLevel = "info"
		}
	}

	level, err := ParseLevel(logLevel)
	if err != nil {
		return err
	}

	Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return nil
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", name)
}
