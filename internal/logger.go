package internal

import (
	"log/slog"
	"os"
)

// ParseLogLevel maps a --log-level flag value to a slog.Level. Matching is
// exact and lowercase ("warn" is accepted alongside "warning"); anything
// else falls back to info so a typo never silences the log.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		slog.Warn("unknown log level, using info", "level", level)
		return slog.LevelInfo
	}
}

// SetupLogger installs the process-wide slog logger: text format on stderr,
// keeping stdout clean for key material output.
func SetupLogger(level string) {
	opts := &slog.HandlerOptions{Level: ParseLogLevel(level)}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}
