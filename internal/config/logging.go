package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// ParseLogLevel maps a level name to slog.Level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger builds the process logger. Console output goes to stderr or stdout in the
// configured format; any other OutputPath is treated as a file that receives JSON as well.
// The returned cleanup closes the file, if one was opened.
func SetupLogger(cfg LoggingConfig) (*slog.Logger, func() error) {
	level := ParseLogLevel(cfg.Level)
	noop := func() error { return nil }

	switch cfg.OutputPath {
	case "", "stderr":
		return slog.New(consoleHandler(os.Stderr, cfg.Format, level)), noop
	case "stdout":
		return slog.New(consoleHandler(os.Stdout, cfg.Format, level)), noop
	}

	console := consoleHandler(os.Stderr, cfg.Format, level)
	file, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger := slog.New(console)
		logger.Error("failed to open log file, using stderr only", "error", err, "file", cfg.OutputPath)
		return logger, noop
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(console, fileHandler)), file.Close
}

// SetupLoggerWithWriters fans out to console and file writers (for testing).
func SetupLoggerWithWriters(console, file io.Writer, cfg LoggingConfig) *slog.Logger {
	level := ParseLogLevel(cfg.Level)
	return slog.New(slogmulti.Fanout(
		consoleHandler(console, cfg.Format, level),
		slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}),
	))
}

func consoleHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
