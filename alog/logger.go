// Package alog provides the logging conventions of iplookups.
//
// It is built on top of log/slog and does not output anything itself,
// it relies on one or more slog.Handlers to do so.
package alog

import (
	"context"
	"log/slog"
)

// Logger is a subset of slog.Logger, with the aim to
// encourage the use of the methods offering context.Context,
// so that tracing information can be correlated.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
}

var _ Logger = (*slog.Logger)(nil)

const (
	// LevelInfo is used to see what is going on inside iplookups.
	LevelInfo = slog.Level(-8)

	// LevelDebug is used by iplookups developers, if you really want to know what is going on.
	LevelDebug = slog.Level(-12)
)

// NameLogLevels replaces the default name of a custom log level with a speaking name.
func NameLogLevels(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		level, _ := attr.Value.Any().(slog.Level)

		levelLabel, exists := getLevelNames()[level]
		if !exists {
			levelLabel = level.String()
		}

		attr.Value = slog.StringValue(levelLabel)
	}

	return attr
}

// getLevelNames maps the iplookups log levels to human-readable names.
func getLevelNames() map[slog.Leveler]string {
	return map[slog.Leveler]string{
		LevelInfo:  "IPLOOKUPS:INFO",
		LevelDebug: "IPLOOKUPS:DEBUG",
	}
}

func getDefaultHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: NameLogLevels,
	}
}

func getDebugHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   true,
		Level:       LevelDebug,
		ReplaceAttr: NameLogLevels,
	}
}
