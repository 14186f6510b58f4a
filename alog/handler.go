package alog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// LoggerOpt allows to initialise a logger with custom options.
type LoggerOpt func(logger *multiHandler)

// WithHandler adds a slog.Handler to be logged to.
// You can set as many as you want.
func WithHandler(h slog.Handler) LoggerOpt {
	return func(l *multiHandler) {
		l.handlers = append(l.handlers, h)
	}
}

// WithLevel initialises the logger with a starting level.
func WithLevel(level slog.Level) LoggerOpt {
	return func(l *multiHandler) {
		l.level = &level
	}
}

// New returns a production ready logger.
//
// If no options are given it creates a default handler, logging JSON to Stderr.
// Otherwise, use WithHandler to set your own handlers.
func New(opts ...LoggerOpt) *slog.Logger {
	return slog.New(newMultiHandler(opts...))
}

// NewDevelopment returns a logger ready for local development purposes,
// logging human-readable text at the most verbose level.
func NewDevelopment() *slog.Logger {
	return New(
		WithLevel(LevelDebug),
		WithHandler(slog.NewTextHandler(os.Stderr, getDebugHandlerOptions())),
	)
}

// newMultiHandler implements the iplookups specific logging logic.
// It does not output anything directly and relies on other slog.Handlers to do so.
// If no Handlers are provided via WithHandler, a default JSON handler logs to os.Stderr.
func newMultiHandler(opts ...LoggerOpt) *multiHandler {
	defaultLevel := slog.LevelInfo

	logger := &multiHandler{
		handlers: []slog.Handler{},
		level:    &defaultLevel,
	}

	for _, opt := range opts {
		opt(logger)
	}

	hasCustomHandlers := len(logger.handlers) != 0
	if !hasCustomHandlers {
		logger.handlers = []slog.Handler{slog.NewJSONHandler(os.Stderr, getDefaultHandlerOptions())}
	}

	return logger
}

// multiHandler fans each record out to all configured handlers.
type multiHandler struct {
	handlers []slog.Handler
	level    *slog.Level
}

var _ slog.Handler = (*multiHandler)(nil)

func (l *multiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= *l.level
}

func (l *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var retErr error

	for _, h := range l.handlers {
		err := h.Handle(ctx, record)
		if err != nil {
			retErr = errors.Join(retErr, err)
		}
	}

	if retErr != nil {
		return fmt.Errorf("could not handle log record: %w", retErr)
	}

	return nil
}

func (l *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}

	return &multiHandler{
		handlers: handlers,
		level:    l.level,
	}
}

func (l *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithGroup(name)
	}

	return &multiHandler{
		handlers: handlers,
		level:    l.level,
	}
}
