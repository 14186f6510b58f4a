package alog

import (
	"io"
	"log/slog"
)

// NewTest returns a logger tuned for unit testing.
// Every record is written to w as text at the most verbose level,
// so tests can assert on the output.
func NewTest(w io.Writer) *slog.Logger {
	return New(
		WithLevel(LevelDebug),
		WithHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource:   false,
			Level:       LevelDebug,
			ReplaceAttr: NameLogLevels,
		})),
	)
}
