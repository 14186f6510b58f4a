package alog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sgrouples/iplookups/alog"
)

var ctx = context.Background()

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("log to multiple handlers", func(t *testing.T) {
		t.Parallel()

		buf0 := &bytes.Buffer{}
		buf1 := &bytes.Buffer{}

		logger := alog.New(
			alog.WithHandler(slog.NewTextHandler(buf0, nil)),
			alog.WithHandler(slog.NewTextHandler(buf1, nil)),
		)
		logger.Info("application message")

		assert.Contains(t, buf0.String(), `msg="application message"`)
		assert.Contains(t, buf1.String(), `msg="application message"`)
	})

	t.Run("default level filters debug records", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}

		logger := alog.New(alog.WithHandler(slog.NewTextHandler(buf, nil)))
		logger.Debug("hidden")
		logger.Info("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("with level", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}

		logger := alog.New(
			alog.WithLevel(alog.LevelDebug),
			alog.WithHandler(slog.NewTextHandler(buf, &slog.HandlerOptions{
				Level:       alog.LevelDebug,
				ReplaceAttr: alog.NameLogLevels,
			})),
		)
		logger.Log(ctx, alog.LevelDebug, "verbose message")

		assert.Contains(t, buf.String(), "verbose message")
		assert.Contains(t, buf.String(), "IPLOOKUPS:DEBUG")
	})

	t.Run("with attrs and group", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}

		logger := alog.New(alog.WithHandler(slog.NewTextHandler(buf, nil)))
		logger = logger.WithGroup("lookup").With(slog.String("ip", "1.2.3.4"))
		logger.Info("resolved")

		assert.Contains(t, buf.String(), "lookup.ip=1.2.3.4")
	})
}

func TestNameLogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		testName string
		level    slog.Level
		expected string
	}{
		{"custom info level", alog.LevelInfo, "IPLOOKUPS:INFO"},
		{"custom debug level", alog.LevelDebug, "IPLOOKUPS:DEBUG"},
		{"slog level keeps default name", slog.LevelWarn, "WARN"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.testName, func(t *testing.T) {
			t.Parallel()

			attr := alog.NameLogLevels(nil, slog.Any(slog.LevelKey, tt.level))
			assert.Equal(t, tt.expected, attr.Value.String())
		})
	}
}

func TestNewNoop(t *testing.T) {
	t.Parallel()

	logger := alog.NewNoop()
	assert.NotNil(t, logger)

	logger.InfoContext(ctx, "discarded")
}

func TestNewTest(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}

	logger := alog.NewTest(buf)
	logger.DebugContext(ctx, "test message", slog.String("key", "value"))

	assert.Contains(t, buf.String(), `msg="test message"`)
	assert.Contains(t, buf.String(), "key=value")
}
