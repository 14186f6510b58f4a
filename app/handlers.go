// Package app provides common decorators for use cases in the application layer.
package app

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sgrouples/iplookups/alog"
)

// Query does not produce side effects and returns data.
type Query[Q any, Res any] interface {
	H(ctx context.Context, query Q) (Res, error)
}

// NewInstrumentedQuery is a convenience helper for easy dependency setup.
// The order of dependencies represents the order of calling.
func NewInstrumentedQuery[Q any, Res any](
	traceProvider trace.TracerProvider,
	meterProvider metric.MeterProvider,
	logger alog.Logger,
	query Query[Q, Res],
) Query[Q, Res] {
	return NewTracedQuery(traceProvider, NewMeteredQuery(meterProvider, NewLoggedQuery(logger, query)))
}

// queryName returns a speaking name for the given query struct,
// to be used as an attribute on logs, metrics, and spans.
func queryName(query any) string {
	name := fmt.Sprintf("%T", query)

	// strip the internal package qualifier, so callers see lookup-domain names
	// instead of the layout of this module.
	if i := strings.LastIndex(name, "."); i != -1 {
		return name[i+1:]
	}

	return name
}
