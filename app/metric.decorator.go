package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func NewMeteredQuery[Q any, Res any](meterProvider metric.MeterProvider, query Query[Q, Res]) Query[Q, Res] {
	meter := meterProvider.Meter("iplookups.application")

	counter, _ := meter.Int64Counter("queries",
		metric.WithDescription("number of executed queries"))
	duration, _ := meter.Float64Histogram("queries_duration_seconds",
		metric.WithDescription("duration of executed queries"))

	return &queryMeteringDecorator[Q, Res]{
		meter:    meter,
		counter:  counter,
		duration: duration,
		base:     query,
	}
}

type queryMeteringDecorator[Q any, Res any] struct {
	meter    metric.Meter
	counter  metric.Int64Counter
	duration metric.Float64Histogram
	base     Query[Q, Res]
}

func (d *queryMeteringDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	var (
		opt  metric.MeasurementOption
		name = queryName(query)
	)

	start := time.Now()
	defer func() {
		end := time.Since(start)

		d.counter.Add(ctx, 1, opt)
		d.duration.Record(ctx, end.Seconds(), opt)
	}()

	opt = metric.WithAttributes(
		attribute.String("query", name),
		attribute.String("status", "success"),
	)

	result, err := d.base.H(ctx, query)
	if err != nil {
		opt = metric.WithAttributes(
			attribute.String("query", name),
			attribute.String("status", "failure"),
		)
	}

	return result, err //nolint:wrapcheck // decorate but not change anything
}
