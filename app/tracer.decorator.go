package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func NewTracedQuery[Q any, Res any](traceProvider trace.TracerProvider, query Query[Q, Res]) Query[Q, Res] {
	return &queryTracingDecorator[Q, Res]{
		tracer: traceProvider.Tracer("iplookups.application"),
		base:   query,
	}
}

type queryTracingDecorator[Q any, Res any] struct {
	tracer trace.Tracer
	base   Query[Q, Res]
}

func (d *queryTracingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	name := queryName(query)

	newCtx, span := d.tracer.Start(ctx, "query",
		trace.WithAttributes(attribute.String("query", name)),
	)
	defer span.End()

	result, err := d.base.H(newCtx, query)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return result, err //nolint:wrapcheck // decorate but not change anything
}
