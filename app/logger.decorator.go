package app

import (
	"context"
	"log/slog"

	"github.com/sgrouples/iplookups/alog"
)

func NewLoggedQuery[Q any, Res any](logger alog.Logger, handler Query[Q, Res]) Query[Q, Res] {
	return &queryLoggingDecorator[Q, Res]{
		logger: logger,
		base:   handler,
	}
}

type queryLoggingDecorator[Q any, Res any] struct {
	logger alog.Logger
	base   Query[Q, Res]
}

func (d *queryLoggingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn,lll // valid use of generics
	name := queryName(query)

	d.logger.DebugContext(ctx, "executing query",
		slog.String("query", name),
	)

	res, err := d.base.H(ctx, query)

	if err != nil {
		d.logger.DebugContext(ctx, "failed to execute query",
			slog.String("query", name),
			slog.String("error", err.Error()),
		)
	} else {
		d.logger.DebugContext(ctx, "query executed successfully",
			slog.String("query", name))
	}

	return res, err //nolint:wrapcheck // decorate but not change anything
}
