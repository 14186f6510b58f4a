// Package application contains the use cases of the lookup core.
package application

import (
	"context"
	"log/slog"
	"net"

	"golang.org/x/sync/errgroup"

	"github.com/sgrouples/iplookups/alog"
	"github.com/sgrouples/iplookups/app"
	"github.com/sgrouples/iplookups/internal/domain"
)

// NewLookupIPQueryHandler returns the single use case of this module:
// resolve a raw address, consult every configured backend, and memoize
// the aggregate in the cache.
//
// cache may be nil, in which case every lookup consults the backends.
// The handler never returns an error; every failure is recorded as data
// inside the returned result.
func NewLookupIPQueryHandler(
	logger alog.Logger,
	resolver domain.IPResolver,
	lookupers domain.Lookupers,
	cache domain.ResultCache,
) app.Query[LookupIPQuery, LookupIPResponse] {
	return &lookupIPQueryHandler{
		logger:    logger,
		resolver:  resolver,
		lookupers: lookupers,
		cache:     cache,
	}
}

type lookupIPQueryHandler struct {
	logger    alog.Logger
	resolver  domain.IPResolver
	lookupers domain.Lookupers
	cache     domain.ResultCache
}

type (
	LookupIPQuery struct {
		// IP is the raw, unnormalized input. It is also the cache key, so two
		// spellings of the same address are memoized as distinct entries.
		IP string
	}
	LookupIPResponse struct {
		Result domain.Result
	}
)

func (h *lookupIPQueryHandler) H(ctx context.Context, query LookupIPQuery) (LookupIPResponse, error) {
	if h.cache != nil {
		if result, ok := h.cache.Get(query.IP); ok {
			h.logger.DebugContext(ctx, "lookup served from cache",
				slog.String("ip", query.IP),
			)

			return LookupIPResponse{Result: result}, nil
		}
	}

	result := h.aggregate(ctx, query.IP)

	// Two concurrent lookups for the same uncached key may both end up here
	// and both write; the last write wins. Deduplicating the backend work is
	// not worth serialising all lookups for.
	if h.cache != nil {
		h.cache.Put(query.IP, result)
	}

	return LookupIPResponse{Result: result}, nil
}

// aggregate fans out to every configured backend and assembles one result.
// Each goroutine writes only its own category, the resolved address is the
// only shared input, so the result is identical regardless of timing.
func (h *lookupIPQueryHandler) aggregate(ctx context.Context, rawIP string) domain.Result {
	ip, err := h.resolver.Resolve(rawIP)
	if err != nil {
		h.logger.DebugContext(ctx, "could not resolve address",
			slog.String("ip", rawIP),
			slog.String("error", err.Error()),
		)

		return h.failAll(err)
	}

	var (
		result domain.Result
		group  errgroup.Group
	)

	if h.lookupers.Location != nil {
		group.Go(func() error {
			result.Location = outcomeOf(ctx, h.lookupers.Location, ip)

			return nil
		})
	}

	if h.lookupers.ISP != nil {
		group.Go(func() error {
			result.ISP = outcomeOf(ctx, h.lookupers.ISP, ip)

			return nil
		})
	}

	if h.lookupers.Organization != nil {
		group.Go(func() error {
			result.Organization = outcomeOf(ctx, h.lookupers.Organization, ip)

			return nil
		})
	}

	if h.lookupers.Domain != nil {
		group.Go(func() error {
			result.Domain = outcomeOf(ctx, h.lookupers.Domain, ip)

			return nil
		})
	}

	if h.lookupers.ConnectionType != nil {
		group.Go(func() error {
			result.ConnectionType = outcomeOf(ctx, h.lookupers.ConnectionType, ip)

			return nil
		})
	}

	_ = group.Wait() // the goroutines record failures as outcomes and never error

	return result
}

// failAll marks every configured category with the same resolution failure,
// while unconfigured categories stay absent.
func (h *lookupIPQueryHandler) failAll(err error) domain.Result {
	var result domain.Result

	if h.lookupers.Location != nil {
		result.Location = domain.Fail[domain.Location](err)
	}

	if h.lookupers.ISP != nil {
		result.ISP = domain.Fail[string](err)
	}

	if h.lookupers.Organization != nil {
		result.Organization = domain.Fail[string](err)
	}

	if h.lookupers.Domain != nil {
		result.Domain = domain.Fail[string](err)
	}

	if h.lookupers.ConnectionType != nil {
		result.ConnectionType = domain.Fail[string](err)
	}

	return result
}

func outcomeOf[T any](ctx context.Context, lookuper domain.AttributeLookuper[T], ip net.IP) *domain.Outcome[T] {
	value, err := lookuper.Lookup(ctx, ip)
	if err != nil {
		return domain.Fail[T](err)
	}

	return domain.Ok(value)
}
