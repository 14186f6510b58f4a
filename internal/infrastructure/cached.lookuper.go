package infrastructure

import (
	"context"
	"fmt"
	"net"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sgrouples/iplookups/internal/domain"
)

// NewCachedLookuper wraps one backend with its own small read-through cache.
// It memoizes failures the same as values, so a repeated miss does not hit
// the backend again. This cache is a per-reader concern and orthogonal to
// the aggregate result cache of the lookup core.
func NewCachedLookuper[T any](size int, base domain.AttributeLookuper[T]) (domain.AttributeLookuper[T], error) { //nolint:ireturn,lll // valid use of generics
	cache, err := lru.New[string, domain.Outcome[T]](size)
	if err != nil {
		return nil, fmt.Errorf("could not create backend cache: %w", err)
	}

	return &cachedLookuper[T]{
		cache: cache,
		base:  base,
	}, nil
}

type cachedLookuper[T any] struct {
	cache *lru.Cache[string, domain.Outcome[T]]
	base  domain.AttributeLookuper[T]
}

func (l *cachedLookuper[T]) Lookup(ctx context.Context, ip net.IP) (T, error) {
	key := ip.String()

	if outcome, ok := l.cache.Get(key); ok {
		return outcome.Value, outcome.Err
	}

	value, err := l.base.Lookup(ctx, ip)
	l.cache.Add(key, domain.Outcome[T]{Value: value, Err: err})

	return value, err //nolint:wrapcheck // decorate but not change anything
}
