package domain

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrNotFound is returned by a backend when the address is not in its
	// database. This is a normal outcome, not a defect of the backend.
	ErrNotFound = errors.New("address not found in backend")

	// ErrLookupFailed is returned when querying a backend fails.
	ErrLookupFailed = errors.New("backend lookup failed")
)

// AttributeLookuper queries one attribute category for a resolved address.
// Implementations are opened once at construction time and must be safe for
// many simultaneous read-only lookups.
type AttributeLookuper[T any] interface {
	Lookup(ctx context.Context, ip net.IP) (T, error)
}

// Lookupers bundles the configured attribute backends.
// A nil field means the category is not configured and stays absent
// in every Result.
type Lookupers struct {
	Location       AttributeLookuper[Location]
	ISP            AttributeLookuper[string]
	Organization   AttributeLookuper[string]
	Domain         AttributeLookuper[string]
	ConnectionType AttributeLookuper[string]
}

// ResultCache memoizes aggregate results by the raw, unnormalized input
// string. Implementations must be safe for concurrent use, but are not
// required to deduplicate concurrent lookups for the same key.
type ResultCache interface {
	Get(key string) (Result, bool)
	Put(key string, result Result)
}
