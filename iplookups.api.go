// Package iplookups resolves a textual network address into a set of
// descriptive attributes (geographic location, ISP, organization, domain,
// connection type) by querying pluggable binary backend databases, and
// memoizes the aggregate result in a bounded least-recently-used cache —
// including definitively unknown results, not just successes.
package iplookups

import (
	"github.com/sgrouples/iplookups/internal/domain"
)

type (
	// Result is the aggregate of all attribute outcomes for one raw address.
	// A nil category was never configured; a non-nil category was consulted,
	// successfully or not.
	Result = domain.Result

	// Location is the structured value of the location category.
	Location = domain.Location

	// LocationOutcome is the location category's outcome: value or failure.
	LocationOutcome = domain.Outcome[domain.Location]

	// StringOutcome is a scalar category's outcome: value or failure.
	StringOutcome = domain.Outcome[string]

	// IPResolver turns the raw textual form of an address into its
	// structured form, without consulting any backend.
	IPResolver = domain.IPResolver

	// LocationLookuper queries the location category for a resolved address.
	LocationLookuper = domain.AttributeLookuper[domain.Location]

	// StringLookuper queries one scalar category for a resolved address.
	StringLookuper = domain.AttributeLookuper[string]

	// Lookupers bundles custom attribute backends for WithLookupers.
	// A nil field means the category is not configured.
	Lookupers = domain.Lookupers
)

var (
	// ErrInvalidIP reports a raw input that could not be resolved to an
	// address. It appears inside outcomes, lookups themselves never fail.
	ErrInvalidIP = domain.ErrInvalidIP

	// ErrNotFound reports an address that is not in a backend database,
	// a normal outcome distinguishable for observability.
	ErrNotFound = domain.ErrNotFound
)
