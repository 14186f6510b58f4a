package application_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/sgrouples/iplookups/internal/domain"
)

var (
	ctx = context.Background()

	errBackendBroken = errors.New("backend query failed")
)

// countingResolver resolves via net.ParseIP and counts its invocations,
// so tests can verify the cache short-circuits backend work.
type countingResolver struct {
	calls atomic.Int64
	err   error
}

func (r *countingResolver) Resolve(rawIP string) (net.IP, error) {
	r.calls.Add(1)

	if r.err != nil {
		return nil, r.err
	}

	ip := net.ParseIP(rawIP)
	if ip == nil {
		return nil, domain.ErrInvalidIP
	}

	return ip, nil
}

// stubLookuper returns a fixed value or failure and counts its invocations.
type stubLookuper[T any] struct {
	calls atomic.Int64
	value T
	err   error
	delay time.Duration
}

func (l *stubLookuper[T]) Lookup(_ context.Context, _ net.IP) (T, error) {
	l.calls.Add(1)

	if l.delay > 0 {
		time.Sleep(l.delay)
	}

	if l.err != nil {
		var zero T

		return zero, l.err
	}

	return l.value, nil
}
