package infrastructure_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgrouples/iplookups/internal/infrastructure"
)

var (
	ctx = context.Background()

	errBackendBroken = errors.New("backend query failed")
)

type countingLookuper struct {
	calls atomic.Int64
	value string
	err   error
}

func (l *countingLookuper) Lookup(_ context.Context, _ net.IP) (string, error) {
	l.calls.Add(1)

	if l.err != nil {
		return "", l.err
	}

	return l.value, nil
}

func TestNewCachedLookuper(t *testing.T) {
	t.Parallel()

	t.Run("invalid size", func(t *testing.T) {
		t.Parallel()

		lookuper, err := infrastructure.NewCachedLookuper[string](0, &countingLookuper{})
		assert.Error(t, err)
		assert.Nil(t, lookuper)
	})

	t.Run("repeated lookups hit the backend once", func(t *testing.T) {
		t.Parallel()

		base := &countingLookuper{value: "AS Example"}
		lookuper, err := infrastructure.NewCachedLookuper[string](16, base)
		require.NoError(t, err)

		ip := net.ParseIP("87.118.100.175")

		for n := 0; n < 3; n++ {
			value, err := lookuper.Lookup(ctx, ip)
			require.NoError(t, err)
			assert.Equal(t, "AS Example", value)
		}

		assert.Equal(t, int64(1), base.calls.Load())
	})

	t.Run("failures are memoized as well", func(t *testing.T) {
		t.Parallel()

		base := &countingLookuper{err: errBackendBroken}
		lookuper, err := infrastructure.NewCachedLookuper[string](16, base)
		require.NoError(t, err)

		ip := net.ParseIP("87.118.100.175")

		for n := 0; n < 3; n++ {
			_, err := lookuper.Lookup(ctx, ip)
			assert.ErrorIs(t, err, errBackendBroken)
		}

		assert.Equal(t, int64(1), base.calls.Load())
	})

	t.Run("distinct addresses are cached separately", func(t *testing.T) {
		t.Parallel()

		base := &countingLookuper{value: "AS Example"}
		lookuper, err := infrastructure.NewCachedLookuper[string](16, base)
		require.NoError(t, err)

		_, err = lookuper.Lookup(ctx, net.ParseIP("1.1.1.1"))
		require.NoError(t, err)

		_, err = lookuper.Lookup(ctx, net.ParseIP("2.2.2.2"))
		require.NoError(t, err)

		assert.Equal(t, int64(2), base.calls.Load())
	})
}
