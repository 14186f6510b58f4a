package iplookups

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/sgrouples/iplookups/alog"
	"github.com/sgrouples/iplookups/app"
	"github.com/sgrouples/iplookups/internal/application"
	"github.com/sgrouples/iplookups/internal/domain"
	"github.com/sgrouples/iplookups/internal/infrastructure"
	"github.com/sgrouples/iplookups/internal/interfaces/repository"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Option overwrites a default dependency of IPLookups.
type Option func(*options)

// WithLogger sets the logger, alog.NewNoop by default.
func WithLogger(logger alog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithTraceProvider enables tracing of each lookup.
func WithTraceProvider(traceProvider trace.TracerProvider) Option {
	return func(opts *options) {
		opts.traceProvider = traceProvider
	}
}

// WithMeterProvider enables metering of each lookup.
func WithMeterProvider(meterProvider metric.MeterProvider) Option {
	return func(opts *options) {
		opts.meterProvider = meterProvider
	}
}

// WithResolver replaces the default resolver, which parses IPv4 and IPv6
// notations without DNS.
func WithResolver(resolver domain.IPResolver) Option {
	return func(opts *options) {
		opts.resolver = resolver
	}
}

// WithLookupers attaches custom attribute backends instead of opening the
// database files of Config.Databases.
func WithLookupers(lookupers domain.Lookupers) Option {
	return func(opts *options) {
		opts.lookupers = &lookupers
	}
}

type options struct {
	logger        alog.Logger
	traceProvider trace.TracerProvider
	meterProvider metric.MeterProvider
	resolver      domain.IPResolver
	lookupers     *domain.Lookupers
}

// NewIPLookups assembles the lookup core from the given configuration.
//
// All configured backend databases are opened here, exactly once; a missing
// or corrupt file fails construction immediately and no file is reopened
// during lookups. The returned IPLookups is safe for concurrent use.
func NewIPLookups(conf *Config, opts ...Option) (*IPLookups, error) {
	if conf == nil {
		conf = &Config{}

		if err := DefaultViper().Unmarshal(conf); err != nil {
			return nil, err
		}
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigLoadFailed, err)
	}

	option := options{
		logger:        alog.NewNoop(),
		traceProvider: tracenoop.NewTracerProvider(),
		meterProvider: metricnoop.NewMeterProvider(),
		resolver:      domain.NewParseResolver(),
		lookupers:     nil,
	}
	for _, opt := range opts {
		opt(&option)
	}

	lookups := &IPLookups{}

	lookupers, err := lookups.buildLookupers(conf, option)
	if err != nil {
		return nil, err
	}

	var cache domain.ResultCache
	if conf.Cache.Size > 0 {
		lruCache, err := repository.NewLRUCache(conf.Cache.Size)
		if err != nil {
			_ = lookups.Close()

			return nil, err
		}

		cache = lruCache
	}

	lookups.lookup = app.NewInstrumentedQuery(
		option.traceProvider,
		option.meterProvider,
		option.logger,
		application.NewLookupIPQueryHandler(option.logger, option.resolver, lookupers, cache),
	)

	return lookups, nil
}

// IPLookups is the externally visible entry point of this module.
type IPLookups struct {
	lookup app.Query[application.LookupIPQuery, application.LookupIPResponse]

	backends    *infrastructure.MaxmindBackends
	ip2location *infrastructure.IP2Location
}

// Lookup resolves rawIP and returns one outcome per configured category.
//
// It never fails: resolution and backend failures are embedded in the
// returned Result. A previously seen rawIP is answered from the cache
// without consulting any backend, even if the cached outcome is a failure.
func (l *IPLookups) Lookup(ctx context.Context, rawIP string) Result {
	res, _ := l.lookup.H(ctx, application.LookupIPQuery{IP: rawIP})

	return res.Result
}

// Close releases the backend databases opened at construction time.
// In-flight lookups must have finished before calling Close.
func (l *IPLookups) Close() error {
	var retErr error

	if l.backends != nil {
		retErr = errors.Join(retErr, l.backends.Close())
	}

	if l.ip2location != nil {
		retErr = errors.Join(retErr, l.ip2location.Close())
	}

	return retErr
}

func (l *IPLookups) buildLookupers(conf *Config, option options) (domain.Lookupers, error) {
	if option.lookupers != nil {
		return *option.lookupers, nil
	}

	backends, err := infrastructure.NewMaxmindBackends(
		conf.Databases.GeoFile,
		conf.Databases.ISPFile,
		conf.Databases.DomainFile,
		conf.Databases.ConnectionTypeFile,
	)
	if err != nil {
		return domain.Lookupers{}, err
	}

	l.backends = backends
	lookupers := backends.Lookupers()

	if conf.Databases.IP2LocationFile != "" {
		ip2location, err := infrastructure.NewIP2LocationBackend(conf.Databases.IP2LocationFile)
		if err != nil {
			_ = l.Close()

			return domain.Lookupers{}, err
		}

		l.ip2location = ip2location
		lookupers.Location = ip2location
	}

	if conf.Cache.MemoryCache {
		if err := cacheLookupers(&lookupers, conf.Cache.MemoryCacheSize); err != nil {
			_ = l.Close()

			return domain.Lookupers{}, err
		}
	}

	return lookupers, nil
}

// cacheLookupers wraps each configured backend with its own read-through cache.
func cacheLookupers(lookupers *domain.Lookupers, size int) error {
	var err error

	if lookupers.Location != nil {
		lookupers.Location, err = infrastructure.NewCachedLookuper(size, lookupers.Location)
		if err != nil {
			return err
		}
	}

	for _, lookuper := range []*domain.AttributeLookuper[string]{
		&lookupers.ISP,
		&lookupers.Organization,
		&lookupers.Domain,
		&lookupers.ConnectionType,
	} {
		if *lookuper == nil {
			continue
		}

		*lookuper, err = infrastructure.NewCachedLookuper(size, *lookuper)
		if err != nil {
			return err
		}
	}

	return nil
}
