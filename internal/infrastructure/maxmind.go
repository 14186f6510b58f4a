// Package infrastructure wraps the binary geo databases behind the
// domain's lookup interfaces.
package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/sgrouples/iplookups/internal/domain"
)

var ErrOpenFailed = errors.New("opening backend database failed")

// NewMaxmindBackends opens every configured MaxMind database exactly once.
// An empty path means the category is not configured. A missing or corrupt
// file fails construction immediately, it is never deferred into a lookup.
//
// The ISP file serves both the isp and the organization category: two
// accessors over the one opened reader, never a second open.
func NewMaxmindBackends(geoFile, ispFile, domainFile, connectionTypeFile string) (*MaxmindBackends, error) {
	backends := &MaxmindBackends{}

	for _, db := range []struct {
		file   string
		reader **geoip2.Reader
	}{
		{geoFile, &backends.geo},
		{ispFile, &backends.isp},
		{domainFile, &backends.domain},
		{connectionTypeFile, &backends.connectionType},
	} {
		if db.file == "" {
			continue
		}

		reader, err := geoip2.Open(db.file)
		if err != nil {
			_ = backends.Close()

			return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, db.file, err)
		}

		*db.reader = reader
	}

	return backends, nil
}

type MaxmindBackends struct {
	geo            *geoip2.Reader
	isp            *geoip2.Reader
	domain         *geoip2.Reader
	connectionType *geoip2.Reader
}

// Lookupers exposes one lookuper per configured category.
func (b *MaxmindBackends) Lookupers() domain.Lookupers {
	lookupers := domain.Lookupers{}

	if b.geo != nil {
		lookupers.Location = &cityLookuper{reader: b.geo}
	}

	if b.isp != nil {
		lookupers.ISP = &ispLookuper{reader: b.isp}
		lookupers.Organization = &organizationLookuper{reader: b.isp}
	}

	if b.domain != nil {
		lookupers.Domain = &domainLookuper{reader: b.domain}
	}

	if b.connectionType != nil {
		lookupers.ConnectionType = &connectionTypeLookuper{reader: b.connectionType}
	}

	return lookupers
}

func (b *MaxmindBackends) Close() error {
	var retErr error

	for _, reader := range []*geoip2.Reader{b.geo, b.isp, b.domain, b.connectionType} {
		if reader == nil {
			continue
		}

		if err := reader.Close(); err != nil {
			retErr = errors.Join(retErr, err)
		}
	}

	if retErr != nil {
		return fmt.Errorf("could not close backend databases: %w", retErr)
	}

	return nil
}

type cityLookuper struct {
	reader *geoip2.Reader
}

func (l *cityLookuper) Lookup(_ context.Context, ip net.IP) (domain.Location, error) {
	record, err := l.reader.City(ip)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	if record.Country.IsoCode == "" && record.City.GeoNameID == 0 && record.Location.TimeZone == "" {
		return domain.Location{}, domain.ErrNotFound
	}

	location := domain.Location{
		CountryCode:    record.Country.IsoCode,
		CountryName:    record.Country.Names["en"],
		City:           record.City.Names["en"],
		Latitude:       record.Location.Latitude,
		Longitude:      record.Location.Longitude,
		TimeZone:       record.Location.TimeZone,
		PostalCode:     record.Postal.Code,
		MetroCode:      record.Location.MetroCode,
		AccuracyRadius: record.Location.AccuracyRadius,
	}

	if len(record.Subdivisions) > 0 {
		location.Region = record.Subdivisions[0].Names["en"]
	}

	return location, nil
}

type ispLookuper struct {
	reader *geoip2.Reader
}

func (l *ispLookuper) Lookup(_ context.Context, ip net.IP) (string, error) {
	record, err := l.reader.ISP(ip)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	if record.ISP == "" {
		return "", domain.ErrNotFound
	}

	return record.ISP, nil
}

// organizationLookuper reads from the same opened ISP database as
// ispLookuper, through the organization accessor of the record.
type organizationLookuper struct {
	reader *geoip2.Reader
}

func (l *organizationLookuper) Lookup(_ context.Context, ip net.IP) (string, error) {
	record, err := l.reader.ISP(ip)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	if record.Organization == "" {
		return "", domain.ErrNotFound
	}

	return record.Organization, nil
}

type domainLookuper struct {
	reader *geoip2.Reader
}

func (l *domainLookuper) Lookup(_ context.Context, ip net.IP) (string, error) {
	record, err := l.reader.Domain(ip)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	if record.Domain == "" {
		return "", domain.ErrNotFound
	}

	return record.Domain, nil
}

type connectionTypeLookuper struct {
	reader *geoip2.Reader
}

func (l *connectionTypeLookuper) Lookup(_ context.Context, ip net.IP) (string, error) {
	record, err := l.reader.ConnectionType(ip)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	if record.ConnectionType == "" {
		return "", domain.ErrNotFound
	}

	return record.ConnectionType, nil
}
