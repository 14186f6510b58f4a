package infrastructure

import (
	"context"
	"fmt"
	"net"

	"github.com/ip2location/ip2location-go/v9"

	"github.com/sgrouples/iplookups/internal/domain"
)

// NewIP2LocationBackend returns a location backend reading an IP2Location
// .BIN database. It is an alternative to the MaxMind city database, the
// file is opened once here and reused by every lookup.
//
// This site or product includes IP2Location LITE data available from
// <a href="https://lite.ip2location.com">https://lite.ip2location.com</a>.
func NewIP2LocationBackend(dbFile string) (*IP2Location, error) {
	db, err := ip2location.OpenDB(dbFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpenFailed, dbFile, err)
	}

	return &IP2Location{db: db}, nil
}

type IP2Location struct {
	db *ip2location.DB
}

var _ domain.AttributeLookuper[domain.Location] = (*IP2Location)(nil)

func (l *IP2Location) Lookup(_ context.Context, ip net.IP) (domain.Location, error) {
	record, err := l.db.Get_all(ip.String())
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
	}

	if record.Country_short == "" || record.Country_short == "-" {
		return domain.Location{}, domain.ErrNotFound
	}

	return domain.Location{
		CountryCode: record.Country_short,
		CountryName: record.Country_long,
		Region:      record.Region,
		City:        record.City,
		Latitude:    float64(record.Latitude),
		Longitude:   float64(record.Longitude),
		TimeZone:    record.Timezone,
		PostalCode:  record.Zipcode,
	}, nil
}

func (l *IP2Location) Close() error {
	l.db.Close()

	return nil
}
