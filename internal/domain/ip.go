package domain

import (
	"errors"
	"fmt"
	"net"
)

var ErrInvalidIP = errors.New("invalid ip address")

// IPResolver turns the raw textual form of an address into its structured form.
// It is a pure function of the string and never consults any backend.
type IPResolver interface {
	Resolve(rawIP string) (net.IP, error)
}

// NewParseResolver returns the default IPResolver.
// It parses IPv4 and IPv6 notations and does not perform any DNS lookups.
func NewParseResolver() *ParseResolver {
	return &ParseResolver{}
}

type ParseResolver struct{}

var _ IPResolver = (*ParseResolver)(nil)

func (r *ParseResolver) Resolve(rawIP string) (net.IP, error) {
	ip := net.ParseIP(rawIP)
	if ip == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIP, rawIP)
	}

	return ip, nil
}
