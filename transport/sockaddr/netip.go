package sockaddr

import (
	"net/netip"
	"strconv"

	"github.com/pkg/errors"
)

// AddrPort converts a to a netip.AddrPort. A non-zero IPv6 scope id
// becomes a numeric zone.
func (a Addr) AddrPort() (netip.AddrPort, error) {
	switch a.family {
	case IPv4:
		return netip.AddrPortFrom(netip.AddrFrom4([4]byte(a.ip[:4])), a.hostPort()), nil
	case IPv6:
		addr := netip.AddrFrom16(a.ip)
		if a.scopeID != 0 {
			addr = addr.WithZone(strconv.FormatUint(uint64(a.scopeID), 10))
		}
		return netip.AddrPortFrom(addr, a.hostPort()), nil
	default:
		return netip.AddrPort{}, errors.Wrapf(ErrAddressFamilyUnsupported, "convert %s address", a.family)
	}
}

// FromAddrPort converts ap. IPv4-mapped IPv6 addresses stay IPv6,
// and only numeric zones are kept as the scope id.
func FromAddrPort(ap netip.AddrPort) Addr {
	var a Addr

	addr := ap.Addr()
	switch {
	case addr.Is4():
		_ = a.SetFamily(IPv4)
		v4 := addr.As4()
		copy(a.ip[:], v4[:])
	case addr.Is6():
		_ = a.SetFamily(IPv6)
		a.ip = addr.As16()
		if scope, err := strconv.ParseUint(addr.Zone(), 10, 32); err == nil {
			a.scopeID = uint32(scope)
		}
	default:
		return Addr{}
	}

	_ = a.SetPort(ap.Port())
	return a
}
