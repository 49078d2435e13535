//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package sockaddr

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Sockaddr converts a for use with unix.Bind, unix.Connect and friends.
func (a Addr) Sockaddr() (unix.Sockaddr, error) {
	switch a.family {
	case IPv4:
		sa := &unix.SockaddrInet4{Port: int(a.hostPort())}
		copy(sa.Addr[:], a.ip[:4])
		return sa, nil
	case IPv6:
		sa := &unix.SockaddrInet6{Port: int(a.hostPort()), ZoneId: a.scopeID}
		copy(sa.Addr[:], a.ip[:])
		return sa, nil
	default:
		return nil, errors.Wrapf(ErrAddressFamilyUnsupported, "convert %s address", a.family)
	}
}

// FromSockaddr converts sa as returned by unix.Accept, unix.Getpeername
// or unix.Getsockname.
func FromSockaddr(sa unix.Sockaddr) (Addr, error) {
	var a Addr

	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		_ = a.SetFamily(IPv4)
		copy(a.ip[:], sa.Addr[:])
		_ = a.SetPort(uint16(sa.Port))
	case *unix.SockaddrInet6:
		_ = a.SetFamily(IPv6)
		a.ip = sa.Addr
		a.scopeID = sa.ZoneId
		_ = a.SetPort(uint16(sa.Port))
	default:
		return Addr{}, errors.Wrapf(ErrAddressFamilyUnsupported, "convert %T", sa)
	}

	return a, nil
}
