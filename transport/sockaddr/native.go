package sockaddr

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Native layout sizes, equal to sizeof(struct sockaddr_in) and sizeof(struct sockaddr_in6).
const (
	SizeofInet4 = 16
	SizeofInet6 = 28

	// MaxNativeLen is large enough for any layout Native returns or LoadSockaddr accepts.
	MaxNativeLen = SizeofInet6
)

// SocketFamily returns the platform AF_* constant for f. Unspecified and unknown
// families map to AF_UNSPEC.
func (f Family) SocketFamily() int {
	switch f {
	case IPv4:
		return afInet
	case IPv6:
		return afInet6
	default:
		return 0
	}
}

// Len returns the length of the native layout of a.
func (a Addr) Len() int {
	if a.family == IPv4 {
		return SizeofInet4
	}
	return SizeofInet6
}

// Native returns a in the layout the platform socket calls expect.
// An Unspecified address yields a zeroed buffer, which reads as AF_UNSPEC.
func (a Addr) Native() []byte {
	switch a.family {
	case IPv4:
		// family | port | addr[4] | zero[8]
		b := make([]byte, SizeofInet4)
		putFamily(b, afInet, SizeofInet4)
		copy(b[2:4], a.port[:])
		copy(b[4:8], a.ip[:4])
		return b
	case IPv6:
		// family | port | flowinfo | addr[16] | scope id
		b := make([]byte, SizeofInet6)
		putFamily(b, afInet6, SizeofInet6)
		copy(b[2:4], a.port[:])
		binary.BigEndian.PutUint32(b[4:8], a.flowInfo)
		copy(b[8:24], a.ip[:])
		binary.NativeEndian.PutUint32(b[24:28], a.scopeID)
		return b
	default:
		return make([]byte, MaxNativeLen)
	}
}

// LoadNative replaces a with the native layout in raw, read as family.
// Families other than IPv4 and IPv6 leave a Unspecified.
func (a *Addr) LoadNative(raw []byte, family Family) error {
	*a = Addr{}

	switch family {
	case IPv4:
		if len(raw) < SizeofInet4 {
			return errors.Wrapf(ErrShortBuffer, "need %d bytes for ipv4, got %d", SizeofInet4, len(raw))
		}
		a.family = IPv4
		copy(a.port[:], raw[2:4])
		copy(a.ip[:4], raw[4:8])
	case IPv6:
		if len(raw) < SizeofInet6 {
			return errors.Wrapf(ErrShortBuffer, "need %d bytes for ipv6, got %d", SizeofInet6, len(raw))
		}
		a.family = IPv6
		copy(a.port[:], raw[2:4])
		a.flowInfo = binary.BigEndian.Uint32(raw[4:8])
		copy(a.ip[:], raw[8:24])
		a.scopeID = binary.NativeEndian.Uint32(raw[24:28])
	}

	return nil
}

// LoadSockaddr replaces a with the native layout in raw,
// detecting the family from the layout itself.
func (a *Addr) LoadSockaddr(raw []byte) error {
	af, ok := readFamily(raw)
	if !ok {
		*a = Addr{}
		return errors.Wrapf(ErrShortBuffer, "no address family in %d bytes", len(raw))
	}

	switch int(af) {
	case afInet:
		return a.LoadNative(raw, IPv4)
	case afInet6:
		return a.LoadNative(raw, IPv6)
	default:
		return a.LoadNative(raw, Unspecified)
	}
}
