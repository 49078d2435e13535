// Package sockaddr implements socket endpoint addresses (IP address + port)
// for both IPv4 and IPv6, convertible to the platform's native sockaddr layout.
package sockaddr

import (
	"encoding/binary"
	"sockaddr-stack/lib/byteorder"
	"sockaddr-stack/network"
	"sockaddr-stack/network/ip"
	ipv4 "sockaddr-stack/network/ip/v4"
	ipv6 "sockaddr-stack/network/ip/v6"
	"sockaddr-stack/transport"
	"strconv"

	"github.com/pkg/errors"
)

const unknownFamily = "error: unknown address family"

// Addr is an endpoint address. The zero value is an Unspecified address.
//
// Fields not used by the current family are always zero,
// so two Addr values can be compared with ==.
type Addr struct {
	family Family

	port     [2]byte // Network byte order.
	ip       [16]byte
	flowInfo uint32 // IPv6 only.
	scopeID  uint32 // IPv6 only.
}

var _ transport.Addr = Addr{}

// New returns an address for the given literal and port.
func New(text string, port uint16) (Addr, error) {
	var a Addr
	if err := a.Set(text, port); err != nil {
		return Addr{}, err
	}
	return a, nil
}

// IsLiteral reports whether text is a valid address literal of family.
func IsLiteral(family Family, text string) bool {
	switch family {
	case IPv4:
		_, err := ipv4.ParseAddr(text)
		return err == nil
	case IPv6:
		_, err := ipv6.ParseAddr(text)
		return err == nil
	default:
		return false
	}
}

func IsIPv4Literal(text string) bool { return IsLiteral(IPv4, text) }
func IsIPv6Literal(text string) bool { return IsLiteral(IPv6, text) }

// SetFamily clears the address and sets its family.
func (a *Addr) SetFamily(family Family) error {
	*a = Addr{}
	if family != Unspecified && !family.valid() {
		return errors.Wrapf(ErrAddressFamilyUnsupported, "set family %s", family)
	}
	a.family = family
	return nil
}

// SetAddress parses text as a literal of the current family.
// Port and IPv6 auxiliary fields are kept as is.
func (a *Addr) SetAddress(text string) error {
	switch a.family {
	case IPv4:
		addr, err := ipv4.ParseAddr(text)
		if err != nil {
			return errors.Wrapf(ErrInvalidAddressFormat, "%q is not an ipv4 literal: %s", text, err)
		}
		a.ip = [16]byte{}
		copy(a.ip[:], addr[:])
	case IPv6:
		addr, err := ipv6.ParseAddr(text)
		if err != nil {
			return errors.Wrapf(ErrInvalidAddressFormat, "%q is not an ipv6 literal: %s", text, err)
		}
		a.ip = addr
	default:
		return errors.Wrapf(ErrAddressFamilyUnsupported, "set address on %s address", a.family)
	}
	return nil
}

func (a *Addr) SetPort(port uint16) error {
	if !a.family.valid() {
		return errors.Wrapf(ErrAddressFamilyUnsupported, "set port on %s address", a.family)
	}
	binary.NativeEndian.PutUint16(a.port[:], byteorder.Hton(port))
	return nil
}

// Set detects the family of text, trying IPv4 first,
// and replaces the whole address.
func (a *Addr) Set(text string, port uint16) error {
	var family Family
	switch {
	case IsIPv4Literal(text):
		family = IPv4
	case IsIPv6Literal(text):
		family = IPv6
	default:
		return errors.Wrapf(ErrAddressFamilyUnsupported, "%q is neither an ipv4 nor an ipv6 literal", text)
	}

	var next Addr
	if err := next.SetFamily(family); err != nil {
		return err
	}
	if err := next.SetAddress(text); err != nil {
		return err
	}
	if err := next.SetPort(port); err != nil {
		return err
	}

	*a = next
	return nil
}

func (a *Addr) SetFlowInfo(flowInfo uint32) error {
	if a.family != IPv6 {
		return errors.Wrapf(ErrAddressFamilyUnsupported, "set flow info on %s address", a.family)
	}
	a.flowInfo = flowInfo
	return nil
}

func (a *Addr) SetScopeID(scopeID uint32) error {
	if a.family != IPv6 {
		return errors.Wrapf(ErrAddressFamilyUnsupported, "set scope id on %s address", a.family)
	}
	a.scopeID = scopeID
	return nil
}

func (a Addr) Family() Family   { return a.family }
func (a Addr) FlowInfo() uint32 { return a.flowInfo }
func (a Addr) ScopeID() uint32  { return a.scopeID }

// IP returns the address payload, nil if the family is Unspecified.
func (a Addr) IP() ip.Addr {
	switch a.family {
	case IPv4:
		return ipv4.Addr(a.ip[:4])
	case IPv6:
		return ipv6.Addr(a.ip)
	default:
		return nil
	}
}

func (a Addr) Address() (string, error) {
	addr := a.IP()
	if addr == nil {
		return "", errors.Wrapf(ErrAddressFamilyUnsupported, "address of %s address", a.family)
	}
	return addr.String(), nil
}

func (a Addr) Port() (uint16, error) {
	if !a.family.valid() {
		return 0, errors.Wrapf(ErrAddressFamilyUnsupported, "port of %s address", a.family)
	}
	return a.hostPort(), nil
}

func (a Addr) hostPort() uint16 {
	return byteorder.Ntoh(binary.NativeEndian.Uint16(a.port[:]))
}

func (a Addr) NetworkAddr() network.Addr {
	addr := a.IP()
	if addr == nil {
		return nil
	}
	return addr
}

// Identifier returns the port, nil if the family is Unspecified.
func (a Addr) Identifier() any {
	if !a.family.valid() {
		return nil
	}
	return a.hostPort()
}

// String returns "ip:port" for IPv4 and "[ip]:port" for IPv6.
// It never fails; unknown families yield a fixed error text.
func (a Addr) String() string {
	addr := a.IP()
	if addr == nil {
		return unknownFamily
	}

	net := addr.String()
	if addr.Version() == 6 {
		net = "[" + net + "]"
	}

	return net + ":" + strconv.FormatUint(uint64(a.hostPort()), 10)
}
