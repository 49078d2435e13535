package ipv6

import (
	"sockaddr-stack/network/ip"
	ipv4 "sockaddr-stack/network/ip/v4"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Addr [16]byte

var _ ip.Addr = Addr{}

// Reference: https://datatracker.ietf.org/doc/html/rfc4291#section-2.2
func ParseAddr(s string) (Addr, error) {
	if strings.IndexByte(s, '%') >= 0 {
		return Addr{}, errors.New("zone identifier is not allowed")
	}

	before, after, found := strings.Cut(s, "::")
	var addr Addr

	if !found {
		// Two colons not found. parse the whole string.
		addrBytes, err := parseAddrFrag(before, true)
		if err != nil {
			return Addr{}, err
		}
		if len(addrBytes) != 16 {
			return Addr{}, errors.New("length of address is not 128bit")
		}

		copy(addr[:], addrBytes)

		return addr, nil
	}

	// Two colons found. parse each of them and combine them.
	frag1, err1 := parseAddrFrag(before, false)
	frag2, err2 := parseAddrFrag(after, true)
	if err1 != nil || err2 != nil {
		if err1 != nil {
			return Addr{}, errors.Wrap(err1, "parsing fragment before ::")
		} else {
			return Addr{}, errors.Wrap(err2, "parsing fragment after ::")
		}
	}

	if len(frag1)+len(frag2) > 14 {
		// At least 2 bytes should be ommited.
		return Addr{}, errors.New("ipv6 address too long")
	}

	// copy first len(frag1) bytes.
	copy(addr[:len(frag1)], frag1)
	// copy last len(frag2) bytes.
	copy(addr[len(addr)-len(frag2):], frag2)

	return addr, nil
}

func parseAddrFrag(s string, isLast bool) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}

	h16s := strings.Split(s, ":")
	if len(h16s) > 8 {
		return nil, errors.New("too many groups")
	}

	addr := make([]byte, 0, len(h16s)*2+2)
	for idx, h16 := range h16s {
		if h16 == "" {
			// 0:::, 0::0::
			return nil, errors.New("invalid use of colon seperator")
		}

		if strings.IndexByte(h16, '.') >= 0 {
			if !isLast || idx != len(h16s)-1 {
				return nil, errors.New("ipv4 address is only allowed on the last index")
			}
			addrV4, err := ipv4.ParseAddr(h16)
			if err != nil {
				return nil, errors.Wrap(err,
					"non-hex item found on the last index, but wasn't ipv4 address",
				)
			}
			addr = append(addr, addrV4[:]...)
			continue
		}

		if len(h16) > 4 {
			return nil, errors.Errorf("group %q has more than 4 hex digits", h16)
		}
		n, err := strconv.ParseUint(h16, 16, 16)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse hex")
		}

		addr = append(addr, byte(n>>8), byte(n&0xFF))
	}

	return addr, nil
}

func (a Addr) Raw() []byte   { return a[:] }
func (a Addr) Version() uint { return 6 }

// IsV4Mapped reports whether a is in ::ffff:0:0/96.
func (a Addr) IsV4Mapped() bool {
	for _, b := range a[:10] {
		if b != 0 {
			return false
		}
	}
	return a[10] == 0xFF && a[11] == 0xFF
}

func (a Addr) group(idx int) uint16 {
	return uint16(a[idx*2])<<8 | uint16(a[idx*2+1])
}

// String returns the canonical representation.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc5952#section-4
func (a Addr) String() string {
	if a.IsV4Mapped() {
		return "::ffff:" + ipv4.Addr(a[12:]).String()
	}

	// Find the longest run of zero groups. Single zero group is not shortened.
	zeroStart, zeroLen := -1, 1
	for idx := 0; idx < 8; {
		if a.group(idx) != 0 {
			idx++
			continue
		}

		end := idx
		for end < 8 && a.group(end) == 0 {
			end++
		}
		if end-idx > zeroLen {
			zeroStart, zeroLen = idx, end-idx
		}
		idx = end
	}

	b := make([]byte, 0, len("ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff"))
	for idx := 0; idx < 8; idx++ {
		if idx == zeroStart {
			b = append(b, ':', ':')
			idx += zeroLen - 1
			continue
		}
		if idx > 0 && idx != zeroStart+zeroLen {
			b = append(b, ':')
		}
		b = strconv.AppendUint(b, uint64(a.group(idx)), 16)
	}

	return string(b)
}
