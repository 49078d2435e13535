package sockaddr

import "strconv"

type Family uint8

const (
	Unspecified Family = iota
	IPv4
	IPv6
)

func (f Family) String() string {
	switch f {
	case Unspecified:
		return "unspecified"
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	default:
		return "Family(" + strconv.FormatUint(uint64(f), 10) + ")"
	}
}

func (f Family) valid() bool {
	return f == IPv4 || f == IPv6
}
