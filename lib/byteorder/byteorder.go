// Package byteorder converts integers between host and network byte order.
package byteorder

import (
	"encoding/binary"
	"math"
	"math/bits"
)

type Unsigned interface {
	~uint16 | ~uint32 | ~uint64
}

var hostIsBigEndian = binary.NativeEndian.Uint16([]byte{0x12, 0x34}) == 0x1234

// HostIsBigEndian reports whether the host byte order is the network byte order.
func HostIsBigEndian() bool { return hostIsBigEndian }

// Hton converts v from host byte order to network byte order.
func Hton[T Unsigned](v T) T {
	if hostIsBigEndian {
		return v
	}
	return Swap(v)
}

// Ntoh converts v from network byte order to host byte order.
func Ntoh[T Unsigned](v T) T {
	// Swapping is its own inverse.
	return Hton(v)
}

// Swap reverses the bytes of v unconditionally.
func Swap[T Unsigned](v T) T {
	switch uint64(^T(0)) {
	case math.MaxUint16:
		return T(bits.ReverseBytes16(uint16(v)))
	case math.MaxUint32:
		return T(bits.ReverseBytes32(uint32(v)))
	default:
		return T(bits.ReverseBytes64(uint64(v)))
	}
}
