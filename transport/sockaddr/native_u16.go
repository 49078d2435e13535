//go:build linux || windows

package sockaddr

import "encoding/binary"

// sa_family_t is a host order uint16 at the start of the structure.

func putFamily(b []byte, af int, _ int) {
	binary.NativeEndian.PutUint16(b[0:2], uint16(af))
}

func readFamily(b []byte) (uint16, bool) {
	if len(b) < 2 {
		return 0, false
	}
	return binary.NativeEndian.Uint16(b[0:2]), true
}
