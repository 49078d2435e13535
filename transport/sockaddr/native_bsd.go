//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package sockaddr

import "golang.org/x/sys/unix"

const (
	afInet  = unix.AF_INET
	afInet6 = unix.AF_INET6
)

// BSD sockaddrs start with sa_len and a single byte sa_family.

func putFamily(b []byte, af int, size int) {
	b[0] = byte(size)
	b[1] = byte(af)
}

func readFamily(b []byte) (uint16, bool) {
	if len(b) < 2 {
		return 0, false
	}
	return uint16(b[1]), true
}
