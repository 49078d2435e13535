//go:build windows

package sockaddr

import "golang.org/x/sys/windows"

const (
	afInet  = windows.AF_INET
	afInet6 = windows.AF_INET6
)
