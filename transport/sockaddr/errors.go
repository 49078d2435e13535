package sockaddr

import "errors"

var (
	ErrAddressFamilyUnsupported = errors.New("address family not supported")
	ErrInvalidAddressFormat     = errors.New("invalid address format")
	ErrShortBuffer              = errors.New("buffer too short for native address")
)
