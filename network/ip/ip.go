package ip

import "sockaddr-stack/network"

type Addr interface {
	network.Addr

	Version() uint
}
