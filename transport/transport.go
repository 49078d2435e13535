package transport

import "sockaddr-stack/network"

type Addr interface {
	NetworkAddr() network.Addr
	Identifier() any // Extra identifier (e.g. port, SPI)
	String() string
}
