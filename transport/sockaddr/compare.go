package sockaddr

import (
	"bytes"
	"encoding/binary"
)

// family + port + payload + flow info + scope id
const storageLen = 1 + 2 + 16 + 4 + 4

// storage lays out every field of a in a fixed order.
// Unused fields are zero, so byte-wise comparison is semantic comparison.
func (a Addr) storage() [storageLen]byte {
	var b [storageLen]byte
	b[0] = byte(a.family)
	copy(b[1:3], a.port[:])
	copy(b[3:19], a.ip[:])
	binary.BigEndian.PutUint32(b[19:23], a.flowInfo)
	binary.BigEndian.PutUint32(b[23:27], a.scopeID)
	return b
}

func (a Addr) Equal(other Addr) bool {
	return a == other
}

// Compare orders addresses by family, port, payload and auxiliary fields.
// It returns -1, 0 or +1.
func (a Addr) Compare(other Addr) int {
	x, y := a.storage(), other.storage()
	return bytes.Compare(x[:], y[:])
}

func (a Addr) Less(other Addr) bool {
	return a.Compare(other) < 0
}
