package record

import "encoding/binary"

// TxID is a 128-bit monotonically increasing write counter. Go has no
// native 128-bit integer, so it is represented as a pair of uint64 halves
// and compared/incremented as an unsigned 128-bit value, matching the
// source's u128 tx_id field as it's stamped into each record's header.
type TxID struct {
	Hi uint64
	Lo uint64
}

// Zero is the TxID used before the first record has ever been written.
var Zero = TxID{}

// Next returns the TxID one greater than id, carrying from Lo into Hi on
// overflow.
func (id TxID) Next() TxID {
	lo := id.Lo + 1
	hi := id.Hi
	if lo == 0 {
		hi++
	}
	return TxID{Hi: hi, Lo: lo}
}

// Cmp returns -1, 0, or 1 as id is less than, equal to, or greater than other.
func (id TxID) Cmp(other TxID) int {
	switch {
	case id.Hi != other.Hi:
		if id.Hi < other.Hi {
			return -1
		}
		return 1
	case id.Lo != other.Lo:
		if id.Lo < other.Lo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// PutBytes writes the big-endian 16-byte encoding of id into dst, which
// must be at least 16 bytes long.
func (id TxID) PutBytes(dst []byte) {
	binary.BigEndian.PutUint64(dst[0:8], id.Hi)
	binary.BigEndian.PutUint64(dst[8:16], id.Lo)
}

// TxIDFromBytes decodes a big-endian 16-byte TxID. src must be at least
// 16 bytes long.
func TxIDFromBytes(src []byte) TxID {
	return TxID{
		Hi: binary.BigEndian.Uint64(src[0:8]),
		Lo: binary.BigEndian.Uint64(src[8:16]),
	}
}
