// Package merge implements compaction: folding every inactive data file
// down to one copy of each key's latest live value, reclaiming the
// space tombstones and superseded versions occupy.
package merge

import (
	"github.com/iamNilotpal/ignite/internal/keydir"
	"github.com/iamNilotpal/ignite/internal/record"
)

// Pointer locates one record inside an inactive data file purely in
// terms of byte ranges, so the merge copy can seek-and-copy the raw
// bytes without decoding the key or value.
type Pointer struct {
	Liveness     keydir.Liveness
	FileID       uint32
	TxID         record.TxID
	RecordOffset int64
	RecordSize   int64
	KeySize      uint16
	ValueSize    uint32
}
