package keydir

import "github.com/iamNilotpal/ignite/internal/record"

// EntryPointer locates a single value on disk: which file it lives in,
// where in that file the value bytes begin, how many bytes they span,
// and the transaction that produced them. It never holds the key or
// value itself — the keydir is sized by entry count, not data size.
type EntryPointer struct {
	FileID        uint32
	ValuePosition int64
	ValueSize     uint32
	TxID          record.TxID
}

// Liveness distinguishes a key that still holds a value from one whose
// most recent write was a tombstone.
type Liveness int

const (
	Live Liveness = iota
	Deleted
)

// EntryWithLiveness is what a single file scan produces per key before
// folding across files by TxID recency. Only the most recent entry for
// a key, once all files are folded, determines whether it belongs in
// the final Keydir.
type EntryWithLiveness struct {
	Entry    EntryPointer
	Liveness Liveness
}

// TxID returns the entry's TxID, which LoadLatestEntries compares to
// keep the most recent entry per key.
func (e EntryWithLiveness) TxID() record.TxID {
	return e.Entry.TxID
}
