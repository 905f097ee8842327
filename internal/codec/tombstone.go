package codec

import "sync"

// TombstoneLiteral is the sentinel value written as a record's value to
// mark a key deleted. Its on-disk bytes are whatever the active Encoder
// produces for this literal, not a fixed byte layout — two Encoders are
// free to serialize the same string differently.
const TombstoneLiteral = "bitcask_tombstone"

// TombstoneCache memoizes an Encoder's serialization of TombstoneLiteral
// so liveness checks during recovery and merge don't re-encode it for
// every record. One cache is scoped to one Encoder instance.
type TombstoneCache struct {
	enc   Encoder
	once  sync.Once
	bytes []byte
	err   error
}

// NewTombstoneCache returns a cache wrapping enc.
func NewTombstoneCache(enc Encoder) *TombstoneCache {
	return &TombstoneCache{enc: enc}
}

// Bytes returns enc's encoding of TombstoneLiteral, computing it once.
func (c *TombstoneCache) Bytes() ([]byte, error) {
	c.once.Do(func() {
		c.bytes, c.err = c.enc.Encode(TombstoneLiteral)
	})
	return c.bytes, c.err
}
