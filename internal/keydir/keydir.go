// Package keydir is the in-memory index at the heart of the store: a
// map from key to the on-disk location of its most recent live value.
// It carries no lock of its own — callers (internal/engine, and above
// it pkg/ignite's Handle) are responsible for serializing access, the
// same contract the original Rust Keydir<K> assumes of its caller.
package keydir

import "github.com/iamNilotpal/ignite/internal/record"

// Keydir maps keys to the location of their latest value.
type Keydir struct {
	entries map[string]EntryPointer
}

// New wraps an existing key/entry map, typically the result of
// LoadLatestEntries during recovery. A nil map is treated as empty.
func New(entries map[string]EntryPointer) *Keydir {
	if entries == nil {
		entries = make(map[string]EntryPointer)
	}
	return &Keydir{entries: entries}
}

// Insert records ptr as the current location for key, returning the
// entry it replaced, if any.
func (k *Keydir) Insert(key string, ptr EntryPointer) (EntryPointer, bool) {
	old, ok := k.entries[key]
	k.entries[key] = ptr
	return old, ok
}

// Get returns key's current entry, if it has one.
func (k *Keydir) Get(key string) (EntryPointer, bool) {
	ptr, ok := k.entries[key]
	return ptr, ok
}

// Remove deletes key's entry, returning it if present.
func (k *Keydir) Remove(key string) (EntryPointer, bool) {
	old, ok := k.entries[key]
	delete(k.entries, key)
	return old, ok
}

// ContainsKey reports whether key has a live entry.
func (k *Keydir) ContainsKey(key string) bool {
	_, ok := k.entries[key]
	return ok
}

// Keys returns every key currently indexed. The order is unspecified.
func (k *Keydir) Keys() []string {
	keys := make([]string, 0, len(k.entries))
	for key := range k.entries {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of live keys.
func (k *Keydir) Len() int {
	return len(k.entries)
}

// LatestTxID returns the highest TxID among all entries. The second
// return value is false if the Keydir is empty, in which case the
// caller should start a fresh store's counter from record.Zero.
func (k *Keydir) LatestTxID() (latest record.TxID, ok bool) {
	var max record.TxID
	first := true
	for _, ptr := range k.entries {
		if first || ptr.TxID.Cmp(max) > 0 {
			max = ptr.TxID
			first = false
		}
	}
	return max, !first
}
