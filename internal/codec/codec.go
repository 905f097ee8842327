// Package codec defines the pluggable serialization boundary between the
// engine and application-defined keys and values. The engine treats keys
// and values as opaque bytes; this lets one store hold heterogeneous
// value types side by side, encoded and decoded through a single
// two-method capability instead of a codec baked into the storage engine.
package codec

// Encoder turns application values into bytes for on-disk storage and
// back. Implementations must be safe for concurrent use: the engine may
// call Encode/Decode from multiple goroutines under its read lock.
type Encoder interface {
	// Encode serializes v into its on-disk byte representation.
	Encode(v any) ([]byte, error)

	// Decode deserializes data into out, which must be a non-nil pointer
	// to a value of the type originally passed to Encode.
	Decode(data []byte, out any) error
}
