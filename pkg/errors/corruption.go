package errors

// CorruptionError reports a record whose stored CRC-32 did not match the
// CRC recomputed over its header and body, or a record that is truncated
// on disk. It carries enough location
// information to point an operator at the exact byte range to inspect.
type CorruptionError struct {
	*baseError
	fileID       uint32
	recordOffset int64
	storedCRC    uint32
	computedCRC  uint32
}

// NewCorruptionError creates a new corruption-specific error.
func NewCorruptionError(msg string) *CorruptionError {
	return &CorruptionError{baseError: NewBaseError(nil, ErrorCodeCorruptRecord, msg)}
}

// WithFileID records which data file the corrupt record was read from.
func (ce *CorruptionError) WithFileID(id uint32) *CorruptionError {
	ce.fileID = id
	return ce
}

// WithRecordOffset records the byte offset of the corrupt record within its file.
func (ce *CorruptionError) WithRecordOffset(offset int64) *CorruptionError {
	ce.recordOffset = offset
	return ce
}

// WithCRCs records the stored and recomputed CRC-32 values for comparison.
func (ce *CorruptionError) WithCRCs(stored, computed uint32) *CorruptionError {
	ce.storedCRC = stored
	ce.computedCRC = computed
	return ce
}

// FileID returns the data file the corrupt record was read from.
func (ce *CorruptionError) FileID() uint32 {
	return ce.fileID
}

// RecordOffset returns the byte offset of the corrupt record within its file.
func (ce *CorruptionError) RecordOffset() int64 {
	return ce.recordOffset
}

// StoredCRC returns the CRC-32 value read from the record's header.
func (ce *CorruptionError) StoredCRC() uint32 {
	return ce.storedCRC
}

// ComputedCRC returns the CRC-32 recomputed over the record's bytes.
func (ce *CorruptionError) ComputedCRC() uint32 {
	return ce.computedCRC
}
