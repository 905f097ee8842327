package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary: opening, reading, writing, seeking, renaming, or
	// removing a data file or the data directory itself.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints. This maps
	// to HTTP 400-series errors and indicates problems with the request itself
	// rather than system failures.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories. These are the equivalent of HTTP 500 errors and
	// indicate bugs, assertion failures, or other programming errors that
	// shouldn't occur during normal operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Storage-specific error codes extend the base error taxonomy to handle the
// unique failure modes that occur in persistent storage systems. These codes
// represent problems that are specific to the storage layer of this
// key-value store, particularly focused on data file management, recovery,
// and compaction.
const (
	// ErrorCodePermissionDenied indicates insufficient permissions to access a resource.
	// This is distinct from generic IO errors because it has a specific resolution path:
	// the user needs to adjust file/directory permissions or run with elevated privileges.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates that the storage device has run out of space.
	// This requires specific handling like cleanup operations or alerting administrators.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates that the filesystem is mounted read-only.
	// This requires administrative intervention to remount the filesystem with write permissions.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"

	// ErrorCodeCorruptRecord indicates that a record's stored CRC-32 did not
	// match the CRC recomputed over its bytes, or that a record was truncated
	// (the file ended mid-record, or a merge copy read fewer bytes than the
	// record's stored size). The database must be repaired
	// out of band; the engine never attempts to skip past a corrupt record.
	ErrorCodeCorruptRecord ErrorCode = "CORRUPT_RECORD"

	// ErrorCodeParseInt indicates a directory entry that looked like a
	// numeric FileID failed to parse as one. The directory scan filters
	// non-numeric names before this point, so this code should be
	// unreachable in practice; it exists defensively.
	ErrorCodeParseInt ErrorCode = "PARSE_INT_ERROR"
)

// Codec-specific error codes cover the pluggable key/value encoder boundary.
const (
	// ErrorCodeSerialize indicates the configured Encoder failed to turn an
	// application key or value into bytes.
	ErrorCodeSerialize ErrorCode = "SERIALIZE_ERROR"

	// ErrorCodeDeserialize indicates the configured Encoder failed to turn
	// stored bytes back into an application key or value.
	ErrorCodeDeserialize ErrorCode = "DESERIALIZE_ERROR"
)
