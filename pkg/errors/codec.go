package errors

// CodecError reports a failure at the pluggable key/value encoder
// boundary — either Encode or Decode rejecting a value.
type CodecError struct {
	*baseError
	goType string
}

// NewCodecError creates a new codec-specific error.
func NewCodecError(err error, code ErrorCode, msg string) *CodecError {
	return &CodecError{baseError: NewBaseError(err, code, msg)}
}

// WithGoType records the Go type name involved in the failed encode/decode.
func (ce *CodecError) WithGoType(name string) *CodecError {
	ce.goType = name
	return ce
}

// GoType returns the Go type name involved in the failed encode/decode.
func (ce *CodecError) GoType() string {
	return ce.goType
}
