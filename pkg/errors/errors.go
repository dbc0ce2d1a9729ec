package errors

import (
	"errors"
	"fmt"
)

// MalformedInputError reports bytes that do not match the expected wire
// format at the point they were parsed: bad magic bytes, an unknown
// compression method, or corrupt deflate data inside the body. The input is
// wrong, not merely incomplete.
type MalformedInputError struct {
	Format string // Wire format being parsed ("gzip", "zlib", "deflate").
	Err    error  // The underlying error describing what failed to parse.
}

// NewMalformedInputError creates a new MalformedInputError instance.
func NewMalformedInputError(format string, err error) *MalformedInputError {
	return &MalformedInputError{Format: format, Err: err}
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: malformed input: %v", e.Format, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// IsMalformedInputError checks if a given error is of type MalformedInputError.
func IsMalformedInputError(err error) bool {
	var me *MalformedInputError
	return errors.As(err, &me)
}

// TruncatedStreamError reports input that ended before the format was
// logically complete: the decompressor still expected data, a header field
// was cut mid-way, or the trailer is missing bytes.
type TruncatedStreamError struct {
	Format string // Wire format being parsed ("gzip", "zlib", "deflate").
	Err    error  // The underlying error, typically io.ErrUnexpectedEOF.
}

// NewTruncatedStreamError creates a new TruncatedStreamError instance.
func NewTruncatedStreamError(format string, err error) *TruncatedStreamError {
	return &TruncatedStreamError{Format: format, Err: err}
}

func (e *TruncatedStreamError) Error() string {
	return fmt.Sprintf("%s: truncated stream: %v", e.Format, e.Err)
}

func (e *TruncatedStreamError) Unwrap() error {
	return e.Err
}

// IsTruncatedStreamError checks if a given error is of type TruncatedStreamError.
func IsTruncatedStreamError(err error) bool {
	var te *TruncatedStreamError
	return errors.As(err, &te)
}

// CorruptionError reports an integrity failure detected after the content
// was fully parsed: a stored trailer checksum or length that disagrees with
// the values computed from the actual decompressed bytes.
type CorruptionError struct {
	Field string // Name of the integrity field that failed ("crc32", "isize", "header crc16").
	Want  uint32 // Value stored in the stream.
	Got   uint32 // Value computed from the decoded bytes.
	Err   error  // Set instead of Want/Got when the primitive verified the digest itself.
}

// NewCorruptionError creates a CorruptionError carrying the stored and
// computed values of the failed field.
func NewCorruptionError(field string, want, got uint32) *CorruptionError {
	return &CorruptionError{Field: field, Want: want, Got: got}
}

// NewCorruptionCause creates a CorruptionError around a verification failure
// reported by the primitive, where the mismatching values are not exposed.
func NewCorruptionCause(field string, err error) *CorruptionError {
	return &CorruptionError{Field: field, Err: err}
}

func (e *CorruptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt stream: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("corrupt stream: %s mismatch: stored %#08x, computed %#08x", e.Field, e.Want, e.Got)
}

func (e *CorruptionError) Unwrap() error {
	return e.Err
}

// IsCorruptionError checks if a given error is of type CorruptionError.
func IsCorruptionError(err error) bool {
	var ce *CorruptionError
	return errors.As(err, &ce)
}

// AsCorruptionError attempts to extract a CorruptionError from a given error.
func AsCorruptionError(err error) *CorruptionError {
	var ce *CorruptionError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
