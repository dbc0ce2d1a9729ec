package domain

import (
	"io"
	"time"
)

// RFC 1952 wire layout. The fixed header is ten bytes: two magic bytes, the
// compression method, a flag byte, a 4-byte little-endian modification time,
// an extra-flags byte and an OS byte, followed by the optional flagged
// fields, the raw DEFLATE body and the 8-byte trailer.
const (
	GzipID1    byte = 0x1f // First magic byte.
	GzipID2    byte = 0x8b // Second magic byte.
	GzipMethod byte = 0x08 // Compression method: deflate, the only one defined.

	// Flag byte bits, in stream order of the fields they announce.
	GzipFlagText    byte = 1 << 0 // Content is probably text (hint only).
	GzipFlagHdrCRC  byte = 1 << 1 // CRC-16 of the header follows the flagged fields.
	GzipFlagExtra   byte = 1 << 2 // Length-prefixed extra field present.
	GzipFlagName    byte = 1 << 3 // NUL-terminated file name present.
	GzipFlagComment byte = 1 << 4 // NUL-terminated comment present.

	// Extra-flags byte values derived from the compression level.
	GzipXFLBest    byte = 2 // Maximum compression was used.
	GzipXFLFastest byte = 4 // Fastest compression was used.

	// GzipOSUnknown is written when no concrete platform value is supplied.
	GzipOSUnknown byte = 0xff

	// GzipHeaderSize is the length of the fixed prologue.
	GzipHeaderSize = 10

	// GzipTrailerSize is the length of the CRC-32 + ISIZE trailer.
	GzipTrailerSize = 8

	// GzipFieldSoftLimit caps how many bytes of a file name or comment are
	// materialized into a string. Bytes past the cap are still consumed from
	// the stream so framing stays aligned, but they are dropped.
	GzipFieldSoftLimit = 1 << 20
)

// GzipMetadata is the caller-visible member header content. Zero values mean
// the field is absent: an empty string is not written, a zero time is
// written as a zero MTIME, and both decode back to their zero values.
type GzipMetadata struct {
	// FileName is the original name of the compressed file. The format
	// restricts it to one Latin-1 byte per character; an embedded NUL is
	// replaced with '_' so it cannot terminate the field early.
	FileName string

	// Comment is a human-readable remark about the member. Same encoding
	// rules as FileName, with embedded NUL replaced by a space.
	Comment string

	// ModTime is the modification time of the original file, stored as
	// non-negative seconds since the Unix epoch. A zero time is written as 0
	// and a stored 0 decodes to a zero time; the two are indistinguishable.
	ModTime time.Time

	// OS identifies the filesystem the member was produced on. The zero
	// value is treated as unspecified and written as GzipOSUnknown (0xff).
	OS byte
}

// GzipOptions configures a gzip compression transformation: member metadata
// plus the deflate tuning for the body. The body always uses the raw
// headerless format; the member itself is the wrapper.
type GzipOptions struct {
	// BufferSize is the segment size used to rebuffer input and stage
	// output. Must be positive; there is no implicit default.
	BufferSize int

	// Metadata is written into the member header before any body byte.
	Metadata GzipMetadata

	// Level selects the body compression level and derives the header's
	// extra-flags byte.
	//
	// Default: DefaultCompression
	Level CompressionLevel

	// Strategy tunes the body's deflate primitive.
	//
	// Default: StrategyDefault
	Strategy Strategy

	// Flush controls body output availability after each fed segment.
	//
	// Default: FlushNone
	Flush FlushMode
}

// GunzipOptions configures a gzip decompression transformation.
type GunzipOptions struct {
	// BufferSize is the segment size emitted downstream per pull and the
	// read-ahead bound on the compressed source. Must be positive; there is
	// no implicit default.
	BufferSize int
}

// GunzipResult carries the decoded member header plus the lazy content
// stream. Metadata is fully materialized before the first content byte is
// produced, so it can be inspected without consuming Content. The trailer is
// only verified once Content has been drained to io.EOF; an unread Content
// means an unverified member.
type GunzipResult struct {
	GzipMetadata

	// Content yields the decompressed member body. It must be read to io.EOF
	// for trailer verification to run, and closed to release the
	// decompressor. Bytes after the member trailer are left unread: streams
	// with concatenated members decode as their first member only.
	Content io.ReadCloser
}
