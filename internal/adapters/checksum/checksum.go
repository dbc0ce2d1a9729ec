// Package checksum provides running checksum implementations behind the
// checksum port. The gzip trailer fixes the algorithm to CRC-32 with the
// IEEE polynomial; the zlib wrapper's Adler-32 is computed inside the
// compression primitive and needs no adapter here.
package checksum

const (
	// CRC32IEEE uses the IEEE polynomial for CRC32 checksums, the polynomial
	// RFC 1952 specifies for the member trailer.
	CRC32IEEE = "crc32-ieee"
)
