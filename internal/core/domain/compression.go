package domain

import "strconv"

// CompressionLevel selects the trade-off between compression ratio and speed
// for the deflate primitive. Levels 1 through 9 follow the DEFLATE
// convention (1 fastest, 9 hardest); the zero value asks the primitive for
// its balanced default so an unset field never silently disables
// compression.
type CompressionLevel int

const (
	// DefaultCompression lets the primitive pick a balanced level (≈ level 6).
	DefaultCompression CompressionLevel = 0

	// NoCompression emits stored blocks only. Useful when the payload is
	// already compressed and only framing is wanted.
	NoCompression CompressionLevel = -1

	// BestSpeed favors throughput over ratio.
	BestSpeed CompressionLevel = 1

	// BestCompression favors ratio regardless of CPU cost.
	BestCompression CompressionLevel = 9
)

// IsValid reports whether the level is representable by the primitive.
// Intermediate levels 2..8 are valid alongside the named constants.
func (l CompressionLevel) IsValid() bool {
	return l == DefaultCompression || l == NoCompression ||
		(l >= BestSpeed && l <= BestCompression)
}

// String returns the string representation of the compression level.
func (l CompressionLevel) String() string {
	switch l {
	case DefaultCompression:
		return "default"
	case NoCompression:
		return "none"
	case BestSpeed:
		return "fastest"
	case BestCompression:
		return "best"
	default:
		return "level-" + strconv.Itoa(int(l))
	}
}

// Strategy tunes how the deflate primitive models input data.
type Strategy uint8

const (
	// StrategyDefault applies the primitive's standard LZ77 + Huffman coding.
	StrategyDefault Strategy = iota + 1

	// StrategyFiltered biases toward Huffman coding for inputs with small,
	// noisy values. Not representable by the current primitive; rejected at
	// construction.
	StrategyFiltered

	// StrategyHuffmanOnly disables LZ77 matching entirely and applies Huffman
	// coding alone. Only representable together with DefaultCompression.
	StrategyHuffmanOnly
)

// String returns the string representation of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyDefault:
		return "default"
	case StrategyFiltered:
		return "filtered"
	case StrategyHuffmanOnly:
		return "huffman-only"
	default:
		return "unknown"
	}
}

// IsValid reports whether the strategy is a known value.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyDefault, StrategyFiltered, StrategyHuffmanOnly:
		return true
	default:
		return false
	}
}

// FlushMode governs what a deflate session does after each fed segment:
// hold output for a better ratio, or force everything buffered so far onto
// the wire, byte aligned.
type FlushMode uint8

const (
	// FlushNone lets the primitive buffer output across segments for the best
	// ratio. Bytes may only appear downstream on later feeds or at finish.
	FlushNone FlushMode = iota + 1

	// FlushSync forces all pending output after every fed segment and aligns
	// the stream to a byte boundary, so everything fed so far is decodable by
	// the receiver.
	FlushSync

	// FlushFull behaves like FlushSync with the primitive additionally
	// discarding its dictionary. The current primitive exposes a single flush
	// operation, so full flush degrades to sync flush: same framing
	// guarantee, no dictionary reset.
	FlushFull
)

// Flush aliases, named for the intent rather than the mechanism.
const (
	// FlushBestSpeed flushes after every segment, minimizing latency.
	FlushBestSpeed = FlushSync

	// FlushBestCompression never forces a flush, maximizing ratio.
	FlushBestCompression = FlushNone
)

// String returns the string representation of the flush mode.
func (f FlushMode) String() string {
	switch f {
	case FlushNone:
		return "none"
	case FlushSync:
		return "sync"
	case FlushFull:
		return "full"
	default:
		return "unknown"
	}
}

// IsValid reports whether the flush mode is a known value.
func (f FlushMode) IsValid() bool {
	switch f {
	case FlushNone, FlushSync, FlushFull:
		return true
	default:
		return false
	}
}

// Format selects the wrapper around the raw DEFLATE body.
type Format uint8

const (
	// FormatZlib wraps the body per RFC 1950: a 2-byte header and a 4-byte
	// big-endian Adler-32 trailer.
	FormatZlib Format = iota + 1

	// FormatRaw emits the headerless RFC 1951 body alone, the form embedded
	// inside gzip members.
	FormatRaw
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatZlib:
		return "zlib"
	case FormatRaw:
		return "deflate"
	default:
		return "unknown"
	}
}

// IsValid reports whether the format is a known value.
func (f Format) IsValid() bool {
	switch f {
	case FormatZlib, FormatRaw:
		return true
	default:
		return false
	}
}

// DeflateOptions configures a compression transformation. The value is
// immutable once validated; every application of the transformation derives
// fresh session state from it.
type DeflateOptions struct {
	// BufferSize is the segment size, in bytes, that input is rebuffered to
	// before reaching the primitive, and the granularity of output staging.
	// Must be positive; there is no implicit default.
	BufferSize int

	// Level selects the compression level.
	//
	// Default: DefaultCompression
	Level CompressionLevel

	// Strategy tunes the primitive's data model. StrategyHuffmanOnly requires
	// Level == DefaultCompression; StrategyFiltered is not representable.
	//
	// Default: StrategyDefault
	Strategy Strategy

	// Flush controls output availability after each fed segment.
	//
	// Default: FlushNone
	Flush FlushMode

	// Format selects the zlib wrapper or the raw headerless body.
	//
	// Default: FormatZlib
	Format Format
}

// InflateOptions configures a decompression transformation.
type InflateOptions struct {
	// BufferSize is the segment size, in bytes, emitted downstream per pull,
	// and the read-ahead bound on the compressed source. Must be positive;
	// there is no implicit default.
	BufferSize int

	// Format declares the wrapper the compressed input carries.
	//
	// Default: FormatZlib
	Format Format
}
