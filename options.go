package zstream

import "github.com/iamNilotpal/zstream/internal/core/domain"

// DefaultBufferSize is a reasonable segment size for callers without a
// tuned value. Options never fall back to it implicitly: BufferSize is a
// required field and must be set explicitly.
const DefaultBufferSize = 32 * 1024

// Option and result types accepted and returned by the transform
// constructors.
type (
	DeflateOptions = domain.DeflateOptions
	InflateOptions = domain.InflateOptions
	GzipOptions    = domain.GzipOptions
	GunzipOptions  = domain.GunzipOptions
	GzipMetadata   = domain.GzipMetadata
	GunzipResult   = domain.GunzipResult

	CompressionLevel = domain.CompressionLevel
	Strategy         = domain.Strategy
	FlushMode        = domain.FlushMode
	Format           = domain.Format
)

// Compression levels.
const (
	DefaultCompression = domain.DefaultCompression
	NoCompression      = domain.NoCompression
	BestSpeed          = domain.BestSpeed
	BestCompression    = domain.BestCompression
)

// Compression strategies.
const (
	StrategyDefault     = domain.StrategyDefault
	StrategyFiltered    = domain.StrategyFiltered
	StrategyHuffmanOnly = domain.StrategyHuffmanOnly
)

// Flush modes.
const (
	FlushNone            = domain.FlushNone
	FlushSync            = domain.FlushSync
	FlushFull            = domain.FlushFull
	FlushBestSpeed       = domain.FlushBestSpeed
	FlushBestCompression = domain.FlushBestCompression
)

// Stream formats.
const (
	FormatZlib = domain.FormatZlib
	FormatRaw  = domain.FormatRaw
)
