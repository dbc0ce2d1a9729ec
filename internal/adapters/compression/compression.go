// Package compression adapts the klauspost DEFLATE primitives to the engine
// ports. It owns the mapping from domain options onto primitive levels and
// from primitive errors onto the codec error taxonomy, so the framing logic
// above never touches a concrete encoder type.
package compression

import (
	"fmt"

	"github.com/klauspost/compress/flate"

	"github.com/iamNilotpal/zstream/internal/core/domain"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
)

// Checks that the requested level, strategy, flush mode and format are
// representable by the primitive. Returns a ValidationError describing the
// first option outside acceptable bounds.
func Validate(input *domain.DeflateOptions) error {
	if !input.Level.IsValid() {
		return zerrors.NewValidationError("level", input.Level, fmt.Errorf(
			"compression level must be default (%d), none (%d) or between %d and %d, got %d",
			domain.DefaultCompression, domain.NoCompression, domain.BestSpeed, domain.BestCompression, input.Level,
		))
	}

	if !input.Strategy.IsValid() {
		return zerrors.NewValidationError("strategy", input.Strategy, fmt.Errorf(
			"unknown compression strategy %d", input.Strategy,
		))
	}

	if input.Strategy == domain.StrategyFiltered {
		return zerrors.NewValidationError("strategy", input.Strategy, fmt.Errorf(
			"filtered strategy is not representable by the deflate primitive",
		))
	}

	if input.Strategy == domain.StrategyHuffmanOnly && input.Level != domain.DefaultCompression {
		return zerrors.NewValidationError("strategy", input.Strategy, fmt.Errorf(
			"huffman-only strategy requires the default compression level, got level %s", input.Level,
		))
	}

	if !input.Flush.IsValid() {
		return zerrors.NewValidationError("flush", input.Flush, fmt.Errorf(
			"unknown flush mode %d", input.Flush,
		))
	}

	if !input.Format.IsValid() {
		return zerrors.NewValidationError("format", input.Format, fmt.Errorf(
			"unknown stream format %d", input.Format,
		))
	}

	return nil
}

// primitiveLevel folds the level and strategy into the single level value
// the primitive understands. Huffman-only is exposed by the primitive as a
// dedicated level below the regular range; Validate has already ruled out
// combinations that cannot be expressed this way.
func primitiveLevel(level domain.CompressionLevel, strategy domain.Strategy) int {
	if strategy == domain.StrategyHuffmanOnly {
		return flate.HuffmanOnly
	}

	switch level {
	case domain.DefaultCompression:
		return flate.DefaultCompression
	case domain.NoCompression:
		return flate.NoCompression
	default:
		// Levels 1..9 share the primitive's scale.
		return int(level)
	}
}
