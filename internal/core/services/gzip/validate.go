package gzip

import (
	"fmt"

	"github.com/iamNilotpal/zstream/internal/core/domain"
	"github.com/iamNilotpal/zstream/internal/core/services/deflate"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
)

// Validate checks the framer options. The body reuses the raw deflate rules,
// so buffer size, level, strategy and flush are validated through them.
func Validate(opts *domain.GzipOptions) error {
	if err := deflate.Validate(&domain.DeflateOptions{
		BufferSize: opts.BufferSize,
		Level:      opts.Level,
		Strategy:   opts.Strategy,
		Flush:      opts.Flush,
		Format:     domain.FormatRaw,
	}); err != nil {
		return err
	}

	if mod := opts.Metadata.ModTime; !mod.IsZero() && mod.Unix() < 0 {
		return zerrors.NewValidationError(
			"modTime",
			mod,
			fmt.Errorf("modification time must not precede the unix epoch"),
		)
	}

	return nil
}

// ValidateGunzip checks the parser options.
func ValidateGunzip(opts *domain.GunzipOptions) error {
	if opts.BufferSize <= 0 {
		return zerrors.NewValidationError("bufferSize", opts.BufferSize, fmt.Errorf(
			"buffer size must be positive, got %d", opts.BufferSize,
		))
	}

	return nil
}
