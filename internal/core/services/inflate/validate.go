package inflate

import (
	"fmt"

	"github.com/iamNilotpal/zstream/internal/core/domain"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
)

// Validate checks the option set for an inflate session.
func Validate(opts *domain.InflateOptions) error {
	if opts.BufferSize <= 0 {
		return zerrors.NewValidationError("bufferSize", opts.BufferSize, fmt.Errorf(
			"buffer size must be positive, got %d", opts.BufferSize,
		))
	}

	if !opts.Format.IsValid() {
		return zerrors.NewValidationError("format", opts.Format, fmt.Errorf(
			"unknown stream format %d", opts.Format,
		))
	}

	return nil
}
