package deflate

import (
	"fmt"

	"github.com/iamNilotpal/zstream/internal/adapters/compression"
	"github.com/iamNilotpal/zstream/internal/core/domain"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
)

// Validate checks the full option set for a deflate session: the pipeline's
// own buffer sizing plus the primitive representability rules owned by the
// compression adapter.
func Validate(opts *domain.DeflateOptions) error {
	if err := validateBufferSize(opts.BufferSize); err != nil {
		return err
	}
	return compression.Validate(opts)
}

func validateBufferSize(size int) error {
	if size <= 0 {
		return zerrors.NewValidationError("bufferSize", size, fmt.Errorf(
			"buffer size must be positive, got %d", size,
		))
	}
	return nil
}
