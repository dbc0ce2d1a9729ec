package inflate

import "github.com/iamNilotpal/zstream/internal/core/domain"

// prepareDefaults fills unset fields on a copy, leaving the caller's options
// untouched. BufferSize is deliberately not defaulted: a non-positive value
// fails validation.
func prepareDefaults(opts *domain.InflateOptions) *domain.InflateOptions {
	var out domain.InflateOptions
	if opts != nil {
		out = *opts
	}

	if out.Format == 0 {
		out.Format = domain.FormatZlib
	}

	return &out
}

// Prepare fills defaults and validates in one step, returning the options a
// session will actually run with.
func Prepare(opts *domain.InflateOptions) (*domain.InflateOptions, error) {
	prepared := prepareDefaults(opts)
	if err := Validate(prepared); err != nil {
		return nil, err
	}
	return prepared, nil
}
