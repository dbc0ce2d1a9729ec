package deflate

import "github.com/iamNilotpal/zstream/internal/core/domain"

// prepareDefaults fills unset tuning fields on a copy, leaving the caller's
// options untouched so one options value stays safely shareable. BufferSize
// is deliberately not defaulted: the segment size is a required parameter
// and a non-positive value fails validation.
func prepareDefaults(opts *domain.DeflateOptions) *domain.DeflateOptions {
	var out domain.DeflateOptions
	if opts != nil {
		out = *opts
	}

	if out.Strategy == 0 {
		out.Strategy = domain.StrategyDefault
	}

	if out.Flush == 0 {
		out.Flush = domain.FlushNone
	}

	if out.Format == 0 {
		out.Format = domain.FormatZlib
	}

	return &out
}

// Prepare fills defaults and validates in one step, returning the options a
// session will actually run with. Callers holding a transform value use it
// to surface configuration errors at construction.
func Prepare(opts *domain.DeflateOptions) (*domain.DeflateOptions, error) {
	prepared := prepareDefaults(opts)
	if err := Validate(prepared); err != nil {
		return nil, err
	}
	return prepared, nil
}
