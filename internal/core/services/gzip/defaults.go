package gzip

import "github.com/iamNilotpal/zstream/internal/core/domain"

// prepareDefaults fills zero values with their documented defaults and
// returns a copy so the caller's options are never mutated. BufferSize is
// deliberately left untouched; a missing size is a configuration error.
func prepareDefaults(opts *domain.GzipOptions) *domain.GzipOptions {
	if opts == nil {
		opts = &domain.GzipOptions{}
	}

	prepared := *opts
	if prepared.Strategy == 0 {
		prepared.Strategy = domain.StrategyDefault
	}
	if prepared.Flush == 0 {
		prepared.Flush = domain.FlushNone
	}

	return &prepared
}

// Prepare fills defaults and validates in one step, returning the options a
// framer will actually run with.
func Prepare(opts *domain.GzipOptions) (*domain.GzipOptions, error) {
	prepared := prepareDefaults(opts)
	if err := Validate(prepared); err != nil {
		return nil, err
	}
	return prepared, nil
}

// prepareGunzipDefaults returns a copy of the parser options so later
// mutation by the caller cannot reach a live parser.
func prepareGunzipDefaults(opts *domain.GunzipOptions) *domain.GunzipOptions {
	if opts == nil {
		opts = &domain.GunzipOptions{}
	}

	prepared := *opts
	return &prepared
}

// PrepareGunzip is the parser-side counterpart of Prepare.
func PrepareGunzip(opts *domain.GunzipOptions) (*domain.GunzipOptions, error) {
	prepared := prepareGunzipDefaults(opts)
	if err := ValidateGunzip(prepared); err != nil {
		return nil, err
	}
	return prepared, nil
}
