// Package zstream provides chunk-boundary-independent streaming compression
// and decompression: raw DEFLATE and zlib streams plus single-member gzip
// framing, driven by synchronous pulls with bounded buffering.
//
// A transform value is a reusable description of one transformation. Every
// Transform call opens fresh per-run state, so one value can serve many
// streams, including concurrently. Output bytes never depend on how the
// input happened to be segmented, only on its content and the options.
package zstream

import (
	"io"

	"github.com/iamNilotpal/zstream/internal/core/domain"
	"github.com/iamNilotpal/zstream/internal/core/services/deflate"
	"github.com/iamNilotpal/zstream/internal/core/services/gzip"
	"github.com/iamNilotpal/zstream/internal/core/services/inflate"
	"github.com/iamNilotpal/zstream/pkg/pool"
)

// Pipe is one reusable stream transformation. Transform never consumes src
// at call time; bytes flow on demand as the returned reader is pulled.
// Closing the reader releases the run's resources, even mid-stream.
type Pipe interface {
	Transform(src io.Reader) io.ReadCloser
}

// DeflateTransform compresses streams into zlib or raw DEFLATE form.
type DeflateTransform struct {
	opts *domain.DeflateOptions
	pool *pool.BufferPool
}

// Deflate builds a compression transform. All configuration problems
// surface here as a ValidationError, never mid-stream.
func Deflate(opts DeflateOptions) (*DeflateTransform, error) {
	prepared, err := deflate.Prepare(&opts)
	if err != nil {
		return nil, err
	}

	return &DeflateTransform{
		opts: prepared,
		pool: pool.NewBufferPool(prepared.BufferSize),
	}, nil
}

// Transform compresses src. The stream terminates with the format's final
// block and trailer once src reports io.EOF.
func (t *DeflateTransform) Transform(src io.Reader) io.ReadCloser {
	reader, err := deflate.NewReader(src, deflate.Config{Options: t.opts, Pool: t.pool})
	if err != nil {
		return &errReader{err: err}
	}
	return reader
}

// InflateTransform decompresses zlib or raw DEFLATE streams.
type InflateTransform struct {
	opts *domain.InflateOptions
}

// Inflate builds a decompression transform. All configuration problems
// surface here as a ValidationError, never mid-stream.
func Inflate(opts InflateOptions) (*InflateTransform, error) {
	prepared, err := inflate.Prepare(&opts)
	if err != nil {
		return nil, err
	}
	return &InflateTransform{opts: prepared}, nil
}

// Transform decompresses src. The returned reader reports io.EOF at the
// logical end of the compressed stream, which may arrive before src is
// exhausted; trailing bytes stay unread.
func (t *InflateTransform) Transform(src io.Reader) io.ReadCloser {
	session, err := inflate.Open(src, inflate.Config{Options: t.opts})
	if err != nil {
		return &errReader{err: err}
	}
	return session
}

// GzipTransform wraps streams into single-member gzip files.
type GzipTransform struct {
	opts *domain.GzipOptions
	pool *pool.BufferPool
}

// Gzip builds a gzip framing transform carrying the given metadata. All
// configuration problems surface here as a ValidationError, never
// mid-stream.
func Gzip(opts GzipOptions) (*GzipTransform, error) {
	prepared, err := gzip.Prepare(&opts)
	if err != nil {
		return nil, err
	}

	return &GzipTransform{
		opts: prepared,
		pool: pool.NewBufferPool(prepared.BufferSize),
	}, nil
}

// Transform frames src as one complete gzip member: header, compressed
// body, CRC-32 and length trailer.
func (t *GzipTransform) Transform(src io.Reader) io.ReadCloser {
	framer, err := gzip.NewFramer(src, gzip.Config{Options: t.opts, Pool: t.pool})
	if err != nil {
		return &errReader{err: err}
	}
	return framer
}

// GunzipTransform decodes the first member of gzip streams.
type GunzipTransform struct {
	opts *domain.GunzipOptions
}

// Gunzip builds a gzip decoding transform. All configuration problems
// surface here as a ValidationError, never mid-stream.
func Gunzip(opts GunzipOptions) (*GunzipTransform, error) {
	prepared, err := gzip.PrepareGunzip(&opts)
	if err != nil {
		return nil, err
	}
	return &GunzipTransform{opts: prepared}, nil
}

// Transform decodes the first member of src, discarding its metadata. Use
// Open when the header fields matter.
func (t *GunzipTransform) Transform(src io.Reader) io.ReadCloser {
	parser, err := gzip.NewParser(src, gzip.ParserConfig{Options: t.opts})
	if err != nil {
		return &errReader{err: err}
	}
	return parser
}

// Open decodes the member header of src eagerly and returns its metadata
// together with the lazy content stream. Content must be drained to io.EOF
// for trailer verification to run, and closed to release the decompressor.
func (t *GunzipTransform) Open(src io.Reader) (*GunzipResult, error) {
	parser, err := gzip.NewParser(src, gzip.ParserConfig{Options: t.opts})
	if err != nil {
		return nil, err
	}

	result, err := parser.Parse()
	if err != nil {
		parser.Close()
		return nil, err
	}
	return result, nil
}

// errReader surfaces a per-run construction failure on the first read,
// keeping Transform total for the Pipe interface.
type errReader struct{ err error }

func (e *errReader) Read([]byte) (int, error) { return 0, e.err }

func (e *errReader) Close() error { return nil }
