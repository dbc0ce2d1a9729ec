package compression

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/iamNilotpal/zstream/internal/core/domain"
)

// deflateWriter is the surface shared by the raw and zlib encoders.
type deflateWriter interface {
	io.WriteCloser
	Flush() error
	Reset(w io.Writer)
}

// Deflater implements the Deflater port over the klauspost encoders.
// Compressed output accumulates in the sink supplied at construction; Close
// terminates the stream and, for the zlib format, emits the Adler-32 trailer.
type Deflater struct {
	format domain.Format // Wrapper the encoder produces.
	writer deflateWriter // Concrete raw or zlib encoder.
}

// NewDeflater creates an encoder bound to sink. The options are validated
// first, so construction fails eagerly on levels or strategies the primitive
// cannot represent.
func NewDeflater(sink io.Writer, opts *domain.DeflateOptions) (*Deflater, error) {
	if err := Validate(opts); err != nil {
		return nil, err
	}

	level := primitiveLevel(opts.Level, opts.Strategy)

	var writer deflateWriter
	switch opts.Format {
	case domain.FormatZlib:
		zw, err := zlib.NewWriterLevel(sink, level)
		if err != nil {
			return nil, fmt.Errorf("failed to create zlib encoder: %w", err)
		}
		writer = zw
	default:
		fw, err := flate.NewWriter(sink, level)
		if err != nil {
			return nil, fmt.Errorf("failed to create deflate encoder: %w", err)
		}
		writer = fw
	}

	return &Deflater{format: opts.Format, writer: writer}, nil
}

// Write feeds uncompressed bytes to the encoder.
func (d *Deflater) Write(p []byte) (int, error) {
	return d.writer.Write(p)
}

// Flush forces all pending output into the sink, byte aligned.
func (d *Deflater) Flush() error {
	return d.writer.Flush()
}

// Close terminates the stream, emitting the final block and any trailer.
func (d *Deflater) Close() error {
	return d.writer.Close()
}

// Reset discards encoder state and binds it to a new sink.
func (d *Deflater) Reset(sink io.Writer) {
	d.writer.Reset(sink)
}

// Format returns the wrapper this encoder produces.
func (d *Deflater) Format() domain.Format {
	return d.format
}
