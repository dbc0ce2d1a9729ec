package compression

import (
	"errors"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"

	"github.com/iamNilotpal/zstream/internal/core/domain"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
)

// Inflater implements the Inflater port over the klauspost decoders. Read
// returns io.EOF exactly at the logical end of the compressed stream; errors
// from the primitive are mapped onto the codec taxonomy.
type Inflater struct {
	format domain.Format // Wrapper the decoder expects.
	reader io.ReadCloser // Concrete raw or zlib decoder.
}

// NewInflater creates a decoder reading from src. When src implements
// io.ByteReader the decoder consumes exactly the compressed stream, leaving
// trailing bytes readable from src after io.EOF; otherwise the primitive
// buffers ahead and trailing bytes may be swallowed.
//
// The zlib format reads its 2-byte header here, so construction can already
// report malformed or truncated input.
func NewInflater(src io.Reader, format domain.Format) (*Inflater, error) {
	switch format {
	case domain.FormatZlib:
		reader, err := zlib.NewReader(src)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, zerrors.NewTruncatedStreamError(format.String(), noEOF(err))
			}
			return nil, mapPrimitiveError(format, err)
		}
		return &Inflater{format: format, reader: reader}, nil
	default:
		return &Inflater{format: format, reader: flate.NewReader(src)}, nil
	}
}

// Read yields decompressed bytes. io.EOF signals logical completion of the
// compressed stream; every other primitive error surfaces as a taxonomy error.
func (i *Inflater) Read(p []byte) (int, error) {
	n, err := i.reader.Read(p)
	if err != nil && err != io.EOF {
		err = mapPrimitiveError(i.format, err)
	}
	return n, err
}

// Close releases the decoder. Safe to call before the stream completes.
func (i *Inflater) Close() error {
	return i.reader.Close()
}

// Format returns the wrapper this decoder expects.
func (i *Inflater) Format() domain.Format {
	return i.format
}

// mapPrimitiveError translates decoder failures into the codec taxonomy:
// corrupt compressed data and bad wrapper headers are malformed input, a
// source that ran dry mid-stream is truncation, and a failed Adler-32 check
// is corruption discovered after a full parse.
func mapPrimitiveError(format domain.Format, err error) error {
	var corrupt flate.CorruptInputError
	switch {
	case errors.As(err, &corrupt):
		return zerrors.NewMalformedInputError(format.String(), err)
	case errors.Is(err, zlib.ErrHeader), errors.Is(err, zlib.ErrDictionary):
		return zerrors.NewMalformedInputError(format.String(), err)
	case errors.Is(err, zlib.ErrChecksum):
		return zerrors.NewCorruptionCause("adler32", err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return zerrors.NewTruncatedStreamError(format.String(), err)
	default:
		return err
	}
}

// noEOF converts io.EOF to io.ErrUnexpectedEOF: inside a framed stream a
// bare EOF means the frame was cut short.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
