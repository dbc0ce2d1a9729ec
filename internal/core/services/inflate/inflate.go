// Package inflate implements the decompression engine: a pull session that
// drains the raw decompressor, detects the logical end of the compressed
// stream and reports truncation when upstream ends first.
package inflate

import (
	"bufio"
	"io"
	"sync/atomic"

	"github.com/iamNilotpal/zstream/internal/adapters/compression"
	"github.com/iamNilotpal/zstream/internal/core/domain"
	"github.com/iamNilotpal/zstream/internal/core/ports"
	"github.com/iamNilotpal/zstream/internal/core/services"
)

// Config holds the construction parameters for an inflate session.
type Config struct {
	// Options tunes the session. Required; BufferSize must be positive.
	Options *domain.InflateOptions
}

// Session owns exactly one raw decompressor handle for a single run. Read
// pulls compressed bytes from the source as needed and yields decompressed
// segments no larger than the configured buffer size. io.EOF reports the
// logical end of the compressed stream, which may arrive before the source
// is exhausted: trailing source bytes stay unread in the cursor. A source
// that ends first surfaces as a TruncatedStreamError, corrupt data as a
// MalformedInputError.
//
// Sessions are single-use and not safe for concurrent use.
type Session struct {
	src      io.Reader // Byte-precise cursor over the compressed input.
	opts     *domain.InflateOptions
	inflater ports.Inflater // Constructed on the first read.
	done     bool
	err      error // Terminal state.
	closed   atomic.Bool
}

// Open validates the configuration and binds a session to src. When src
// does not implement io.ByteReader it is wrapped in a buffered cursor
// bounded by the configured buffer size; byte-precise sources are used
// as-is so callers can read whatever follows the compressed stream.
//
// The decompressor itself is built on the first Read, so constructing the
// session never consumes upstream bytes.
func Open(src io.Reader, cfg Config) (*Session, error) {
	opts, err := Prepare(cfg.Options)
	if err != nil {
		return nil, err
	}

	cursor := src
	if _, ok := src.(io.ByteReader); !ok {
		cursor = bufio.NewReaderSize(src, opts.BufferSize)
	}

	return &Session{src: cursor, opts: opts}, nil
}

// Read yields decompressed bytes, at most BufferSize per call.
func (s *Session) Read(p []byte) (int, error) {
	if s.closed.Load() {
		return 0, services.ErrSessionClosed
	}
	if s.err != nil {
		return 0, s.err
	}
	if s.done {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	if s.inflater == nil {
		inflater, err := compression.NewInflater(s.src, s.opts.Format)
		if err != nil {
			s.err = err
			return 0, err
		}
		s.inflater = inflater
	}

	if len(p) > s.opts.BufferSize {
		p = p[:s.opts.BufferSize]
	}

	n, err := s.inflater.Read(p)
	switch {
	case err == nil:
		return n, nil
	case err == io.EOF:
		s.done = true
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	default:
		s.err = err
		return n, err
	}
}

// Close releases the decompressor handle. Idempotent; safe before the
// stream completes.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	if s.inflater == nil {
		return nil
	}
	return s.inflater.Close()
}
