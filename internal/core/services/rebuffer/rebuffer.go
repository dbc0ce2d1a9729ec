// Package rebuffer normalizes an arbitrarily chunked byte stream into
// fixed-size segments, decoupling whatever read sizes the caller happens to
// produce from the segment size the codec stages work in.
package rebuffer

import (
	"errors"
	"io"
)

// Rebuffer accumulates reads of arbitrary, non-uniform length (including
// empty and single-byte reads) and yields segments of exactly the configured
// size, except possibly the last, which may be shorter. Bytes are never
// reordered, and no more input is awaited than needed to fill one segment:
// when upstream is exhausted the partial segment in hand is flushed as the
// final one.
type Rebuffer struct {
	src  io.Reader
	buf  []byte
	size int
	err  error // Terminal state, reported on every call after it is set.
}

// New creates a rebuffering stage over src with the given segment size.
// Size must be positive; callers validate before construction.
func New(src io.Reader, size int) *Rebuffer {
	return &Rebuffer{
		src:  src,
		size: size,
		buf:  make([]byte, size),
	}
}

// Next returns the next segment. The returned slice is reused by the
// following call, so it must be consumed first. After the final segment it
// returns io.EOF; empty input yields io.EOF with no segments at all.
func (r *Rebuffer) Next() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}

	n, err := io.ReadFull(r.src, r.buf)
	switch {
	case err == nil:
		return r.buf, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		// Upstream ran out mid-segment: flush the partial and end on the
		// next call.
		r.err = io.EOF
		return r.buf[:n], nil
	case errors.Is(err, io.EOF):
		r.err = io.EOF
		return nil, io.EOF
	default:
		r.err = err
		return nil, err
	}
}

// Size returns the configured segment size.
func (r *Rebuffer) Size() int {
	return r.size
}
