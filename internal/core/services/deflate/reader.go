package deflate

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/iamNilotpal/zstream/internal/core/services"
	"github.com/iamNilotpal/zstream/internal/core/services/rebuffer"
)

// Reader is the pull stage around a session: it rebuffers upstream bytes
// into exact segments, feeds them through the compressor and serves the
// compressed output downstream. Upstream is only pulled when the consumer
// needs more output, so backpressure is structural.
type Reader struct {
	rb      *rebuffer.Rebuffer
	session *Session
	pending []byte // Compressed bytes staged for the consumer.
	err     error  // Terminal state, io.EOF once the trailer has been staged.
	closed  atomic.Bool
}

// NewReader opens a session over src. Configuration problems surface here,
// before any byte moves.
func NewReader(src io.Reader, cfg Config) (*Reader, error) {
	session, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	return &Reader{
		session: session,
		rb:      rebuffer.New(src, cfg.Options.BufferSize),
	}, nil
}

// Read serves compressed bytes, pulling and feeding upstream segments as
// needed. When upstream is exhausted the session is finished and its
// trailing bytes served, then io.EOF.
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, services.ErrSessionClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	for {
		if len(r.pending) > 0 {
			n := copy(p, r.pending)
			r.pending = r.pending[n:]
			return n, nil
		}

		if r.err != nil {
			return 0, r.err
		}

		segment, err := r.rb.Next()
		switch {
		case err == nil:
			out, ferr := r.session.Feed(segment)
			if ferr != nil {
				r.err = ferr
				return 0, r.err
			}
			r.pending = out
		case err == io.EOF:
			out, ferr := r.session.Finish()
			if ferr != nil {
				r.err = ferr
				return 0, r.err
			}
			r.err = io.EOF
			r.pending = out
		default:
			r.err = fmt.Errorf("deflate source: %w", err)
			return 0, r.err
		}
	}
}

// Close releases the session. Idempotent; the stage is unusable afterwards.
func (r *Reader) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r.session.Close()
}
