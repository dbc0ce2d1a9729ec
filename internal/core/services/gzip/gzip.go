// Package gzip implements the member framer: an RFC 1952 header built from
// caller metadata, a raw deflate body, and a trailer carrying the CRC-32 and
// modulo-2^32 length of the bytes that were actually framed.
package gzip

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/iamNilotpal/zstream/internal/adapters/checksum"
	"github.com/iamNilotpal/zstream/internal/core/domain"
	"github.com/iamNilotpal/zstream/internal/core/ports"
	"github.com/iamNilotpal/zstream/internal/core/services"
	"github.com/iamNilotpal/zstream/internal/core/services/deflate"
	"github.com/iamNilotpal/zstream/internal/core/services/rebuffer"
	"github.com/iamNilotpal/zstream/pkg/pool"
)

// Config carries everything a framer needs.
type Config struct {
	// Options control framing and compression behavior. Required.
	Options *domain.GzipOptions
	// Pool supplies staging buffers for the body session. Optional.
	Pool *pool.BufferPool
}

type frameState uint8

const (
	frameHeader frameState = iota + 1
	frameBody
	frameTrailer
	frameDone
)

// Framer is the pull stage producing one complete gzip member from src. The
// header is emitted exactly once before any body byte, the body is the raw
// headerless compressed form of the input, and the trailer follows once the
// source is exhausted. Input is consumed in BufferSize segments, each folded
// into the running digest and length before compression.
type Framer struct {
	rb      *rebuffer.Rebuffer
	session *deflate.Session
	crc     ports.Checksum
	size    uint32
	header  []byte
	trailer [domain.GzipTrailerSize]byte
	state   frameState
	pending []byte
	err     error
	closed  atomic.Bool
}

// NewFramer validates the options eagerly and prepares the member header.
// Nothing is read from src until the first Read call.
func NewFramer(src io.Reader, cfg Config) (*Framer, error) {
	opts, err := Prepare(cfg.Options)
	if err != nil {
		return nil, err
	}

	session, err := deflate.Open(deflate.Config{
		Options: &domain.DeflateOptions{
			BufferSize: opts.BufferSize,
			Level:      opts.Level,
			Strategy:   opts.Strategy,
			Flush:      opts.Flush,
			Format:     domain.FormatRaw,
		},
		Pool: cfg.Pool,
	})
	if err != nil {
		return nil, err
	}

	return &Framer{
		rb:      rebuffer.New(src, opts.BufferSize),
		session: session,
		crc:     checksum.NewCRC32IEEE(),
		header:  buildHeader(opts),
		state:   frameHeader,
	}, nil
}

// Read yields the next piece of the member: header bytes first, then
// compressed body output as the source drains, then the trailer, then io.EOF.
func (f *Framer) Read(p []byte) (int, error) {
	if f.closed.Load() {
		return 0, services.ErrSessionClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	for {
		if len(f.pending) > 0 {
			n := copy(p, f.pending)
			f.pending = f.pending[n:]
			return n, nil
		}
		if f.err != nil {
			return 0, f.err
		}

		switch f.state {
		case frameHeader:
			f.pending = f.header
			f.header = nil
			f.state = frameBody

		case frameBody:
			segment, err := f.rb.Next()
			switch {
			case err == nil:
				f.crc.Write(segment)
				f.size += uint32(len(segment))
				out, ferr := f.session.Feed(segment)
				if ferr != nil {
					f.err = ferr
					return 0, f.err
				}
				f.pending = out
			case err == io.EOF:
				out, ferr := f.session.Finish()
				if ferr != nil {
					f.err = ferr
					return 0, f.err
				}
				f.pending = out
				f.state = frameTrailer
			default:
				f.err = fmt.Errorf("gzip source: %w", err)
				return 0, f.err
			}

		case frameTrailer:
			binary.LittleEndian.PutUint32(f.trailer[0:4], f.crc.Sum32())
			binary.LittleEndian.PutUint32(f.trailer[4:8], f.size)
			f.pending = f.trailer[:]
			f.state = frameDone

		case frameDone:
			f.err = io.EOF
		}
	}
}

// Close releases the body session. Idempotent; safe before the member
// completes.
func (f *Framer) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.session.Close()
}
