// Package deflate implements the compression engine: a session that
// sequences feed, flush and finish operations on the raw primitive, and a
// pull stage that drives a session over rebuffered input.
package deflate

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/iamNilotpal/zstream/internal/adapters/compression"
	"github.com/iamNilotpal/zstream/internal/core/domain"
	"github.com/iamNilotpal/zstream/internal/core/ports"
	"github.com/iamNilotpal/zstream/internal/core/services"
	"github.com/iamNilotpal/zstream/pkg/pool"
)

// Config holds the construction parameters for a deflate session.
type Config struct {
	// Options tunes the session. Required; BufferSize must be positive.
	Options *domain.DeflateOptions

	// Pool supplies the staging buffer and receives it back on Close. When
	// nil the session allocates privately. Sharing a pool across runs of the
	// same transformation reuses buffers without sharing any stream state.
	Pool *pool.BufferPool
}

// Session owns exactly one raw compressor handle for the lifetime of a
// single run. It performs the following operations:
//   - Feed: pushes one input segment through the primitive, forcing a flush
//     when the configured mode asks for one
//   - Finish: terminates the stream, draining held output plus the format
//     trailer
//   - Close: releases the handle and staging buffer on every exit path
//
// Sessions are single-use and not safe for concurrent use. Reapplying the
// same options opens a fresh session with no shared state.
type Session struct {
	deflater ports.Deflater   // Raw compressor bound to the staging buffer.
	staging  *bytes.Buffer    // Compressed output staged between calls.
	pool     *pool.BufferPool // Owner of the staging buffer.
	flush    domain.FlushMode
	finished bool
	closed   atomic.Bool
}

// Open validates the configuration and acquires a compressor handle. All
// configuration problems surface here as a ValidationError, never
// mid-stream.
func Open(cfg Config) (*Session, error) {
	opts, err := Prepare(cfg.Options)
	if err != nil {
		return nil, err
	}

	bufPool := cfg.Pool
	if bufPool == nil {
		bufPool = pool.NewBufferPool(opts.BufferSize)
	}

	staging := bufPool.Get()
	deflater, err := compression.NewDeflater(staging, opts)
	if err != nil {
		bufPool.Put(staging)
		return nil, err
	}

	return &Session{
		deflater: deflater,
		staging:  staging,
		pool:     bufPool,
		flush:    opts.Flush,
	}, nil
}

// Feed compresses one input segment. The returned bytes are whatever the
// primitive made available so far: under FlushNone possibly nothing yet,
// under FlushSync and FlushFull everything fed up to this point, byte
// aligned. The returned slice is only valid until the next call on the
// session.
func (s *Session) Feed(segment []byte) ([]byte, error) {
	if s.closed.Load() {
		return nil, services.ErrSessionClosed
	}
	if s.finished {
		return nil, services.ErrSessionFinished
	}

	s.staging.Reset()

	if len(segment) > 0 {
		if _, err := s.deflater.Write(segment); err != nil {
			return nil, fmt.Errorf("deflate write: %w", err)
		}
	}

	if s.flush != domain.FlushNone {
		if err := s.deflater.Flush(); err != nil {
			return nil, fmt.Errorf("deflate flush: %w", err)
		}
	}

	return s.staging.Bytes(), nil
}

// Finish terminates the compressed stream: the primitive drains everything
// it still holds, emits the final block and, for the zlib wrapper, the
// Adler-32 trailer. Mandatory, exactly once. The returned slice is only
// valid until the next call on the session.
func (s *Session) Finish() ([]byte, error) {
	if s.closed.Load() {
		return nil, services.ErrSessionClosed
	}
	if s.finished {
		return nil, services.ErrSessionFinished
	}

	s.staging.Reset()
	s.finished = true

	if err := s.deflater.Close(); err != nil {
		return nil, fmt.Errorf("deflate finish: %w", err)
	}

	return s.staging.Bytes(), nil
}

// Close releases the compressor handle and returns the staging buffer to
// the pool. Idempotent. Closing before Finish abandons the stream: the
// handle is still terminated but its trailing output is discarded.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if !s.finished {
		err = s.deflater.Close()
	}

	s.pool.Put(s.staging)
	s.staging = nil
	return err
}
