package ports

import "io"

// Defines the interface for the raw compression primitive driven by deflate
// sessions. This allows us to swap the primitive implementation without
// changing the framing logic built on top of it.
type Deflater interface {
	// Write feeds uncompressed bytes to the primitive. Compressed output
	// accumulates in the sink the primitive was bound to at construction and
	// may lag input while the primitive buffers for a better ratio.
	Write(p []byte) (int, error)

	// Flush forces out everything the primitive is holding and aligns the
	// output to a byte boundary, so all input fed so far is decodable.
	Flush() error

	// Close terminates the stream: emits the final block and, when the
	// format defines one, the trailer. The handle is unusable afterwards.
	Close() error

	// Reset discards all state and binds the primitive to a new sink,
	// allowing handle reuse without reallocation.
	Reset(w io.Writer)
}

// Defines the interface for the raw decompression primitive behind inflate
// sessions. Read returns io.EOF exactly at the logical end of the compressed
// stream — not when the source is exhausted — leaving any trailing bytes
// unconsumed in the source. Close releases the handle and is safe to call
// before the stream completes.
type Inflater interface {
	io.ReadCloser
}
