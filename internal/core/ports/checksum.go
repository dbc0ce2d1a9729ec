package ports

// Defines an interface for accumulating a running checksum over streamed
// bytes. Wire formats verify integrity against digests computed while the
// data flows through, so implementations must be incremental.
type Checksum interface {
	// Write folds more bytes into the running digest. It never fails and
	// always reports len(p) consumed; the signature matches io.Writer so a
	// checksum can sit inside a write path.
	Write(p []byte) (int, error)

	// Sum32 returns the digest of everything written so far.
	Sum32() uint32

	// Reset restores the initial digest state.
	Reset()
}
