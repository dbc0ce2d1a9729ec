package checksum

import (
	"hash"
	"hash/crc32"
)

type crc32IEEE struct {
	name string
	hash hash.Hash32
}

// NewCRC32IEEE returns a running CRC-32 (IEEE polynomial) checksum.
func NewCRC32IEEE() *crc32IEEE {
	return &crc32IEEE{
		name: CRC32IEEE,
		hash: crc32.NewIEEE(),
	}
}

func (c *crc32IEEE) Write(p []byte) (int, error) {
	return c.hash.Write(p)
}

func (c *crc32IEEE) Sum32() uint32 {
	return c.hash.Sum32()
}

func (c *crc32IEEE) Reset() {
	c.hash.Reset()
}

func (c *crc32IEEE) Name() string {
	return c.name
}
