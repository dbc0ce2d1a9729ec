package gzip

import (
	"encoding/binary"

	"github.com/iamNilotpal/zstream/internal/adapters/encoding"
	"github.com/iamNilotpal/zstream/internal/core/domain"
)

// buildHeader materializes the complete member header for the given options:
// the fixed 10-byte prologue followed by the optional NUL-terminated file
// name and comment fields. The result is ready to emit as-is.
func buildHeader(opts *domain.GzipOptions) []byte {
	meta := opts.Metadata

	var name, comment []byte
	var flags byte
	if meta.FileName != "" {
		name = encoding.EncodeLatin1(meta.FileName, '_')
		flags |= domain.GzipFlagName
	}
	if meta.Comment != "" {
		comment = encoding.EncodeLatin1(meta.Comment, ' ')
		flags |= domain.GzipFlagComment
	}

	header := make([]byte, domain.GzipHeaderSize, domain.GzipHeaderSize+len(name)+len(comment)+2)
	header[0] = domain.GzipID1
	header[1] = domain.GzipID2
	header[2] = domain.GzipMethod
	header[3] = flags

	var mtime uint32
	if !meta.ModTime.IsZero() {
		mtime = uint32(meta.ModTime.Unix())
	}
	binary.LittleEndian.PutUint32(header[4:8], mtime)

	header[8] = extraFlags(opts.Level)
	header[9] = meta.OS
	if header[9] == 0 {
		header[9] = domain.GzipOSUnknown
	}

	if flags&domain.GzipFlagName != 0 {
		header = append(header, name...)
		header = append(header, 0)
	}
	if flags&domain.GzipFlagComment != 0 {
		header = append(header, comment...)
		header = append(header, 0)
	}

	return header
}

// extraFlags derives the XFL byte from the configured level: 2 when maximum
// compression was requested, 4 for the fastest level, 0 for everything else.
func extraFlags(level domain.CompressionLevel) byte {
	switch level {
	case domain.BestCompression:
		return domain.GzipXFLBest
	case domain.BestSpeed:
		return domain.GzipXFLFastest
	default:
		return 0
	}
}
