package gzip

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/iamNilotpal/zstream/internal/adapters/checksum"
	"github.com/iamNilotpal/zstream/internal/adapters/compression"
	"github.com/iamNilotpal/zstream/internal/adapters/encoding"
	"github.com/iamNilotpal/zstream/internal/core/domain"
	"github.com/iamNilotpal/zstream/internal/core/ports"
	"github.com/iamNilotpal/zstream/internal/core/services"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
)

// formatGzip names the format in parse errors.
const formatGzip = "gzip"

type parseState uint8

const (
	stateHeaderFixed   parseState = iota + 1 // Fixed 10-byte prologue.
	stateHeaderExtra                         // Length-prefixed extra field.
	stateHeaderName                          // NUL-terminated file name.
	stateHeaderComment                       // NUL-terminated comment.
	stateHeaderCRC                           // CRC-16 over the header bytes.
	stateBody                                // Raw deflate member body.
	stateTrailer                             // CRC-32 + ISIZE.
	stateDone
)

// ParserConfig carries the construction parameters for a Parser.
type ParserConfig struct {
	// Options tunes the parser. Required; BufferSize must be positive.
	Options *domain.GunzipOptions
}

// Parser decodes the first member of a gzip stream: the header fields into
// metadata, the raw deflate body into content, and the trailer into an
// integrity verdict. The buffered cursor absorbs arbitrary segment splits,
// including splits inside a header field. Parsers are single-use and not
// safe for concurrent use.
type Parser struct {
	br       *bufio.Reader
	opts     *domain.GunzipOptions
	state    parseState
	meta     domain.GzipMetadata
	hdrSum   ports.Checksum // Runs over every header byte for the CRC-16 check.
	inflater ports.Inflater
	crc      ports.Checksum // Runs over decoded content for the trailer check.
	isize    uint32
	err      error // Terminal state.
	closed   atomic.Bool
}

// NewParser validates the options and binds a parser to src. Nothing is
// read until Parse or the first Read.
func NewParser(src io.Reader, cfg ParserConfig) (*Parser, error) {
	opts, err := PrepareGunzip(cfg.Options)
	if err != nil {
		return nil, err
	}

	return &Parser{
		br:     bufio.NewReaderSize(src, opts.BufferSize),
		opts:   opts,
		state:  stateHeaderFixed,
		hdrSum: checksum.NewCRC32IEEE(),
		crc:    checksum.NewCRC32IEEE(),
	}, nil
}

// Parse consumes the member header and materializes its metadata. The
// returned result carries the parser itself as the lazy content stream; no
// body byte has been consumed when Parse returns. Parsing twice, or after a
// Read already consumed the header, returns ErrAlreadyParsed.
func (p *Parser) Parse() (*domain.GunzipResult, error) {
	if p.closed.Load() {
		return nil, services.ErrSessionClosed
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.state != stateHeaderFixed {
		return nil, services.ErrAlreadyParsed
	}

	if err := p.parseHeader(); err != nil {
		p.err = err
		return nil, err
	}

	return &domain.GunzipResult{GzipMetadata: p.meta, Content: p}, nil
}

// Read yields decompressed body bytes, at most BufferSize per call. If
// Parse was not called the first Read consumes the header. When the body
// reaches its logical end the trailer is read and checked: a mismatch
// surfaces as a CorruptionError, a source ending inside the trailer as a
// TruncatedStreamError and success as io.EOF. Bytes after the trailer are
// left unread, so a stream of concatenated members decodes as its first
// member only.
func (p *Parser) Read(b []byte) (int, error) {
	if p.closed.Load() {
		return 0, services.ErrSessionClosed
	}
	if p.err != nil {
		return 0, p.err
	}
	if p.state == stateDone {
		return 0, io.EOF
	}

	if p.state < stateBody {
		if err := p.parseHeader(); err != nil {
			p.err = err
			return 0, err
		}
	}
	if len(b) == 0 {
		return 0, nil
	}

	if len(b) > p.opts.BufferSize {
		b = b[:p.opts.BufferSize]
	}

	n, err := p.inflater.Read(b)
	if n > 0 {
		p.crc.Write(b[:n])
		p.isize += uint32(n)
	}

	switch {
	case err == nil:
		return n, nil
	case err == io.EOF:
		if verr := p.verifyTrailer(); verr != nil {
			p.err = verr
			if n > 0 {
				return n, nil
			}
			return 0, verr
		}
		p.state = stateDone
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	default:
		p.err = err
		return n, err
	}
}

// Close releases the decompressor. Idempotent; safe at any point of the
// parse.
func (p *Parser) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}

	if p.inflater == nil {
		return nil
	}
	return p.inflater.Close()
}

// parseHeader walks the header states in stream order and leaves the parser
// positioned on the first body byte, with the decompressor bound to the
// shared cursor.
func (p *Parser) parseHeader() error {
	var fixed [domain.GzipHeaderSize]byte
	if err := p.headerFull(fixed[:]); err != nil {
		return err
	}

	if fixed[0] != domain.GzipID1 || fixed[1] != domain.GzipID2 {
		return zerrors.NewMalformedInputError(formatGzip, fmt.Errorf(
			"invalid magic bytes %#02x %#02x", fixed[0], fixed[1],
		))
	}
	if fixed[2] != domain.GzipMethod {
		return zerrors.NewMalformedInputError(formatGzip, fmt.Errorf(
			"unsupported compression method %#02x", fixed[2],
		))
	}

	flags := fixed[3]
	if mtime := binary.LittleEndian.Uint32(fixed[4:8]); mtime != 0 {
		p.meta.ModTime = time.Unix(int64(mtime), 0)
	}
	p.meta.OS = fixed[9]

	p.state = stateHeaderExtra
	if flags&domain.GzipFlagExtra != 0 {
		var size [2]byte
		if err := p.headerFull(size[:]); err != nil {
			return err
		}
		if err := p.discardHeader(int64(binary.LittleEndian.Uint16(size[:]))); err != nil {
			return err
		}
	}

	p.state = stateHeaderName
	if flags&domain.GzipFlagName != 0 {
		name, err := p.headerString()
		if err != nil {
			return err
		}
		p.meta.FileName = name
	}

	p.state = stateHeaderComment
	if flags&domain.GzipFlagComment != 0 {
		comment, err := p.headerString()
		if err != nil {
			return err
		}
		p.meta.Comment = comment
	}

	p.state = stateHeaderCRC
	if flags&domain.GzipFlagHdrCRC != 0 {
		computed := uint16(p.hdrSum.Sum32())
		var stored [2]byte
		if _, err := io.ReadFull(p.br, stored[:]); err != nil {
			return zerrors.NewTruncatedStreamError(formatGzip, noEOF(err))
		}
		if got := binary.LittleEndian.Uint16(stored[:]); got != computed {
			return zerrors.NewCorruptionError("header crc16", uint32(got), uint32(computed))
		}
	}

	inflater, err := compression.NewInflater(p.br, domain.FormatRaw)
	if err != nil {
		return err
	}
	p.inflater = inflater
	p.state = stateBody
	return nil
}

// verifyTrailer reads the 8-byte trailer and checks both stored values
// against the digests accumulated while decoding.
func (p *Parser) verifyTrailer() error {
	p.state = stateTrailer

	var trailer [domain.GzipTrailerSize]byte
	if _, err := io.ReadFull(p.br, trailer[:]); err != nil {
		return zerrors.NewTruncatedStreamError(formatGzip, noEOF(err))
	}

	if stored := binary.LittleEndian.Uint32(trailer[0:4]); stored != p.crc.Sum32() {
		return zerrors.NewCorruptionError("crc32", stored, p.crc.Sum32())
	}
	if stored := binary.LittleEndian.Uint32(trailer[4:8]); stored != p.isize {
		return zerrors.NewCorruptionError("isize", stored, p.isize)
	}

	return nil
}

// headerFull reads exactly len(buf) header bytes and folds them into the
// header digest. A source that ends inside the header is truncation.
func (p *Parser) headerFull(buf []byte) error {
	if _, err := io.ReadFull(p.br, buf); err != nil {
		return zerrors.NewTruncatedStreamError(formatGzip, noEOF(err))
	}
	p.hdrSum.Write(buf)
	return nil
}

// discardHeader consumes n header bytes without materializing them, still
// folding them into the header digest.
func (p *Parser) discardHeader(n int64) error {
	if _, err := io.CopyN(p.hdrSum, p.br, n); err != nil {
		return zerrors.NewTruncatedStreamError(formatGzip, noEOF(err))
	}
	return nil
}

// headerString accumulates one NUL-terminated Latin-1 field. At most
// GzipFieldSoftLimit bytes are materialized; anything past the cap is still
// consumed so framing stays aligned, but dropped. The digest covers every
// consumed byte including the terminator.
func (p *Parser) headerString() (string, error) {
	var scratch [256]byte
	fill := 0
	raw := make([]byte, 0, 32)

	for {
		b, err := p.br.ReadByte()
		if err != nil {
			return "", zerrors.NewTruncatedStreamError(formatGzip, noEOF(err))
		}

		scratch[fill] = b
		fill++
		if fill == len(scratch) {
			p.hdrSum.Write(scratch[:])
			fill = 0
		}

		if b == 0 {
			p.hdrSum.Write(scratch[:fill])
			return encoding.DecodeLatin1(raw), nil
		}
		if len(raw) < domain.GzipFieldSoftLimit {
			raw = append(raw, b)
		}
	}
}

// noEOF converts a bare io.EOF into io.ErrUnexpectedEOF: once a member is
// underway, a clean end of input is still a premature end of the member.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
