package gzip_test

import (
	"bytes"
	stdflate "compress/flate"
	stdgzip "compress/gzip"
	"encoding/binary"
	"encoding/hex"
	"hash/crc32"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/zstream/internal/core/domain"
	"github.com/iamNilotpal/zstream/internal/core/services"
	"github.com/iamNilotpal/zstream/internal/core/services/gzip"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
)

func newParser(t *testing.T, src io.Reader, bufferSize int) *gzip.Parser {
	t.Helper()

	parser, err := gzip.NewParser(src, gzip.ParserConfig{
		Options: &domain.GunzipOptions{BufferSize: bufferSize},
	})
	require.NoError(t, err)
	return parser
}

// buildMember assembles a gzip member from a hand-written header, a deflate
// body and a correct trailer, so header corner cases can be exercised
// byte by byte.
func buildMember(t *testing.T, header []byte, content string) []byte {
	t.Helper()

	var body bytes.Buffer
	fw, err := stdflate.NewWriter(&body, stdflate.BestSpeed)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	member := append([]byte(nil), header...)
	member = append(member, body.Bytes()...)

	var trailer [domain.GzipTrailerSize]byte
	binary.LittleEndian.PutUint32(trailer[0:4], crc32.ChecksumIEEE([]byte(content)))
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(content)))
	return append(member, trailer[:]...)
}

func TestParserDecodesStdlibMember(t *testing.T) {
	var buf bytes.Buffer
	w := stdgzip.NewWriter(&buf)
	w.Name = "report.csv"
	w.Comment = "quarterly numbers"
	w.ModTime = time.Unix(1500000000, 0)
	w.OS = 3
	_, err := w.Write([]byte("col1,col2\n1,2\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	parser := newParser(t, bytes.NewReader(buf.Bytes()), 64)
	result, err := parser.Parse()
	require.NoError(t, err)

	assert.Equal(t, "report.csv", result.FileName)
	assert.Equal(t, "quarterly numbers", result.Comment)
	assert.Equal(t, int64(1500000000), result.ModTime.Unix())
	assert.Equal(t, byte(3), result.OS)

	content, err := io.ReadAll(result.Content)
	require.NoError(t, err)
	assert.Equal(t, "col1,col2\n1,2\n", string(content))
	require.NoError(t, result.Content.Close())
}

func TestParserDecodesCPythonMember(t *testing.T) {
	// Produced by CPython: gzip.GzipFile(filename='greeting.txt',
	// mtime=1700000000) wrapping b'hello, gzip world'.
	raw, err := hex.DecodeString(
		"1f8b080800f1536502ff6772656574696e672e74787400" +
			"cb48cdc9c9d75148afca2c5028cf2fca490100" +
			"eb83468211000000",
	)
	require.NoError(t, err)

	parser := newParser(t, bytes.NewReader(raw), 64)
	result, err := parser.Parse()
	require.NoError(t, err)

	assert.Equal(t, "greeting.txt", result.FileName)
	assert.Empty(t, result.Comment)
	assert.Equal(t, int64(1700000000), result.ModTime.Unix())
	assert.Equal(t, byte(0xff), result.OS)

	content, err := io.ReadAll(result.Content)
	require.NoError(t, err)
	assert.Equal(t, "hello, gzip world", string(content))
}

func TestParserFramerRoundTripSingleByteChunks(t *testing.T) {
	opts := &domain.GzipOptions{
		BufferSize: 48,
		Metadata: domain.GzipMetadata{
			FileName: "naïve.txt",
			Comment:  "splits land mid-field",
			ModTime:  time.Unix(1234567890, 0),
		},
	}
	member := frame(t, opts, []byte("content survives any segmentation"))

	// One byte per upstream read: every header field gets cut.
	parser := newParser(t, &chunkReader{data: member, chunk: 1}, 48)
	result, err := parser.Parse()
	require.NoError(t, err)

	assert.Equal(t, "naïve.txt", result.FileName)
	assert.Equal(t, "splits land mid-field", result.Comment)
	assert.Equal(t, int64(1234567890), result.ModTime.Unix())

	content, err := io.ReadAll(result.Content)
	require.NoError(t, err)
	assert.Equal(t, "content survives any segmentation", string(content))
}

func TestParserReadWithoutParse(t *testing.T) {
	member := frame(t, &domain.GzipOptions{BufferSize: 32}, []byte("implicit header parse"))

	parser := newParser(t, bytes.NewReader(member), 32)
	content, err := io.ReadAll(parser)
	require.NoError(t, err)
	assert.Equal(t, "implicit header parse", string(content))

	// The header was consumed by Read, so Parse is no longer available.
	_, err = parser.Parse()
	assert.ErrorIs(t, err, services.ErrAlreadyParsed)
}

func TestParserParseTwice(t *testing.T) {
	member := frame(t, &domain.GzipOptions{BufferSize: 32}, []byte("once"))

	parser := newParser(t, bytes.NewReader(member), 32)
	_, err := parser.Parse()
	require.NoError(t, err)

	_, err = parser.Parse()
	assert.ErrorIs(t, err, services.ErrAlreadyParsed)
}

func TestParserHeaderErrors(t *testing.T) {
	valid := frame(t, &domain.GzipOptions{BufferSize: 32}, []byte("seed"))

	t.Run("bad magic is malformed", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[0], bad[1] = 0x50, 0x4b

		parser := newParser(t, bytes.NewReader(bad), 32)
		_, err := parser.Parse()
		require.Error(t, err)
		assert.True(t, zerrors.IsMalformedInputError(err))
		assert.Contains(t, err.Error(), "magic")
	})

	t.Run("unknown method is malformed", func(t *testing.T) {
		bad := append([]byte(nil), valid...)
		bad[2] = 0x07

		parser := newParser(t, bytes.NewReader(bad), 32)
		_, err := parser.Parse()
		require.Error(t, err)
		assert.True(t, zerrors.IsMalformedInputError(err))
		assert.Contains(t, err.Error(), "method")
	})

	t.Run("cut prologue is truncation", func(t *testing.T) {
		parser := newParser(t, bytes.NewReader(valid[:5]), 32)
		_, err := parser.Parse()
		require.Error(t, err)
		assert.True(t, zerrors.IsTruncatedStreamError(err))
	})

	t.Run("unterminated name is truncation", func(t *testing.T) {
		header := []byte{0x1f, 0x8b, 0x08, domain.GzipFlagName, 0, 0, 0, 0, 0, 0xff}
		header = append(header, []byte("never-ends")...)

		parser := newParser(t, bytes.NewReader(header), 32)
		_, err := parser.Parse()
		require.Error(t, err)
		assert.True(t, zerrors.IsTruncatedStreamError(err))
	})

	t.Run("parse failure is sticky", func(t *testing.T) {
		parser := newParser(t, bytes.NewReader(valid[:3]), 32)
		_, err := parser.Parse()
		require.Error(t, err)

		_, again := parser.Parse()
		assert.Equal(t, err, again)
		_, rerr := parser.Read(make([]byte, 4))
		assert.Equal(t, err, rerr)
	})
}

func TestParserSkipsExtraField(t *testing.T) {
	header := []byte{0x1f, 0x8b, 0x08, domain.GzipFlagExtra, 0, 0, 0, 0, 0, 0xff}
	header = append(header, 0x06, 0x00) // 6 bytes of extra payload follow.
	header = append(header, []byte("EX0001")...)

	member := buildMember(t, header, "extra field ignored")

	parser := newParser(t, bytes.NewReader(member), 32)
	result, err := parser.Parse()
	require.NoError(t, err)
	assert.Empty(t, result.FileName)

	content, err := io.ReadAll(result.Content)
	require.NoError(t, err)
	assert.Equal(t, "extra field ignored", string(content))
}

func TestParserVerifiesHeaderCRC(t *testing.T) {
	newHeader := func() []byte {
		header := []byte{0x1f, 0x8b, 0x08, domain.GzipFlagHdrCRC | domain.GzipFlagName, 0, 0, 0, 0, 0, 0xff}
		header = append(header, []byte("f\x00")...)
		digest := crc32.ChecksumIEEE(header)
		return binary.LittleEndian.AppendUint16(header, uint16(digest))
	}

	t.Run("matching crc16 passes", func(t *testing.T) {
		member := buildMember(t, newHeader(), "header digest ok")

		parser := newParser(t, bytes.NewReader(member), 32)
		result, err := parser.Parse()
		require.NoError(t, err)
		assert.Equal(t, "f", result.FileName)

		content, err := io.ReadAll(result.Content)
		require.NoError(t, err)
		assert.Equal(t, "header digest ok", string(content))
	})

	t.Run("mismatching crc16 is corruption", func(t *testing.T) {
		header := newHeader()
		header[len(header)-1] ^= 0xff
		member := buildMember(t, header, "never reached")

		parser := newParser(t, bytes.NewReader(member), 32)
		_, err := parser.Parse()
		require.Error(t, err)
		require.True(t, zerrors.IsCorruptionError(err))
		assert.Equal(t, "header crc16", zerrors.AsCorruptionError(err).Field)
	})
}

func TestParserCapsOversizedName(t *testing.T) {
	overflow := domain.GzipFieldSoftLimit + 50

	header := []byte{0x1f, 0x8b, 0x08, domain.GzipFlagName, 0, 0, 0, 0, 0, 0xff}
	header = append(header, bytes.Repeat([]byte{'n'}, overflow)...)
	header = append(header, 0)

	member := buildMember(t, header, "aligned after the monster name")

	// Single-byte feeding: the cap must hold no matter how the field splits.
	parser := newParser(t, &chunkReader{data: member, chunk: 1}, 512)
	result, err := parser.Parse()
	require.NoError(t, err)

	// Materialized at the cap, consumed in full.
	assert.Len(t, result.FileName, domain.GzipFieldSoftLimit)
	assert.Equal(t, strings.Repeat("n", domain.GzipFieldSoftLimit), result.FileName)

	content, err := io.ReadAll(result.Content)
	require.NoError(t, err)
	assert.Equal(t, "aligned after the monster name", string(content))
}

func TestParserTrailer(t *testing.T) {
	member := frame(t, &domain.GzipOptions{BufferSize: 32}, []byte("verify me"))

	t.Run("cut trailer is truncation", func(t *testing.T) {
		parser := newParser(t, bytes.NewReader(member[:len(member)-3]), 32)
		_, err := io.ReadAll(parser)
		require.Error(t, err)
		assert.True(t, zerrors.IsTruncatedStreamError(err))
	})

	t.Run("crc mismatch is corruption", func(t *testing.T) {
		bad := append([]byte(nil), member...)
		bad[len(bad)-domain.GzipTrailerSize] ^= 0xff

		parser := newParser(t, bytes.NewReader(bad), 32)
		_, err := io.ReadAll(parser)
		require.Error(t, err)
		require.True(t, zerrors.IsCorruptionError(err))

		cerr := zerrors.AsCorruptionError(err)
		assert.Equal(t, "crc32", cerr.Field)
		assert.NotEqual(t, cerr.Want, cerr.Got)
	})

	t.Run("length mismatch is corruption", func(t *testing.T) {
		bad := append([]byte(nil), member...)
		bad[len(bad)-1] ^= 0xff

		parser := newParser(t, bytes.NewReader(bad), 32)
		_, err := io.ReadAll(parser)
		require.Error(t, err)
		require.True(t, zerrors.IsCorruptionError(err))
		assert.Equal(t, "isize", zerrors.AsCorruptionError(err).Field)
	})

	t.Run("content is delivered before the verdict", func(t *testing.T) {
		bad := append([]byte(nil), member...)
		bad[len(bad)-domain.GzipTrailerSize] ^= 0xff

		parser := newParser(t, bytes.NewReader(bad), 32)
		content, err := io.ReadAll(parser)
		require.Error(t, err)
		assert.Equal(t, "verify me", string(content))
	})
}

func TestParserIgnoresBytesAfterMember(t *testing.T) {
	member := frame(t, &domain.GzipOptions{BufferSize: 32}, []byte("first member"))
	second := frame(t, &domain.GzipOptions{BufferSize: 32}, []byte("second member"))

	t.Run("garbage after trailer", func(t *testing.T) {
		stream := append(append([]byte(nil), member...), []byte("GARBAGE")...)

		parser := newParser(t, bytes.NewReader(stream), 32)
		content, err := io.ReadAll(parser)
		require.NoError(t, err)
		assert.Equal(t, "first member", string(content))
	})

	t.Run("concatenated members decode as the first", func(t *testing.T) {
		stream := append(append([]byte(nil), member...), second...)

		parser := newParser(t, bytes.NewReader(stream), 32)
		content, err := io.ReadAll(parser)
		require.NoError(t, err)
		assert.Equal(t, "first member", string(content))
	})
}

func TestParserEmptyMember(t *testing.T) {
	member := frame(t, &domain.GzipOptions{BufferSize: 32}, nil)

	parser := newParser(t, bytes.NewReader(member), 32)
	content, err := io.ReadAll(parser)
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestParserCapsReadsAtBufferSize(t *testing.T) {
	payload := strings.Repeat("y", 200)
	member := frame(t, &domain.GzipOptions{BufferSize: 64}, []byte(payload))

	parser := newParser(t, bytes.NewReader(member), 16)

	var total int
	p := make([]byte, 128)
	for {
		n, err := parser.Read(p)
		assert.LessOrEqual(t, n, 16)
		total += n
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, len(payload), total)
}

func TestParserValidationAndClose(t *testing.T) {
	_, err := gzip.NewParser(bytes.NewReader(nil), gzip.ParserConfig{
		Options: &domain.GunzipOptions{},
	})
	verr := zerrors.AsValidationError(err)
	require.NotNil(t, verr)
	assert.Equal(t, "bufferSize", verr.Field)

	member := frame(t, &domain.GzipOptions{BufferSize: 32}, []byte("soon closed"))
	parser := newParser(t, bytes.NewReader(member), 32)

	require.NoError(t, parser.Close())
	assert.NoError(t, parser.Close(), "close is idempotent")

	_, err = parser.Read(make([]byte, 4))
	assert.ErrorIs(t, err, services.ErrSessionClosed)
	_, err = parser.Parse()
	assert.ErrorIs(t, err, services.ErrSessionClosed)
}
