package inflate_test

import (
	"bytes"
	stdflate "compress/flate"
	stdzlib "compress/zlib"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/zstream/internal/core/domain"
	"github.com/iamNilotpal/zstream/internal/core/services"
	"github.com/iamNilotpal/zstream/internal/core/services/inflate"
	zerrors "github.com/iamNilotpal/zstream/pkg/errors"
)

func zlibStream(t *testing.T, payload []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := stdzlib.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// chunkReader yields at most chunk bytes per call and returns an empty read
// every fourth call, exercising resumption across arbitrary split points.
type chunkReader struct {
	data  []byte
	chunk int
	calls int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	c.calls++
	if c.calls%4 == 0 {
		return 0, nil
	}
	if len(c.data) == 0 {
		return 0, io.EOF
	}

	n := c.chunk
	if n > len(c.data) {
		n = len(c.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func TestOpenValidatesEagerly(t *testing.T) {
	_, err := inflate.Open(bytes.NewReader(nil), inflate.Config{
		Options: &domain.InflateOptions{},
	})
	verr := zerrors.AsValidationError(err)
	require.NotNil(t, verr)
	assert.Equal(t, "bufferSize", verr.Field)

	_, err = inflate.Open(bytes.NewReader(nil), inflate.Config{
		Options: &domain.InflateOptions{BufferSize: 64, Format: domain.Format(9)},
	})
	verr = zerrors.AsValidationError(err)
	require.NotNil(t, verr)
	assert.Equal(t, "format", verr.Field)
}

func TestSessionRoundTrip(t *testing.T) {
	payload := []byte(strings.Repeat("inflate restores the original bytes. ", 100))

	session, err := inflate.Open(
		bytes.NewReader(zlibStream(t, payload)),
		inflate.Config{Options: &domain.InflateOptions{BufferSize: 256}},
	)
	require.NoError(t, err)
	defer session.Close()

	decoded, err := io.ReadAll(session)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)

	// Done state is stable.
	n, err := session.Read(make([]byte, 8))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSessionHandlesChunkedCompressedInput(t *testing.T) {
	payload := []byte(strings.Repeat("split points never shift the output. ", 200))
	stream := zlibStream(t, payload)

	for _, chunk := range []int{1, 7, 64} {
		session, err := inflate.Open(
			&chunkReader{data: append([]byte(nil), stream...), chunk: chunk},
			inflate.Config{Options: &domain.InflateOptions{BufferSize: 128}},
		)
		require.NoError(t, err)

		decoded, err := io.ReadAll(session)
		require.NoError(t, err)
		require.NoError(t, session.Close())
		assert.Equal(t, payload, decoded, "chunk size %d", chunk)
	}
}

func TestSessionRawFormat(t *testing.T) {
	payload := []byte("headerless body")

	var buf bytes.Buffer
	w, err := stdflate.NewWriter(&buf, stdflate.BestSpeed)
	require.NoError(t, err)
	_, err = w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	session, err := inflate.Open(
		bytes.NewReader(buf.Bytes()),
		inflate.Config{Options: &domain.InflateOptions{BufferSize: 64, Format: domain.FormatRaw}},
	)
	require.NoError(t, err)
	defer session.Close()

	decoded, err := io.ReadAll(session)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestSessionCapsReadsAtBufferSize(t *testing.T) {
	payload := []byte(strings.Repeat("x", 100))

	session, err := inflate.Open(
		bytes.NewReader(zlibStream(t, payload)),
		inflate.Config{Options: &domain.InflateOptions{BufferSize: 8}},
	)
	require.NoError(t, err)
	defer session.Close()

	var total int
	p := make([]byte, 64)
	for {
		n, err := session.Read(p)
		assert.LessOrEqual(t, n, 8, "reads must not exceed the configured segment size")
		total += n
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, len(payload), total)
}

func TestSessionLeavesTrailingBytes(t *testing.T) {
	payload := []byte("logical end detection")
	trailing := []byte("NOT PART OF THE STREAM")

	src := bytes.NewReader(append(zlibStream(t, payload), trailing...))
	session, err := inflate.Open(src, inflate.Config{
		Options: &domain.InflateOptions{BufferSize: 32},
	})
	require.NoError(t, err)
	defer session.Close()

	decoded, err := io.ReadAll(session)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)

	rest, err := io.ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, trailing, rest)
}

func TestSessionErrorStates(t *testing.T) {
	t.Run("empty input is truncation", func(t *testing.T) {
		session, err := inflate.Open(bytes.NewReader(nil), inflate.Config{
			Options: &domain.InflateOptions{BufferSize: 16},
		})
		require.NoError(t, err, "construction never reads the source")

		_, err = io.ReadAll(session)
		require.Error(t, err)
		assert.True(t, zerrors.IsTruncatedStreamError(err))

		// Terminal errors are sticky.
		_, err = session.Read(make([]byte, 4))
		assert.True(t, zerrors.IsTruncatedStreamError(err))
	})

	t.Run("garbage header is malformed", func(t *testing.T) {
		session, err := inflate.Open(
			bytes.NewReader([]byte("not a zlib stream")),
			inflate.Config{Options: &domain.InflateOptions{BufferSize: 16}},
		)
		require.NoError(t, err)

		_, err = io.ReadAll(session)
		require.Error(t, err)
		assert.True(t, zerrors.IsMalformedInputError(err))
	})

	t.Run("cut stream is truncation", func(t *testing.T) {
		stream := zlibStream(t, []byte("cut somewhere in the middle of the body"))
		session, err := inflate.Open(
			bytes.NewReader(stream[:len(stream)/2]),
			inflate.Config{Options: &domain.InflateOptions{BufferSize: 16}},
		)
		require.NoError(t, err)

		_, err = io.ReadAll(session)
		require.Error(t, err)
		assert.True(t, zerrors.IsTruncatedStreamError(err))
	})

	t.Run("adler mismatch is corruption", func(t *testing.T) {
		stream := zlibStream(t, []byte("trailer integrity"))
		stream[len(stream)-1] ^= 0xff

		session, err := inflate.Open(bytes.NewReader(stream), inflate.Config{
			Options: &domain.InflateOptions{BufferSize: 16},
		})
		require.NoError(t, err)

		_, err = io.ReadAll(session)
		require.Error(t, err)
		assert.True(t, zerrors.IsCorruptionError(err))
	})
}

func TestSessionClose(t *testing.T) {
	session, err := inflate.Open(
		bytes.NewReader(zlibStream(t, []byte("closed early"))),
		inflate.Config{Options: &domain.InflateOptions{BufferSize: 16}},
	)
	require.NoError(t, err)

	require.NoError(t, session.Close())
	assert.NoError(t, session.Close(), "close is idempotent")

	_, err = session.Read(make([]byte, 4))
	assert.ErrorIs(t, err, services.ErrSessionClosed)
}
