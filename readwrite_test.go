package mmapbuf

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ io.ReaderAt = (*MappedBuffer)(nil)
	_ io.WriterAt = (*MappedBuffer)(nil)
)

func TestMappedBuffer_ReadAtStitching(t *testing.T) {
	buf := openWritable(t, 64, WithSegmentSize(16))

	// A read larger than the segment size must stitch across segments.
	p := make([]byte, 40)
	n, err := buf.ReadAt(p, 10)
	require.NoError(t, err)
	assert.Equal(t, 40, n)
	for i, b := range p {
		require.Equal(t, byte((10+i)%251), b, "index %d", i)
	}
}

func TestMappedBuffer_ReadAtEOF(t *testing.T) {
	buf := openWritable(t, 32, WithSegmentSize(16))

	p := make([]byte, 16)
	n, err := buf.ReadAt(p, 24)
	assert.Equal(t, 8, n)
	assert.Equal(t, io.EOF, err)

	n, err = buf.ReadAt(p, 32)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	var oor *OutOfRangeError
	_, err = buf.ReadAt(p, -1)
	assert.ErrorAs(t, err, &oor)
}

func TestMappedBuffer_WriteAtStitching(t *testing.T) {
	buf := openWritable(t, 64, WithSegmentSize(16))

	payload := make([]byte, 48)
	for i := range payload {
		payload[i] = byte(0xF0 | i&0x0F)
	}

	n, err := buf.WriteAt(payload, 8)
	require.NoError(t, err)
	assert.Equal(t, 48, n)

	got := make([]byte, 48)
	_, err = buf.ReadAt(got, 8)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// Neighbouring bytes stay untouched.
	v, err := buf.Get(7)
	require.NoError(t, err)
	assert.Equal(t, byte(7), v)
	v, err = buf.Get(56)
	require.NoError(t, err)
	assert.Equal(t, byte(56%251), v)
}

func TestMappedBuffer_WriteAtShort(t *testing.T) {
	buf := openWritable(t, 32, WithSegmentSize(16))

	n, err := buf.WriteAt(make([]byte, 16), 24)
	assert.Equal(t, 8, n)
	assert.Equal(t, io.ErrShortWrite, err)
}

func TestMappedBuffer_ReadWriteAtClosed(t *testing.T) {
	buf := openWritable(t, 32)
	require.NoError(t, buf.Close())

	_, err := buf.ReadAt(make([]byte, 4), 0)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = buf.WriteAt(make([]byte, 4), 0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMappedBuffer_WriteAtReadOnly(t *testing.T) {
	path := writeTestFile(t, 32)
	buf, err := Open(path)
	require.NoError(t, err)
	defer buf.Close()

	_, err = buf.WriteAt([]byte{1}, 0)
	assert.ErrorIs(t, err, ErrReadOnly)
}
