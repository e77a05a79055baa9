package mmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile(t *testing.T, content []byte) *os.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapping_test.bin")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	return f
}

func TestMap_ReadClose(t *testing.T) {
	content := []byte("Hello, Mapping!")
	f := newTestFile(t, content)

	m, err := Map(f, 0, len(content), false)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(content), m.Len())
	assert.Equal(t, content, m.Bytes())
	assert.False(t, m.Writable())
}

func TestMap_UnalignedOffset(t *testing.T) {
	content := make([]byte, 8192)
	for i := range content {
		content[i] = byte(i)
	}
	f := newTestFile(t, content)

	// Offset 100 is not page-aligned; the view must still start exactly there.
	m, err := Map(f, 100, 50, false)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 50, m.Len())
	assert.Equal(t, content[100:150], m.Bytes())
}

func TestMap_WriteSync(t *testing.T) {
	content := make([]byte, 4096)
	f := newTestFile(t, content)
	path := f.Name()

	m, err := Map(f, 0, len(content), true)
	require.NoError(t, err)

	copy(m.Bytes()[10:], "durable")
	require.NoError(t, m.Sync())
	require.NoError(t, m.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got[10:17])
}

func TestMap_InvalidArguments(t *testing.T) {
	f := newTestFile(t, make([]byte, 16))

	_, err := Map(f, -1, 16, false)
	assert.ErrorIs(t, err, ErrInvalidOffset)

	_, err = Map(f, 0, 0, false)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestMapping_ClosedState(t *testing.T) {
	f := newTestFile(t, make([]byte, 64))

	m, err := Map(f, 0, 64, true)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // idempotent

	assert.Nil(t, m.Bytes())
	assert.ErrorIs(t, m.Sync(), ErrClosed)
	assert.ErrorIs(t, m.Advise(AccessRandom), ErrClosed)
}

func TestMapping_Advise(t *testing.T) {
	f := newTestFile(t, make([]byte, 4096))

	m, err := Map(f, 0, 4096, false)
	require.NoError(t, err)
	defer m.Close()

	assert.NoError(t, m.Advise(AccessSequential))
	assert.NoError(t, m.Advise(AccessRandom))
	assert.NoError(t, m.Advise(AccessDefault))
}
