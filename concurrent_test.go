package mmapbuf

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapConcurrent_Isolation(t *testing.T) {
	buf := openWritable(t, 4096, WithSegmentSize(64))
	shared := WrapConcurrent(buf, 0)

	// Each goroutine owns a disjoint offset range and hammers interleaved
	// typed accesses across many segments. With shared cursor state this
	// corrupts reads; with per-operation duplicates every goroutine must see
	// exactly its own writes.
	const workers = 8
	const slots = 32

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			base := int64(w) * slots * 8
			for round := 0; round < 50; round++ {
				for i := int64(0); i < slots; i++ {
					want := int64(w)<<32 | int64(round)<<8 | i
					if err := shared.PutInt64(base+i*8, want); err != nil {
						errs[w] = err
						return
					}
				}
				for i := int64(0); i < slots; i++ {
					got, err := shared.GetInt64(base + i*8)
					if err != nil {
						errs[w] = err
						return
					}
					if want := int64(w)<<32 | int64(round)<<8 | i; got != want {
						t.Errorf("worker %d slot %d: got %x want %x", w, i, got, want)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()

	for w, err := range errs {
		require.NoError(t, err, "worker %d", w)
	}
}

func TestWrapConcurrent_BaseAndCapacity(t *testing.T) {
	target := NewByteBuffer(128)
	shared := WrapConcurrent(target, 28)

	assert.Equal(t, int64(100), shared.Capacity())

	require.NoError(t, shared.Put(2, 0x44))
	v, err := target.Get(30)
	require.NoError(t, err)
	assert.Equal(t, byte(0x44), v)
}

func TestWrapConcurrent_VisibilityAcrossCallers(t *testing.T) {
	buf := openWritable(t, 256, WithSegmentSize(32))
	shared := WrapConcurrent(buf, 0)

	done := make(chan error, 1)
	go func() {
		done <- shared.PutInt32(100, 0x0BADF00D)
	}()
	require.NoError(t, <-done)

	// The write completed in another goroutine; the duplicate used here
	// shares the same mapped pages.
	v, err := shared.GetInt32(100)
	require.NoError(t, err)
	assert.Equal(t, int32(0x0BADF00D), v)
}

func TestWrapConcurrent_ClosedBuffer(t *testing.T) {
	buf := openWritable(t, 64)
	shared := WrapConcurrent(buf, 0)

	// Populate the pool with a duplicate, then close the canonical buffer.
	_, err := shared.Get(0)
	require.NoError(t, err)
	require.NoError(t, buf.Close())

	// Pooled duplicates share the canonical buffer's closed state and must
	// fail cleanly when handed out again.
	_, err = shared.Get(0)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, shared.Put(0, 1), ErrClosed)
}

func TestWrapConcurrent_Duplicate(t *testing.T) {
	buf := openWritable(t, 64)
	shared := WrapConcurrent(buf, 0)

	d, ok := shared.(Duplicator)
	require.True(t, ok)
	assert.Same(t, shared, d.Duplicate())
}
