package mmapbuf

import "sync"

// WrapConcurrent returns a relocation-base view of target that is safe for
// use from multiple goroutines at once. Where Wrap delegates straight to the
// (cursor-carrying, single-goroutine) target, this facade keeps a pool of
// duplicates of the canonical buffer and has every operation borrow one
// exclusively for its duration: no two concurrent callers ever share cursor
// state.
//
// All duplicates share the canonical buffer's backing storage, so a write
// completed through one goroutine's operation is visible to reads issued by
// another, subject to the platform's ordinary memory-visibility rules; the
// facade adds no synchronization between writers of overlapping offsets.
//
// If target does not implement Duplicator, the canonical instance itself is
// handed out, and the caller keeps the target's own concurrency contract.
func WrapConcurrent(target Buffer, base int64) Buffer {
	c := &concurrentBuffer{
		canonical: target,
		base:      base,
	}
	c.pool.New = func() any {
		if d, ok := target.(Duplicator); ok {
			return d.Duplicate()
		}
		return target
	}
	return c
}

type concurrentBuffer struct {
	canonical Buffer
	base      int64
	pool      sync.Pool
}

func (c *concurrentBuffer) acquire() Buffer {
	return c.pool.Get().(Buffer)
}

// release returns a duplicate to the pool. Duplicates may outlive a Close of
// the canonical buffer here; that is safe because closed state lives in the
// shared segment table, so a stale duplicate fails with ErrClosed instead of
// touching unmapped pages.
func (c *concurrentBuffer) release(b Buffer) {
	c.pool.Put(b)
}

// Duplicate returns the facade itself; it is already safe for concurrent use.
func (c *concurrentBuffer) Duplicate() Buffer {
	return c
}

func (c *concurrentBuffer) Get(off int64) (byte, error) {
	b := c.acquire()
	defer c.release(b)
	return b.Get(off + c.base)
}

func (c *concurrentBuffer) Put(off int64, v byte) error {
	b := c.acquire()
	defer c.release(b)
	return b.Put(off+c.base, v)
}

func (c *concurrentBuffer) GetInt16(off int64) (int16, error) {
	b := c.acquire()
	defer c.release(b)
	return b.GetInt16(off + c.base)
}

func (c *concurrentBuffer) PutInt16(off int64, v int16) error {
	b := c.acquire()
	defer c.release(b)
	return b.PutInt16(off+c.base, v)
}

func (c *concurrentBuffer) GetUint16(off int64) (uint16, error) {
	b := c.acquire()
	defer c.release(b)
	return b.GetUint16(off + c.base)
}

func (c *concurrentBuffer) PutUint16(off int64, v uint16) error {
	b := c.acquire()
	defer c.release(b)
	return b.PutUint16(off+c.base, v)
}

func (c *concurrentBuffer) GetInt32(off int64) (int32, error) {
	b := c.acquire()
	defer c.release(b)
	return b.GetInt32(off + c.base)
}

func (c *concurrentBuffer) PutInt32(off int64, v int32) error {
	b := c.acquire()
	defer c.release(b)
	return b.PutInt32(off+c.base, v)
}

func (c *concurrentBuffer) GetInt64(off int64) (int64, error) {
	b := c.acquire()
	defer c.release(b)
	return b.GetInt64(off + c.base)
}

func (c *concurrentBuffer) PutInt64(off int64, v int64) error {
	b := c.acquire()
	defer c.release(b)
	return b.PutInt64(off+c.base, v)
}

func (c *concurrentBuffer) GetFloat32(off int64) (float32, error) {
	b := c.acquire()
	defer c.release(b)
	return b.GetFloat32(off + c.base)
}

func (c *concurrentBuffer) PutFloat32(off int64, v float32) error {
	b := c.acquire()
	defer c.release(b)
	return b.PutFloat32(off+c.base, v)
}

func (c *concurrentBuffer) GetFloat64(off int64) (float64, error) {
	b := c.acquire()
	defer c.release(b)
	return b.GetFloat64(off + c.base)
}

func (c *concurrentBuffer) PutFloat64(off int64, v float64) error {
	b := c.acquire()
	defer c.release(b)
	return b.PutFloat64(off+c.base, v)
}

func (c *concurrentBuffer) GetBytes(off int64, n int) ([]byte, error) {
	b := c.acquire()
	defer c.release(b)
	return b.GetBytes(off+c.base, n)
}

func (c *concurrentBuffer) PutBytes(off int64, p []byte) error {
	b := c.acquire()
	defer c.release(b)
	return b.PutBytes(off+c.base, p)
}

func (c *concurrentBuffer) Slice(off int64) ([]byte, error) {
	b := c.acquire()
	defer c.release(b)
	return b.Slice(off + c.base)
}

// Capacity reads structurally immutable state and needs no duplicate.
func (c *concurrentBuffer) Capacity() int64 {
	return c.canonical.Capacity() - c.base
}
