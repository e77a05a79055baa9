package mmapbuf

import (
	"context"
	"encoding/binary"
	"math"
)

// MappedBuffer exposes a memory-mapped file as one flat, randomly addressable
// byte space, even when the file is larger than a single native mapping can
// cover. Internally the file is split into overlapping segments (see
// segmentTable); every access resolves its offset to a segment and operates
// on that segment's pages directly.
//
// A MappedBuffer carries per-instance cursor state and therefore must not be
// shared across goroutines without external synchronization. Use Clone (or
// WrapConcurrent) to give each goroutine its own instance over the same
// pages.
type MappedBuffer struct {
	table *segmentTable
	order binary.ByteOrder

	// curSeg/curView cache the most recently resolved segment. This is the
	// mutable positioning state that makes a single instance unsafe to share
	// and that Clone deliberately does not copy.
	curSeg  int
	curView []byte
}

// Open maps the file at path and returns a buffer over it. All segments are
// mapped eagerly; if any mapping fails, previously created mappings are
// released before the error is returned. The buffer is read-only unless
// WithWritable(true) is given. The caller owns the file's lifecycle; the
// file must not be truncated while mapped.
func Open(path string, opts ...Option) (*MappedBuffer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	table, err := newSegmentTable(path, o)
	if err != nil {
		return nil, err
	}

	return &MappedBuffer{
		table:  table,
		order:  o.order,
		curSeg: -1,
	}, nil
}

// Clone returns an independent buffer over the same mapped pages. No file
// I/O happens; the clone shares the segment table (and its closed state) but
// carries its own cursor state, so the original and the clone can be driven
// by different goroutines, each using only the instance it owns.
func (m *MappedBuffer) Clone() *MappedBuffer {
	return &MappedBuffer{
		table:  m.table,
		order:  m.order,
		curSeg: -1,
	}
}

// Duplicate implements Duplicator.
func (m *MappedBuffer) Duplicate() Buffer {
	return m.Clone()
}

// SetByteOrder sets the byte order for multi-byte scalar access on this
// instance. Existing clones keep the order they were created with.
func (m *MappedBuffer) SetByteOrder(order binary.ByteOrder) {
	if order == nil {
		order = binary.LittleEndian
	}
	m.order = order
}

// Capacity returns the size of the backing file at mapping time.
func (m *MappedBuffer) Capacity() int64 {
	return m.table.size
}

// Path returns the path of the backing file.
func (m *MappedBuffer) Path() string {
	return m.table.path
}

// Writable reports whether the buffer was opened with write access.
func (m *MappedBuffer) Writable() bool {
	return m.table.writable
}

// SegmentSize returns the configured logical segment size.
func (m *MappedBuffer) SegmentSize() int64 {
	return m.table.segmentSize
}

// Segments returns the number of native mappings backing the buffer.
func (m *MappedBuffer) Segments() int {
	return len(m.table.segs)
}

// Force flushes dirty pages of every segment to the backing file and blocks
// until the flushes complete. It is a no-op on read-only buffers. Durability
// of writes is only guaranteed after Force returns.
func (m *MappedBuffer) Force(ctx context.Context) error {
	if m.table.closed.Load() {
		return ErrClosed
	}
	if !m.table.writable {
		return nil
	}
	return m.table.sync(ctx)
}

// Close unmaps all segments. It is idempotent. Closing invalidates every
// clone as well: the closed state lives in the shared segment table, so
// subsequent access through any clone fails with ErrClosed instead of
// touching unmapped pages.
func (m *MappedBuffer) Close() error {
	return m.table.close()
}

// window resolves [off, off+n) to a slice of the owning segment's mapped
// span. The overlap window guarantees the whole range lies within a single
// segment because n is capped at the segment size, so bounds-checking
// against capacity is the only range validation needed. Checks run in a
// fixed order: closed state, then span, then range.
func (m *MappedBuffer) window(off int64, n int) ([]byte, error) {
	if m.table.closed.Load() {
		return nil, ErrClosed
	}
	if int64(n) > m.table.segmentSize {
		return nil, ErrSpanTooLarge
	}
	// The subtraction form avoids int64 overflow for offsets near MaxInt64.
	if off < 0 || n < 0 || off > m.table.size || int64(n) > m.table.size-off {
		return nil, &OutOfRangeError{Offset: off, Length: n, Capacity: m.table.size}
	}
	if n == 0 {
		// Avoid resolving off == size on an empty access.
		return []byte{}, nil
	}

	seg, local := m.table.resolve(off)
	if seg != m.curSeg || m.curView == nil {
		m.curSeg = seg
		m.curView = m.table.views[seg]
	}
	return m.curView[local : local+int64(n)], nil
}

func (m *MappedBuffer) writable(off int64, n int) ([]byte, error) {
	if m.table.closed.Load() {
		return nil, ErrClosed
	}
	if !m.table.writable {
		return nil, ErrReadOnly
	}
	return m.window(off, n)
}

// Get returns the byte at off.
func (m *MappedBuffer) Get(off int64) (byte, error) {
	w, err := m.window(off, 1)
	if err != nil {
		return 0, err
	}
	return w[0], nil
}

// Put stores v at off.
func (m *MappedBuffer) Put(off int64, v byte) error {
	w, err := m.writable(off, 1)
	if err != nil {
		return err
	}
	w[0] = v
	return nil
}

// GetInt16 returns the 16-bit integer at off.
func (m *MappedBuffer) GetInt16(off int64) (int16, error) {
	w, err := m.window(off, 2)
	if err != nil {
		return 0, err
	}
	return int16(m.order.Uint16(w)), nil
}

// PutInt16 stores v at off.
func (m *MappedBuffer) PutInt16(off int64, v int16) error {
	w, err := m.writable(off, 2)
	if err != nil {
		return err
	}
	m.order.PutUint16(w, uint16(v))
	return nil
}

// GetUint16 returns the unsigned 16-bit integer at off.
func (m *MappedBuffer) GetUint16(off int64) (uint16, error) {
	w, err := m.window(off, 2)
	if err != nil {
		return 0, err
	}
	return m.order.Uint16(w), nil
}

// PutUint16 stores v at off.
func (m *MappedBuffer) PutUint16(off int64, v uint16) error {
	w, err := m.writable(off, 2)
	if err != nil {
		return err
	}
	m.order.PutUint16(w, v)
	return nil
}

// GetInt32 returns the 32-bit integer at off.
func (m *MappedBuffer) GetInt32(off int64) (int32, error) {
	w, err := m.window(off, 4)
	if err != nil {
		return 0, err
	}
	return int32(m.order.Uint32(w)), nil
}

// PutInt32 stores v at off.
func (m *MappedBuffer) PutInt32(off int64, v int32) error {
	w, err := m.writable(off, 4)
	if err != nil {
		return err
	}
	m.order.PutUint32(w, uint32(v))
	return nil
}

// GetInt64 returns the 64-bit integer at off.
func (m *MappedBuffer) GetInt64(off int64) (int64, error) {
	w, err := m.window(off, 8)
	if err != nil {
		return 0, err
	}
	return int64(m.order.Uint64(w)), nil
}

// PutInt64 stores v at off.
func (m *MappedBuffer) PutInt64(off int64, v int64) error {
	w, err := m.writable(off, 8)
	if err != nil {
		return err
	}
	m.order.PutUint64(w, uint64(v))
	return nil
}

// GetFloat32 returns the 32-bit float at off.
func (m *MappedBuffer) GetFloat32(off int64) (float32, error) {
	w, err := m.window(off, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(m.order.Uint32(w)), nil
}

// PutFloat32 stores v at off.
func (m *MappedBuffer) PutFloat32(off int64, v float32) error {
	w, err := m.writable(off, 4)
	if err != nil {
		return err
	}
	m.order.PutUint32(w, math.Float32bits(v))
	return nil
}

// GetFloat64 returns the 64-bit float at off.
func (m *MappedBuffer) GetFloat64(off int64) (float64, error) {
	w, err := m.window(off, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(m.order.Uint64(w)), nil
}

// PutFloat64 stores v at off.
func (m *MappedBuffer) PutFloat64(off int64, v float64) error {
	w, err := m.writable(off, 8)
	if err != nil {
		return err
	}
	m.order.PutUint64(w, math.Float64bits(v))
	return nil
}

// GetBytes returns a copy of n bytes starting at off. n must not exceed the
// segment size; use ReadAt for larger copies.
func (m *MappedBuffer) GetBytes(off int64, n int) ([]byte, error) {
	w, err := m.window(off, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, w)
	return out, nil
}

// PutBytes copies p into the buffer starting at off. len(p) must not exceed
// the segment size; use WriteAt for larger copies.
func (m *MappedBuffer) PutBytes(off int64, p []byte) error {
	w, err := m.writable(off, len(p))
	if err != nil {
		return err
	}
	copy(w, p)
	return nil
}

// Slice returns a view into the mapped pages starting at off and extending
// to the end of the resolved segment's mapped span (up to 2*SegmentSize - 1
// bytes, never past end of file). The view aliases the mapping: it does not
// extend the buffer's lifetime and must not be used after Close.
func (m *MappedBuffer) Slice(off int64) ([]byte, error) {
	if m.table.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || off >= m.table.size {
		return nil, &OutOfRangeError{Offset: off, Capacity: m.table.size}
	}

	seg, local := m.table.resolve(off)
	return m.table.views[seg][local:], nil
}
