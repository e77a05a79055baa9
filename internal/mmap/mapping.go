package mmap

import (
	"os"
	"sync/atomic"
)

// Mapping represents one native memory mapping over a span of a file.
// It owns the underlying pages and is responsible for unmapping them.
type Mapping struct {
	// raw is the slice as returned by the OS, starting at an aligned offset.
	// Unmap, sync and advise must operate on raw, never on view.
	raw      []byte
	view     []byte
	writable bool
	closed   atomic.Bool
}

// Map maps length bytes of f starting at offset. The span must lie entirely
// within the file. If writable is true the mapping is shared read-write and
// stores propagate to the file; otherwise writes to the view fault.
func Map(f *os.File, offset int64, length int, writable bool) (*Mapping, error) {
	if offset < 0 {
		return nil, ErrInvalidOffset
	}
	if length <= 0 {
		return nil, ErrInvalidSize
	}

	raw, view, err := osMap(f, offset, length, writable)
	if err != nil {
		return nil, err
	}

	return &Mapping{
		raw:      raw,
		view:     view,
		writable: writable,
	}, nil
}

// Bytes returns the mapped span.
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.view
}

// Len returns the length of the mapped span in bytes.
func (m *Mapping) Len() int {
	return len(m.view)
}

// Writable reports whether stores through the mapping reach the file.
func (m *Mapping) Writable() bool {
	return m.writable
}

// Sync flushes dirty pages to the backing file and blocks until the flush
// completes. It is a no-op for read-only mappings.
func (m *Mapping) Sync() error {
	if m.closed.Load() {
		return ErrClosed
	}
	if !m.writable || len(m.raw) == 0 {
		return nil
	}
	return osSync(m.raw)
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if len(m.raw) == 0 {
		return nil
	}
	return osAdvise(m.raw, pattern)
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.raw == nil {
		return nil
	}
	err := osUnmap(m.raw)
	m.raw = nil
	m.view = nil
	return err
}
