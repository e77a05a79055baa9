package mmapbuf

import "io"

// ReadAt implements io.ReaderAt. Unlike GetBytes it has no span limit: the
// copy is stitched across as many segments as the range touches.
func (m *MappedBuffer) ReadAt(p []byte, off int64) (int, error) {
	if m.table.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, &OutOfRangeError{Offset: off, Length: len(p), Capacity: m.table.size}
	}
	if off >= m.table.size {
		return 0, io.EOF
	}

	n := 0
	for n < len(p) && off < m.table.size {
		seg, local := m.table.resolve(off)
		// Copying into the overlap window is fine: those bytes belong to the
		// same file range as the next segment's primary span.
		c := copy(p[n:], m.table.views[seg][local:])
		n += c
		off += int64(c)
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt, stitching across segments like ReadAt.
// A write that runs past the end of the file stores what fits and returns
// io.ErrShortWrite.
func (m *MappedBuffer) WriteAt(p []byte, off int64) (int, error) {
	if m.table.closed.Load() {
		return 0, ErrClosed
	}
	if !m.table.writable {
		return 0, ErrReadOnly
	}
	if off < 0 || off > m.table.size {
		return 0, &OutOfRangeError{Offset: off, Length: len(p), Capacity: m.table.size}
	}

	n := 0
	for n < len(p) && off < m.table.size {
		seg, local := m.table.resolve(off)
		c := copy(m.table.views[seg][local:], p[n:])
		n += c
		off += int64(c)
	}
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}
