package mmapbuf

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when an operation is attempted on a buffer that
	// has been closed. Clones share the closed state of their parent.
	ErrClosed = errors.New("mmapbuf: buffer is closed")

	// ErrReadOnly is returned when a write is attempted on a buffer that was
	// opened without write access.
	ErrReadOnly = errors.New("mmapbuf: buffer is read-only")

	// ErrSpanTooLarge is returned when a single contiguous access requests
	// more than one segment size worth of bytes. Use ReadAt/WriteAt for
	// larger copies; those stitch across segments.
	ErrSpanTooLarge = errors.New("mmapbuf: access span exceeds segment size")

	// ErrInvalidSegmentSize is returned when the configured segment size is
	// smaller than MinSegmentSize.
	ErrInvalidSegmentSize = errors.New("mmapbuf: invalid segment size")

	// ErrSegmentSizeTooLarge is returned when the configured segment size
	// exceeds MaxSegmentSize.
	ErrSegmentSizeTooLarge = errors.New("mmapbuf: segment size exceeds maximum")
)

// OutOfRangeError indicates an access outside the buffer's capacity.
type OutOfRangeError struct {
	Offset   int64
	Length   int
	Capacity int64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("mmapbuf: access [%d, %d) out of range, capacity %d",
		e.Offset, e.Offset+int64(e.Length), e.Capacity)
}
