package mmapbuf

// Buffer is the capability set shared by segmented and simple buffers:
// absolute-offset typed access, byte ranges, views and capacity. All offsets
// are zero-based and absolute.
//
// Implementations report *OutOfRangeError for accesses outside
// [0, Capacity()) and ErrReadOnly for writes on read-only storage.
type Buffer interface {
	Get(off int64) (byte, error)
	Put(off int64, v byte) error
	GetInt16(off int64) (int16, error)
	PutInt16(off int64, v int16) error
	GetUint16(off int64) (uint16, error)
	PutUint16(off int64, v uint16) error
	GetInt32(off int64) (int32, error)
	PutInt32(off int64, v int32) error
	GetInt64(off int64) (int64, error)
	PutInt64(off int64, v int64) error
	GetFloat32(off int64) (float32, error)
	PutFloat32(off int64, v float32) error
	GetFloat64(off int64) (float64, error)
	PutFloat64(off int64, v float64) error
	GetBytes(off int64, n int) ([]byte, error)
	PutBytes(off int64, p []byte) error

	// Slice returns a view of the underlying storage starting at off. For
	// segmented buffers the view extends to the end of the resolved
	// segment's mapped span, not to the end of the buffer. The view does not
	// extend the buffer's lifetime and is invalid once the buffer is closed.
	Slice(off int64) ([]byte, error)

	// Capacity returns the total addressable size in bytes.
	Capacity() int64
}

var (
	_ Buffer = (*MappedBuffer)(nil)
	_ Buffer = (*ByteBuffer)(nil)
)

// Duplicator is implemented by buffers that can produce an independent
// instance sharing the same backing storage. Writes through one duplicate are
// visible through the others; per-instance cursor state is not shared, which
// is what makes one-duplicate-per-goroutine access safe.
type Duplicator interface {
	Duplicate() Buffer
}
