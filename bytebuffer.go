package mmapbuf

import (
	"encoding/binary"
	"math"
)

// ByteBuffer is the simple, non-segmented Buffer implementation over a byte
// slice. It follows the same bounds and byte-order semantics as MappedBuffer
// and is handy as an in-memory stand-in where no file backing is needed.
type ByteBuffer struct {
	data  []byte
	order binary.ByteOrder
}

// NewByteBuffer returns a ByteBuffer over a fresh zeroed slice of the given
// size, little-endian by default.
func NewByteBuffer(size int) *ByteBuffer {
	return WrapBytes(make([]byte, size))
}

// WrapBytes returns a ByteBuffer over p. The buffer aliases p; writes through
// either are visible to both.
func WrapBytes(p []byte) *ByteBuffer {
	return &ByteBuffer{
		data:  p,
		order: binary.LittleEndian,
	}
}

// SetByteOrder sets the byte order for multi-byte scalar access.
func (b *ByteBuffer) SetByteOrder(order binary.ByteOrder) {
	if order == nil {
		order = binary.LittleEndian
	}
	b.order = order
}

// Duplicate returns an independent ByteBuffer sharing the same backing slice.
func (b *ByteBuffer) Duplicate() Buffer {
	return &ByteBuffer{
		data:  b.data,
		order: b.order,
	}
}

func (b *ByteBuffer) window(off int64, n int) ([]byte, error) {
	size := int64(len(b.data))
	// The subtraction form avoids int64 overflow for offsets near MaxInt64.
	if off < 0 || n < 0 || off > size || int64(n) > size-off {
		return nil, &OutOfRangeError{Offset: off, Length: n, Capacity: size}
	}
	return b.data[off : off+int64(n)], nil
}

// Get returns the byte at off.
func (b *ByteBuffer) Get(off int64) (byte, error) {
	w, err := b.window(off, 1)
	if err != nil {
		return 0, err
	}
	return w[0], nil
}

// Put stores v at off.
func (b *ByteBuffer) Put(off int64, v byte) error {
	w, err := b.window(off, 1)
	if err != nil {
		return err
	}
	w[0] = v
	return nil
}

// GetInt16 returns the 16-bit integer at off.
func (b *ByteBuffer) GetInt16(off int64) (int16, error) {
	w, err := b.window(off, 2)
	if err != nil {
		return 0, err
	}
	return int16(b.order.Uint16(w)), nil
}

// PutInt16 stores v at off.
func (b *ByteBuffer) PutInt16(off int64, v int16) error {
	w, err := b.window(off, 2)
	if err != nil {
		return err
	}
	b.order.PutUint16(w, uint16(v))
	return nil
}

// GetUint16 returns the unsigned 16-bit integer at off.
func (b *ByteBuffer) GetUint16(off int64) (uint16, error) {
	w, err := b.window(off, 2)
	if err != nil {
		return 0, err
	}
	return b.order.Uint16(w), nil
}

// PutUint16 stores v at off.
func (b *ByteBuffer) PutUint16(off int64, v uint16) error {
	w, err := b.window(off, 2)
	if err != nil {
		return err
	}
	b.order.PutUint16(w, v)
	return nil
}

// GetInt32 returns the 32-bit integer at off.
func (b *ByteBuffer) GetInt32(off int64) (int32, error) {
	w, err := b.window(off, 4)
	if err != nil {
		return 0, err
	}
	return int32(b.order.Uint32(w)), nil
}

// PutInt32 stores v at off.
func (b *ByteBuffer) PutInt32(off int64, v int32) error {
	w, err := b.window(off, 4)
	if err != nil {
		return err
	}
	b.order.PutUint32(w, uint32(v))
	return nil
}

// GetInt64 returns the 64-bit integer at off.
func (b *ByteBuffer) GetInt64(off int64) (int64, error) {
	w, err := b.window(off, 8)
	if err != nil {
		return 0, err
	}
	return int64(b.order.Uint64(w)), nil
}

// PutInt64 stores v at off.
func (b *ByteBuffer) PutInt64(off int64, v int64) error {
	w, err := b.window(off, 8)
	if err != nil {
		return err
	}
	b.order.PutUint64(w, uint64(v))
	return nil
}

// GetFloat32 returns the 32-bit float at off.
func (b *ByteBuffer) GetFloat32(off int64) (float32, error) {
	w, err := b.window(off, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(b.order.Uint32(w)), nil
}

// PutFloat32 stores v at off.
func (b *ByteBuffer) PutFloat32(off int64, v float32) error {
	w, err := b.window(off, 4)
	if err != nil {
		return err
	}
	b.order.PutUint32(w, math.Float32bits(v))
	return nil
}

// GetFloat64 returns the 64-bit float at off.
func (b *ByteBuffer) GetFloat64(off int64) (float64, error) {
	w, err := b.window(off, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(b.order.Uint64(w)), nil
}

// PutFloat64 stores v at off.
func (b *ByteBuffer) PutFloat64(off int64, v float64) error {
	w, err := b.window(off, 8)
	if err != nil {
		return err
	}
	b.order.PutUint64(w, math.Float64bits(v))
	return nil
}

// GetBytes returns a copy of n bytes starting at off.
func (b *ByteBuffer) GetBytes(off int64, n int) ([]byte, error) {
	w, err := b.window(off, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, w)
	return out, nil
}

// PutBytes copies p into the buffer starting at off.
func (b *ByteBuffer) PutBytes(off int64, p []byte) error {
	w, err := b.window(off, len(p))
	if err != nil {
		return err
	}
	copy(w, p)
	return nil
}

// Slice returns a view of the backing slice from off to the end.
func (b *ByteBuffer) Slice(off int64) ([]byte, error) {
	if off < 0 || off > int64(len(b.data)) {
		return nil, &OutOfRangeError{Offset: off, Capacity: int64(len(b.data))}
	}
	return b.data[off:], nil
}

// Capacity returns the length of the backing slice.
func (b *ByteBuffer) Capacity() int64 {
	return int64(len(b.data))
}
