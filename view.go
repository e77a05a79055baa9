package mmapbuf

// Wrap returns a view of target whose offsets are shifted by a fixed
// relocation base: every operation on the view at offset i reaches the
// target at i+base, and Capacity reports the space remaining past the base.
// Several views with different bases can share one physical buffer and one
// addressing scheme.
//
// A base of zero returns target unchanged; the target already implements the
// full capability set, so an indirection layer would buy nothing.
//
// The view is stateless and performs no validation of its own: out-of-range
// arithmetic is reported by the target.
func Wrap(target Buffer, base int64) Buffer {
	if base == 0 {
		return target
	}
	return &offsetBuffer{
		target: target,
		base:   base,
	}
}

type offsetBuffer struct {
	target Buffer
	base   int64
}

// Duplicate rewraps a duplicate of the target when the target supports
// duplication; otherwise the view itself is returned, which is safe because
// the view holds no mutable state of its own.
func (o *offsetBuffer) Duplicate() Buffer {
	if d, ok := o.target.(Duplicator); ok {
		return Wrap(d.Duplicate(), o.base)
	}
	return o
}

func (o *offsetBuffer) Get(off int64) (byte, error) { return o.target.Get(off + o.base) }
func (o *offsetBuffer) Put(off int64, v byte) error { return o.target.Put(off+o.base, v) }
func (o *offsetBuffer) GetInt16(off int64) (int16, error) {
	return o.target.GetInt16(off + o.base)
}
func (o *offsetBuffer) PutInt16(off int64, v int16) error {
	return o.target.PutInt16(off+o.base, v)
}
func (o *offsetBuffer) GetUint16(off int64) (uint16, error) {
	return o.target.GetUint16(off + o.base)
}
func (o *offsetBuffer) PutUint16(off int64, v uint16) error {
	return o.target.PutUint16(off+o.base, v)
}
func (o *offsetBuffer) GetInt32(off int64) (int32, error) {
	return o.target.GetInt32(off + o.base)
}
func (o *offsetBuffer) PutInt32(off int64, v int32) error {
	return o.target.PutInt32(off+o.base, v)
}
func (o *offsetBuffer) GetInt64(off int64) (int64, error) {
	return o.target.GetInt64(off + o.base)
}
func (o *offsetBuffer) PutInt64(off int64, v int64) error {
	return o.target.PutInt64(off+o.base, v)
}
func (o *offsetBuffer) GetFloat32(off int64) (float32, error) {
	return o.target.GetFloat32(off + o.base)
}
func (o *offsetBuffer) PutFloat32(off int64, v float32) error {
	return o.target.PutFloat32(off+o.base, v)
}
func (o *offsetBuffer) GetFloat64(off int64) (float64, error) {
	return o.target.GetFloat64(off + o.base)
}
func (o *offsetBuffer) PutFloat64(off int64, v float64) error {
	return o.target.PutFloat64(off+o.base, v)
}
func (o *offsetBuffer) GetBytes(off int64, n int) ([]byte, error) {
	return o.target.GetBytes(off+o.base, n)
}
func (o *offsetBuffer) PutBytes(off int64, p []byte) error {
	return o.target.PutBytes(off+o.base, p)
}
func (o *offsetBuffer) Slice(off int64) ([]byte, error) {
	return o.target.Slice(off + o.base)
}

func (o *offsetBuffer) Capacity() int64 {
	return o.target.Capacity() - o.base
}
