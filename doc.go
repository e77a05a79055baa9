// Package mmapbuf provides segmented memory-mapped buffers for files larger
// than a single native mapping can address.
//
// # Overview
//
// Historically a single memory mapping tops out around 2GB on many
// platforms and APIs. mmapbuf splits a file into multiple overlapping native
// mappings ("segments") and exposes them as one logically contiguous,
// randomly addressable byte space with absolute-offset typed access.
//
// Each segment overlaps its successor by one segment size, so any access of
// up to the segment size starting anywhere in a segment's primary range is
// served by a single mapping, even when it straddles the boundary to the
// next segment.
//
// # Quick Start
//
//	buf, err := mmapbuf.Open("data.bin", mmapbuf.WithWritable(true))
//	if err != nil { ... }
//	defer buf.Close()
//
//	// Typed absolute-offset access
//	err = buf.PutInt64(1024, 42)
//	v, err := buf.GetInt64(1024)
//
//	// Flush dirty pages to disk at a checkpoint
//	err = buf.Force(ctx)
//
// # Relocation Base
//
// Wrap shifts every offset by a constant base, letting unrelated code share
// one addressing scheme across different buffer flavors:
//
//	view := mmapbuf.Wrap(buf, 4096)
//	b, _ := view.Get(10) // reads buf at offset 4106
//
// # Concurrency
//
// A MappedBuffer carries per-instance cursor state and must not be shared
// across goroutines. Clone() produces an independent instance over the same
// mapped pages without re-mapping the file; WrapConcurrent hands every
// operation an exclusive duplicate so many goroutines can use one facade:
//
//	shared := mmapbuf.WrapConcurrent(buf, 0)
//	// safe from any goroutine
//	v, _ := shared.GetInt32(128)
//
// Writes to overlapping offsets are not ordered by this package; concurrent
// writers must coordinate externally.
package mmapbuf
