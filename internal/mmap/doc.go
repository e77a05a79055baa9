// Package mmap provides memory-mapped file regions for zero-copy I/O.
//
// # Overview
//
// A Mapping covers a bounded span of a file starting at an arbitrary byte
// offset. The OS requires mapping offsets to be page-aligned (allocation-
// granularity-aligned on Windows), so the package maps from the nearest
// aligned offset below the requested one and exposes a trimmed view; callers
// never see the alignment slack.
//
// # Usage
//
//	m, err := mmap.Map(f, offset, length, true)
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy access to the mapped span
//	data := m.Bytes()
//
//	// Flush dirty pages to the backing file
//	err = m.Sync()
//
//	// Provide kernel hints for access patterns
//	m.Advise(mmap.AccessRandom)
//
// # Platform Support
//
// The package provides a unified API across platforms:
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with msync(2) and madvise(2)
//   - Windows: Uses CreateFileMapping/MapViewOfFile with FlushViewOfFile
//     (madvise is a no-op)
//
// # Thread Safety
//
// A Mapping is safe for concurrent read access. Close() is idempotent and
// protected by atomic operations. Callers must ensure no goroutines access
// Bytes() after Close() returns.
package mmap
