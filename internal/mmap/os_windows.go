//go:build windows

package mmap

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// MapViewOfFile offsets must be multiples of the system allocation
// granularity, which is 64KiB on every supported Windows version.
const allocationGranularity = 1 << 16

func osMap(f *os.File, offset int64, length int, writable bool) (raw, view []byte, err error) {
	protect := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	if writable {
		protect = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}

	// Map from the aligned offset below and trim the slack off the front
	// of the view.
	aligned := offset &^ (allocationGranularity - 1)
	slack := int(offset - aligned)
	size := slack + length

	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, protect, 0, 0, nil)
	if err != nil {
		return nil, nil, err
	}
	// The view holds a reference to the mapping object, so the handle can be
	// closed immediately after the view is created.
	defer windows.CloseHandle(h)

	addr, err := windows.MapViewOfFile(h, access,
		uint32(uint64(aligned)>>32), uint32(uint64(aligned)&0xFFFFFFFF), uintptr(size))
	if err != nil {
		return nil, nil, err
	}

	raw = unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	return raw, raw[slack : slack+length], nil
}

func osUnmap(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	return windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&raw[0])))
}

func osSync(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	// FlushViewOfFile writes dirty pages to the file system cache and on to
	// the file. The backing file handle is already closed by the time Sync
	// runs, so FlushFileBuffers is not available; the view flush is the
	// strongest guarantee this layer offers on Windows.
	return windows.FlushViewOfFile(uintptr(unsafe.Pointer(&raw[0])), uintptr(len(raw)))
}

func osAdvise(raw []byte, pattern AccessPattern) error {
	// Windows does not have a direct equivalent to madvise.
	// PrefetchVirtualMemory could be used for AccessWillNeed, but requires
	// Windows 8+ and more complex setup. For now, this is a no-op.
	// The OS page cache will still work effectively for sequential access.
	_ = raw
	_ = pattern
	return nil
}
