//go:build unix || linux || darwin || freebsd || openbsd || netbsd

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

func osMap(f *os.File, offset int64, length int, writable bool) (raw, view []byte, err error) {
	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}

	// mmap(2) requires a page-aligned offset. Map from the aligned offset
	// below and trim the slack off the front of the view.
	align := int64(os.Getpagesize())
	aligned := offset &^ (align - 1)
	slack := int(offset - aligned)

	raw, err = unix.Mmap(int(f.Fd()), aligned, slack+length, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}

	return raw, raw[slack : slack+length], nil
}

func osUnmap(raw []byte) error {
	return unix.Munmap(raw)
}

func osSync(raw []byte) error {
	return unix.Msync(raw, unix.MS_SYNC)
}

func osAdvise(raw []byte, pattern AccessPattern) error {
	var advice int
	switch pattern {
	case AccessSequential:
		advice = unix.MADV_SEQUENTIAL
	case AccessRandom:
		advice = unix.MADV_RANDOM
	case AccessWillNeed:
		advice = unix.MADV_WILLNEED
	case AccessDontNeed:
		advice = unix.MADV_DONTNEED
	default:
		advice = unix.MADV_NORMAL
	}

	// On Linux, madvise requires page-aligned addresses. raw is always
	// page-aligned, but tolerate EINVAL anyway since the hint is advisory
	// and non-critical.
	err := unix.Madvise(raw, advice)
	if err == unix.EINVAL {
		return nil
	}
	return err
}
