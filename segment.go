package mmapbuf

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/mmapbuf/internal/ioutil"
	"github.com/hupe1980/mmapbuf/internal/mmap"
)

const (
	// MaxSegmentSize is the hard ceiling on the logical segment size. Each
	// native mapping spans up to twice the segment size (the overlap window),
	// so this keeps every intra-segment position comfortably inside the
	// 32-bit range native mapping positions must fit.
	MaxSegmentSize = 1 << 27

	// DefaultSegmentSize is used when WithSegmentSize is not given.
	DefaultSegmentSize = MaxSegmentSize

	// MinSegmentSize is the floor on the logical segment size: the width of
	// the largest supported scalar. Below it a typed access could run past a
	// segment's mapped span even when the overlap invariant holds.
	MinSegmentSize = 8
)

// segmentTable holds the ordered set of native mappings covering a file.
// Segment i covers file bytes [i*segmentSize, i*segmentSize+span) where span
// is min(2*segmentSize, size-i*segmentSize): every segment except possibly
// the last overlaps its successor by one segmentSize, so any access of up to
// segmentSize bytes starting in segment i's primary range lies entirely
// within segment i's mapped span.
//
// The table is shared by all clones of a MappedBuffer; it is read-only after
// construction apart from the closed flag.
type segmentTable struct {
	path        string
	writable    bool
	segmentSize int64
	size        int64
	segs        []*mmap.Mapping
	views       [][]byte
	closed      atomic.Bool
	logger      *Logger
}

func newSegmentTable(path string, opts options) (*segmentTable, error) {
	if opts.segmentSize < MinSegmentSize {
		return nil, fmt.Errorf("%w: %d < %d", ErrInvalidSegmentSize, opts.segmentSize, MinSegmentSize)
	}
	if opts.segmentSize > MaxSegmentSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrSegmentSizeTooLarge, opts.segmentSize, MaxSegmentSize)
	}

	flag := os.O_RDONLY
	if opts.writable {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("mmapbuf: open: %w", err)
	}
	// The mappings persist independently of the open handle.
	defer ioutil.CloseQuietly(f)

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("mmapbuf: stat: %w", err)
	}

	t := &segmentTable{
		path:        path,
		writable:    opts.writable,
		segmentSize: opts.segmentSize,
		size:        fi.Size(),
		logger:      opts.logger.WithPath(path),
	}

	for off := int64(0); off < t.size; off += t.segmentSize {
		span := t.size - off
		if span > 2*t.segmentSize {
			span = 2 * t.segmentSize
		}

		m, err := mmap.Map(f, off, int(span), opts.writable)
		if err != nil {
			t.release()
			return nil, fmt.Errorf("mmapbuf: map segment %d: %w", len(t.segs), err)
		}
		if opts.pattern != AccessDefault {
			// Advisory only; an exotic kernel refusing the hint is not a
			// reason to fail construction.
			if aerr := m.Advise(osPattern(opts.pattern)); aerr != nil {
				t.logger.WithSegment(len(t.segs)).Warn("madvise failed", "error", aerr)
			}
		}

		t.segs = append(t.segs, m)
		t.views = append(t.views, m.Bytes())
	}

	t.logger.Debug("file mapped",
		"size", t.size,
		"segment_size", t.segmentSize,
		"segments", len(t.segs),
		"writable", t.writable,
	)

	return t, nil
}

// resolve maps a global offset to (segment index, intra-segment position).
// The caller must have bounds-checked off already.
func (t *segmentTable) resolve(off int64) (int, int64) {
	return int(off / t.segmentSize), off % t.segmentSize
}

// sync flushes every segment's dirty pages to the backing file. Segments are
// flushed in parallel; the first error wins.
func (t *segmentTable) sync(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	// Limit concurrency so a many-segment buffer does not flood the disk
	// with msync calls.
	g.SetLimit(16)

	for _, s := range t.segs {
		s := s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.Sync()
		})
	}

	return g.Wait()
}

// close unmaps every segment. It is idempotent; the first unmap error wins.
func (t *segmentTable) close() error {
	if t.closed.Swap(true) {
		return nil // Already closed
	}

	var firstErr error
	for i, s := range t.segs {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("mmapbuf: unmap segment %d: %w", i, err)
		}
	}
	return firstErr
}

// release tears down a partially built table after a construction failure.
// Best effort: failures are logged, never escalated over the original error.
func (t *segmentTable) release() {
	for i, s := range t.segs {
		if err := s.Close(); err != nil {
			t.logger.WithSegment(i).Warn("cleanup unmap failed", "error", err)
		}
	}
	t.segs = nil
	t.views = nil
}

func osPattern(p AccessPattern) mmap.AccessPattern {
	switch p {
	case AccessSequential:
		return mmap.AccessSequential
	case AccessRandom:
		return mmap.AccessRandom
	case AccessWillNeed:
		return mmap.AccessWillNeed
	case AccessDontNeed:
		return mmap.AccessDontNeed
	default:
		return mmap.AccessDefault
	}
}
