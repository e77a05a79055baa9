package mmapbuf

import "encoding/binary"

// AccessPattern provides hints to the kernel about how mapped pages will be
// accessed. It is advisory; unsupported platforms ignore it.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed
	// AccessDontNeed expects data to not be accessed in the near future.
	AccessDontNeed
)

type options struct {
	segmentSize int64
	writable    bool
	order       binary.ByteOrder
	pattern     AccessPattern
	logger      *Logger
}

func defaultOptions() options {
	return options{
		segmentSize: DefaultSegmentSize,
		order:       binary.LittleEndian,
		pattern:     AccessDefault,
		logger:      NoopLogger(),
	}
}

// Option configures Open behavior.
type Option func(*options)

// WithSegmentSize sets the logical segment size in bytes. The default is
// DefaultSegmentSize; values above MaxSegmentSize or below MinSegmentSize
// fail Open. Small sizes are mainly useful in tests to exercise segment
// boundaries.
func WithSegmentSize(size int64) Option {
	return func(o *options) {
		o.segmentSize = size
	}
}

// WithWritable opens the mapping read-write. Without it the buffer is
// read-only and every Put fails with ErrReadOnly.
func WithWritable(writable bool) Option {
	return func(o *options) {
		o.writable = writable
	}
}

// WithByteOrder sets the byte order for multi-byte scalar access. The order
// applies uniformly to every segment of the buffer. Default is little-endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(o *options) {
		if order == nil {
			order = binary.LittleEndian
		}
		o.order = order
	}
}

// WithAccessPattern advises the kernel about the expected access pattern for
// all segments at construction time.
func WithAccessPattern(pattern AccessPattern) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, logging stays disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
