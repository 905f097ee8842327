// Package options provides data structures and functions for configuring
// an ignite store. It defines the parameters that control the engine's
// durability behavior, active-file rollover threshold, and optional
// background compaction, following a functional-options style so callers
// only need to override what they care about.
package options

import (
	"strings"
	"time"

	"github.com/iamNilotpal/ignite/pkg/errors"
)

// FlushBehavior controls when buffered writes are handed to the operating
// system. It does not control fsync/datasync — see Engine.Sync for that.
type FlushBehavior int

const (
	// AfterEveryWrite flushes the active file's buffered writer after every
	// successful Insert/Remove. This is the default: it bounds how much of
	// a write can be lost to a process crash to the last unflushed write,
	// at the cost of a syscall per write.
	AfterEveryWrite FlushBehavior = iota

	// WhenFull does not flush after each write: buffered bytes reach the OS
	// when the writer's buffer fills, when the active file rolls over, or
	// when the caller calls Flush, Sync or Close. Higher throughput, weaker
	// durability.
	WhenFull
)

// String returns a human-readable name for the flush behavior, primarily
// for structured logging.
func (f FlushBehavior) String() string {
	switch f {
	case AfterEveryWrite:
		return "AfterEveryWrite"
	case WhenFull:
		return "WhenFull"
	default:
		return "Unknown"
	}
}

// Options defines the configuration parameters for an ignite store.
type Options struct {
	// DataDir is the directory holding numbered data files and the active
	// file. ignite.NewInstance creates it if it does not already exist;
	// engine.New expects it to exist.
	//
	// Default: "/var/lib/ignitedb"
	DataDir string `json:"dataDir"`

	// MaxFileSizeBytes is the cumulative size, in bytes, at which the
	// active file rolls over to a freshly allocated FileID. Must be > 0.
	//
	// Default: 256 MiB (2^28)
	MaxFileSizeBytes uint64 `json:"maxFileSizeBytes"`

	// MaxReaders is an advisory upper bound on concurrent read-lock
	// holders. It is validated (must be > 0) but not enforced: the
	// Instance's sync.RWMutex admits any number of concurrent readers.
	//
	// Default: 2^29 - 1
	MaxReaders uint32 `json:"maxReaders"`

	// FlushBehavior controls write durability versus throughput.
	//
	// Default: AfterEveryWrite
	FlushBehavior FlushBehavior `json:"flushBehavior"`

	// CompactInterval, when non-zero, causes the Instance to run a
	// background Merge on this interval until Close is called. Zero
	// disables automatic compaction; callers may still call Merge directly.
	//
	// Default: 0 (disabled)
	CompactInterval time.Duration `json:"compactInterval"`
}

// Validate checks that every field holds a usable value, returning a
// *errors.ValidationError describing the first violation found.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.DataDir) == "" {
		return errors.NewRequiredFieldError("dataDir")
	}
	if o.MaxFileSizeBytes == 0 {
		return errors.NewFieldRangeError("maxFileSizeBytes", o.MaxFileSizeBytes, 1, nil)
	}
	if o.MaxReaders == 0 {
		return errors.NewFieldRangeError("maxReaders", o.MaxReaders, 1, nil)
	}
	if o.FlushBehavior != AfterEveryWrite && o.FlushBehavior != WhenFull {
		return errors.NewConfigurationValidationError("flushBehavior", "must be AfterEveryWrite or WhenFull")
	}
	return nil
}

// OptionFunc is a function type that modifies an ignite store's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions resets every field to its documented default.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		*o = NewDefaultOptions()
	}
}

// WithDataDir sets the directory where data files and the active file live.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithMaxFileSizeBytes sets the active-file rollover threshold.
func WithMaxFileSizeBytes(size uint64) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.MaxFileSizeBytes = size
		}
	}
}

// WithMaxReaders sets the advisory MaxReaders value; it does not limit
// concurrent readers.
func WithMaxReaders(max uint32) OptionFunc {
	return func(o *Options) {
		if max > 0 {
			o.MaxReaders = max
		}
	}
}

// WithFlushBehavior selects the write-durability policy.
func WithFlushBehavior(behavior FlushBehavior) OptionFunc {
	return func(o *Options) {
		o.FlushBehavior = behavior
	}
}

// WithCompactInterval enables background compaction on the given interval.
func WithCompactInterval(interval time.Duration) OptionFunc {
	return func(o *Options) {
		if interval > 0 {
			o.CompactInterval = interval
		}
	}
}
