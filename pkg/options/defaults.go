package options

const (
	// DefaultDataDir specifies the default base directory where an ignite
	// store will keep its data files. Used when no directory is specified
	// during initialization.
	DefaultDataDir = "/var/lib/ignitedb"

	// DefaultMaxFileSizeBytes is the active-file rollover threshold: 256 MiB.
	DefaultMaxFileSizeBytes uint64 = 1 << 28

	// DefaultMaxReaders is the default advisory read-lock holder bound,
	// matching the ceiling used by async reader-writer locks in the source
	// this engine is descended from. It is not enforced.
	DefaultMaxReaders uint32 = 1<<29 - 1

	// DefaultFlushBehavior flushes the active file's buffered writer after
	// every write, trading throughput for a tighter durability bound.
	DefaultFlushBehavior = AfterEveryWrite
)

// defaultOptions holds the default configuration settings for an ignite
// store instance.
var defaultOptions = Options{
	DataDir:          DefaultDataDir,
	MaxFileSizeBytes: DefaultMaxFileSizeBytes,
	MaxReaders:       DefaultMaxReaders,
	FlushBehavior:    DefaultFlushBehavior,
}

// NewDefaultOptions returns a copy of the default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
