// Package ignite provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an in-memory hash table (Keydir) with an append-only log
// structure on disk to achieve high throughput. It is designed for applications
// requiring fast read and write operations, such as caching, session management,
// and real-time data processing, aiming to provide a simple, efficient, and
// reliable solution for persistent key/value storage in Go applications.
package ignite

import (
	"context"
	"sync"
	"time"

	"github.com/iamNilotpal/ignite/internal/engine"
	ierrors "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/filesys"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
	"go.uber.org/zap"
)

// Instance is an Ignite key/value store. It encapsulates the core
// engine responsible for data handling and a single reader-writer lock
// that serializes access to it: Get/Keys/ContainsKey take a read lock,
// every other operation takes a write lock, so reads never run
// concurrently with a write against the same Instance. MaxReaders is
// documented in Options but not literally enforceable, since
// sync.RWMutex has no reader cap.
//
// Instance is the primary entry point for interacting with the Ignite store,
// providing methods for setting, getting, and deleting key-value pairs.
type Instance struct {
	mu      sync.RWMutex
	engine  *engine.Engine
	options *options.Options
	log     *zap.SugaredLogger

	stopCompaction chan struct{}
	compactionDone chan struct{}
}

// NewInstance creates and initializes a new Ignite DB instance, running
// open/recovery against options.DataDir.
func NewInstance(ctx context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	resolved := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&resolved)
	}

	if err := filesys.CreateDir(resolved.DataDir, 0o755, true); err != nil {
		return nil, ierrors.ClassifyDirectoryCreationError(err, resolved.DataDir)
	}

	eng, err := engine.New(&engine.Config{Logger: log, Options: &resolved})
	if err != nil {
		return nil, err
	}

	inst := &Instance{engine: eng, options: &resolved, log: log}

	if resolved.CompactInterval > 0 {
		inst.stopCompaction = make(chan struct{})
		inst.compactionDone = make(chan struct{})
		go inst.runCompactionLoop()
	}

	return inst, nil
}

// runCompactionLoop periodically calls Merge until Close stops it. A
// failed merge is logged, not returned, since there is no caller left
// to receive it.
func (i *Instance) runCompactionLoop() {
	defer close(i.compactionDone)

	ticker := time.NewTicker(i.options.CompactInterval)
	defer ticker.Stop()

	for {
		select {
		case <-i.stopCompaction:
			return
		case <-ticker.C:
			if err := i.Merge(); err != nil {
				i.log.Errorw("background compaction failed", "error", err)
			}
		}
	}
}

// Insert stores value under key, encoding it through the store's
// configured Encoder. If the key already exists, its value is
// overwritten.
func (i *Instance) Insert(key string, value any) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.Insert(key, value)
}

// Get decodes key's current value into out. found is false, with a nil
// error, when key has no live entry.
func (i *Instance) Get(key string, out any) (found bool, err error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.engine.Get(key, out)
}

// Remove deletes key. Removing a key that does not exist is a silent no-op.
func (i *Instance) Remove(key string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.Remove(key)
}

// ContainsKey reports whether key currently has a live value.
func (i *Instance) ContainsKey(key string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.engine.ContainsKey(key)
}

// Keys returns every key currently live in the store. The order is unspecified.
func (i *Instance) Keys() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.engine.Keys()
}

// Merge compacts inactive data files, reclaiming space held by
// superseded values and tombstones.
func (i *Instance) Merge() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.Merge()
}

// Flush hands the active file's buffered writes to the OS without
// forcing an fsync.
func (i *Instance) Flush() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.Flush()
}

// Sync flushes the active file and forces the OS to persist it to
// stable storage via fsync.
func (i *Instance) Sync() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.Sync()
}

// Close gracefully shuts down the Ignite DB instance, stopping any
// background compaction loop, flushing pending writes, and closing open
// file handles.
func (i *Instance) Close(ctx context.Context) error {
	if i.stopCompaction != nil {
		close(i.stopCompaction)
		<-i.compactionDone
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	return i.engine.Close()
}
