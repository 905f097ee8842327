// Package engine implements the single-process storage engine: open and
// crash recovery, the append-only write path, point lookups, and
// compaction. It assumes its caller (pkg/ignite's Handle) serializes
// access with a single reader-writer lock — nothing in this package
// takes a lock of its own.
package engine

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/iamNilotpal/ignite/internal/codec"
	"github.com/iamNilotpal/ignite/internal/keydir"
	"github.com/iamNilotpal/ignite/internal/merge"
	"github.com/iamNilotpal/ignite/internal/record"
	ierrors "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/fileid"
	"github.com/iamNilotpal/ignite/pkg/options"
	atomicfile "github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = errors.New("operation failed: cannot access closed engine")

// Engine is the core database engine: recovery, the write path, reads,
// and compaction. It is not safe for concurrent use on its own.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger
	encoder codec.Encoder
	closed  atomic.Bool

	dataDir   string
	keydir    *keydir.Keydir
	tombstone []byte

	txCounter record.TxID

	activeFileID uint32
	activeFile   *os.File
	activeWriter *bufio.Writer
	offset       int64
}

// New opens (and, if necessary, recovers) an Engine rooted at
// config.Options.DataDir.
func New(config *Config) (*Engine, error) {
	if err := config.Options.Validate(); err != nil {
		return nil, err
	}

	enc := config.Encoder
	if enc == nil {
		enc = codec.NewGobEncoder()
	}

	dataDir := config.Options.DataDir
	log := config.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	tombstone, err := codec.NewTombstoneCache(enc).Bytes()
	if err != nil {
		return nil, err
	}

	if err := recoverMergeSidecars(dataDir, log); err != nil {
		return nil, err
	}

	fileIDs, err := fileid.All(dataDir)
	if err != nil {
		return nil, ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to list data directory").
			WithPath(dataDir)
	}

	entries, err := keydir.LoadLatestEntries(dataDir, fileIDs, tombstone)
	if err != nil {
		return nil, err
	}

	live := make(map[string]keydir.EntryPointer, len(entries))
	for key, entry := range entries {
		if entry.Liveness == keydir.Live {
			live[key] = entry.Entry
		}
	}
	kd := keydir.New(live)

	txCounter := record.Zero
	if latest, ok := kd.LatestTxID(); ok {
		txCounter = latest
	}
	txCounter = txCounter.Next()

	var latestFileID uint32
	if len(fileIDs) > 0 {
		latestFileID = fileIDs[len(fileIDs)-1]
	}
	activeFileID := latestFileID + 1

	activeFile, err := createActiveFile(dataDir, activeFileID)
	if err != nil {
		return nil, err
	}

	eng := &Engine{
		options:      config.Options,
		log:          log,
		encoder:      enc,
		dataDir:      dataDir,
		keydir:       kd,
		tombstone:    tombstone,
		txCounter:    txCounter,
		activeFileID: activeFileID,
		activeFile:   activeFile,
		activeWriter: bufio.NewWriter(activeFile),
	}

	log.Infow("engine opened", "dataDir", dataDir, "activeFileID", activeFileID, "liveKeys", kd.Len())
	return eng, nil
}

func createActiveFile(dataDir string, id uint32) (*os.File, error) {
	name := fileid.Name(id)
	path := filepath.Join(dataDir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, ierrors.ClassifyFileOpenError(err, path, name)
	}
	return f, nil
}

// recoverMergeSidecars resolves any ".merge" file left over from a
// merge that crashed between removing inactive files and renaming the
// sidecar into place: if the sidecar's stem data file still exists,
// the rename never logically completed — delete the stale sidecar. If
// the stem is absent, the rename completed logically but not
// physically — finish it now.
func recoverMergeSidecars(dataDir string, log *zap.SugaredLogger) error {
	names, err := fileid.MergeFiles(dataDir)
	if err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to list merge sidecar files").
			WithPath(dataDir)
	}

	for _, name := range names {
		id, ok := fileid.ParseMergeStem(name)
		if !ok {
			continue
		}

		sidecarPath := filepath.Join(dataDir, name)
		stemPath := filepath.Join(dataDir, fileid.Name(id))

		if _, err := os.Stat(stemPath); err == nil {
			if err := os.Remove(sidecarPath); err != nil {
				return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to remove stale merge sidecar").
					WithPath(sidecarPath)
			}
			log.Warnw("removed stale merge sidecar left by an interrupted merge", "path", sidecarPath)
			continue
		} else if !os.IsNotExist(err) {
			return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to stat merge stem file").
				WithPath(stemPath)
		}

		if err := atomicfile.ReplaceFile(sidecarPath, stemPath); err != nil {
			return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to complete interrupted merge rename").
				WithPath(sidecarPath)
		}
		log.Warnw("completed interrupted merge rename", "from", sidecarPath, "to", stemPath)
	}

	return nil
}

// Insert stores value under key, encoding both through the configured
// Encoder, and assigns it the next TxID.
func (e *Engine) Insert(key string, value any) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	valueBytes, err := e.encoder.Encode(value)
	if err != nil {
		return err
	}

	ptr, err := e.appendRecord([]byte(key), valueBytes)
	if err != nil {
		return err
	}

	e.keydir.Insert(key, ptr)
	return e.afterWrite()
}

// Remove deletes key, appending a tombstone record. Removing a key
// that is not present is a silent no-op: no tombstone is appended.
func (e *Engine) Remove(key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	if !e.keydir.ContainsKey(key) {
		return nil
	}

	if _, err := e.appendRecord([]byte(key), e.tombstone); err != nil {
		return err
	}

	e.keydir.Remove(key)
	return e.afterWrite()
}

// appendRecord increments the TxID counter, builds and appends a
// Record to the active file, and returns the EntryPointer describing
// where the value now lives. It does not touch the Keydir or roll the
// file over — callers decide whether to keep or discard the pointer
// (Insert keeps it, merge callers never call this directly).
func (e *Engine) appendRecord(keyBytes, valueBytes []byte) (keydir.EntryPointer, error) {
	e.txCounter = e.txCounter.Next()

	rec, err := record.New(keyBytes, valueBytes, e.txCounter)
	if err != nil {
		return keydir.EntryPointer{}, err
	}

	if _, err := e.activeWriter.Write(rec.Bytes()); err != nil {
		return keydir.EntryPointer{}, ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to append record to active file").
			WithFileName(fileid.Name(e.activeFileID)).
			WithFileID(e.activeFileID)
	}

	valuePos := e.offset + int64(record.HeaderSize) + int64(len(keyBytes))
	ptr := keydir.EntryPointer{
		FileID:        e.activeFileID,
		ValuePosition: valuePos,
		ValueSize:     uint32(len(valueBytes)),
		TxID:          e.txCounter,
	}

	e.offset += int64(rec.Len())
	return ptr, nil
}

// afterWrite implements the rollover and durability steps that follow
// every successful append, regardless of whether it was an insert or a
// tombstone.
func (e *Engine) afterWrite() error {
	if uint64(e.offset) >= e.options.MaxFileSizeBytes {
		if err := e.rollover(); err != nil {
			return err
		}
	}

	if e.options.FlushBehavior == options.AfterEveryWrite {
		return e.Flush()
	}
	return nil
}

func (e *Engine) rollover() error {
	if err := e.activeWriter.Flush(); err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to flush active file before rollover")
	}
	if err := e.activeFile.Close(); err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to close active file before rollover")
	}

	e.activeFileID++
	f, err := createActiveFile(e.dataDir, e.activeFileID)
	if err != nil {
		return err
	}

	e.activeFile = f
	e.activeWriter = bufio.NewWriter(f)
	e.offset = 0
	e.log.Infow("active file rolled over", "newActiveFileID", e.activeFileID)
	return nil
}

// Get decodes key's current value into out. found is false, with a nil
// error, if key has no live entry.
func (e *Engine) Get(key string, out any) (found bool, err error) {
	if e.closed.Load() {
		return false, ErrEngineClosed
	}

	ptr, ok := e.keydir.Get(key)
	if !ok {
		return false, nil
	}

	name := fileid.Name(ptr.FileID)
	path := filepath.Join(e.dataDir, name)
	f, err := os.Open(path)
	if err != nil {
		return false, ierrors.ClassifyFileOpenError(err, path, name)
	}
	defer f.Close()

	buf := make([]byte, ptr.ValueSize)
	if _, err := f.ReadAt(buf, ptr.ValuePosition); err != nil {
		return false, ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to read value bytes").
			WithPath(path).
			WithFileID(ptr.FileID).
			WithOffset(int(ptr.ValuePosition))
	}

	if err := e.encoder.Decode(buf, out); err != nil {
		return false, err
	}
	return true, nil
}

// ContainsKey reports whether key has a live entry.
func (e *Engine) ContainsKey(key string) bool {
	return e.keydir.ContainsKey(key)
}

// Keys returns every currently live key.
func (e *Engine) Keys() []string {
	return e.keydir.Keys()
}

// Merge compacts every inactive data file, reclaiming space held by
// superseded values and tombstones.
func (e *Engine) Merge() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	fileIDs, err := fileid.All(e.dataDir)
	if err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to list data directory for merge").
			WithPath(e.dataDir)
	}

	inactive := make([]uint32, 0, len(fileIDs))
	for _, id := range fileIDs {
		if id != e.activeFileID {
			inactive = append(inactive, id)
		}
	}

	return merge.Run(merge.Config{
		DataDir:          e.dataDir,
		InactiveFileIDs:  inactive,
		Keydir:           e.keydir,
		MaxFileSizeBytes: e.options.MaxFileSizeBytes,
		Tombstone:        e.tombstone,
		Logger:           e.log,
	})
}

// Flush hands the active file's buffered bytes to the OS. This is not
// an fsync: see Sync for durability past the OS page cache.
func (e *Engine) Flush() error {
	if err := e.activeWriter.Flush(); err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to flush active file")
	}
	return nil
}

// Sync flushes the active file's buffer and then calls File.Sync to
// force the OS to persist it to stable storage.
func (e *Engine) Sync() error {
	if err := e.Flush(); err != nil {
		return err
	}
	if err := e.activeFile.Sync(); err != nil {
		return ierrors.ClassifySyncError(err, fileid.Name(e.activeFileID), e.dataDir, int(e.offset))
	}
	return nil
}

// Close flushes and closes the active file. Close is idempotent: a
// second call returns ErrEngineClosed.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	if err := e.activeWriter.Flush(); err != nil {
		e.activeFile.Close()
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to flush active file on close")
	}
	if err := e.activeFile.Close(); err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to close active file")
	}
	return nil
}
