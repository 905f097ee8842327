package merge

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"

	atomicfile "github.com/natefinch/atomic"

	"github.com/iamNilotpal/ignite/internal/keydir"
	"github.com/iamNilotpal/ignite/internal/record"
	ierrors "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/fileid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Config bundles what Run needs from the engine to perform one
// compaction pass. Run never touches the active file: only files in
// InactiveFileIDs are read, copied, and removed.
type Config struct {
	DataDir          string
	InactiveFileIDs  []uint32
	Keydir           *keydir.Keydir
	MaxFileSizeBytes uint64
	Tombstone        []byte
	Logger           *zap.SugaredLogger
}

// Run performs one compaction pass: every live key still pointed at by
// an inactive file is copied, in sorted key order, into fresh ".merge"
// sidecar files, Keydir is updated to point at the new locations, the
// old inactive files are deleted, and the sidecars are renamed into
// place. A key whose Keydir entry already carries a TxID newer than
// anything found on the inactive files is skipped — the active file
// already holds its current value.
func Run(cfg Config) error {
	if len(cfg.InactiveFileIDs) == 0 {
		return nil
	}

	latest, err := loadLatestPointers(cfg.DataDir, cfg.InactiveFileIDs, cfg.Tombstone)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(latest))
	for key, ptr := range latest {
		if ptr.Liveness == keydir.Live {
			keys = append(keys, key)
			continue
		}

		// The latest record found for key on an inactive file is a
		// tombstone. The live Keydir should already lack an entry for
		// key (Engine.Remove and recovery both drop tombstoned keys
		// immediately), but if one somehow survives and isn't shadowed
		// by a newer active-file write, drop it now rather than leaving
		// it pointing at a file Run is about to delete.
		if entry, ok := cfg.Keydir.Get(key); ok && entry.TxID.Cmp(ptr.TxID) <= 0 {
			cfg.Keydir.Remove(key)
		}
	}
	sort.Strings(keys)

	// recycledIDs supplies filenames for the new ".merge" sidecars. Every
	// inactive file is being deleted by the end of Run, so its numeric ID
	// is free to reuse — this keeps FileIDs from growing unboundedly
	// across repeated merges.
	recycledIDs := append([]uint32(nil), cfg.InactiveFileIDs...)

	var (
		writer      *bufio.Writer
		writeFile   *os.File
		writeFileID uint32
		writeOffset int64
		mergedFiles []string
	)

	closeCurrent := func() error {
		if writeFile == nil {
			return nil
		}
		var errs error
		if err := writer.Flush(); err != nil {
			errs = multierr.Append(errs, err)
		}
		if err := writeFile.Close(); err != nil {
			errs = multierr.Append(errs, err)
		}
		return errs
	}

	rollToNextSidecar := func() error {
		if err := closeCurrent(); err != nil {
			return err
		}
		if len(recycledIDs) == 0 {
			return ierrors.NewStorageError(nil, ierrors.ErrorCodeIO, "ran out of recycled file IDs during merge")
		}

		writeFileID, recycledIDs = recycledIDs[len(recycledIDs)-1], recycledIDs[:len(recycledIDs)-1]
		path := filepath.Join(cfg.DataDir, fileid.MergeName(writeFileID))

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to create merge sidecar file").
				WithPath(path)
		}

		writeFile = f
		writer = bufio.NewWriter(f)
		writeOffset = 0
		mergedFiles = append(mergedFiles, path)
		return nil
	}

	for _, key := range keys {
		ptr := latest[key]

		if entry, ok := cfg.Keydir.Get(key); ok && entry.TxID.Cmp(ptr.TxID) > 0 {
			// The active file already holds a newer write for this key;
			// the merge process never sees the active file, so trust the
			// in-memory Keydir over what was found on disk.
			continue
		}

		if writeFile == nil || uint64(writeOffset) > cfg.MaxFileSizeBytes {
			if err := rollToNextSidecar(); err != nil {
				return err
			}
		}

		if err := copyRecord(cfg.DataDir, ptr, writer); err != nil {
			closeCurrent()
			return err
		}

		valuePosition := writeOffset + int64(record.HeaderSize) + int64(ptr.KeySize)
		writeOffset += ptr.RecordSize

		cfg.Keydir.Insert(key, keydir.EntryPointer{
			FileID:        writeFileID,
			ValuePosition: valuePosition,
			ValueSize:     ptr.ValueSize,
			TxID:          ptr.TxID,
		})
	}

	if err := closeCurrent(); err != nil {
		return err
	}

	for _, fileID := range cfg.InactiveFileIDs {
		path := filepath.Join(cfg.DataDir, fileid.Name(fileID))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to remove compacted data file").
				WithPath(path)
		}
	}

	return finalizeSidecars(cfg.DataDir, mergedFiles, cfg.Logger)
}

// finalizeSidecars renames every non-empty ".merge" file into place as a
// plain data file and removes any that are empty. It acts on every
// ".merge" file found in dir, not only those listed in mergedFiles.
func finalizeSidecars(dir string, mergedFiles []string, log *zap.SugaredLogger) error {
	names, err := fileid.MergeFiles(dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err != nil {
			return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to stat merge sidecar file").
				WithPath(path)
		}

		if info.Size() == 0 {
			if err := os.Remove(path); err != nil {
				return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to remove empty merge sidecar file").
					WithPath(path)
			}
			continue
		}

		id, _ := fileid.ParseMergeStem(name)
		finalPath := filepath.Join(dir, fileid.Name(id))

		if err := atomicfile.ReplaceFile(path, finalPath); err != nil {
			return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to finalize merge sidecar file").
				WithPath(path)
		}
		if log != nil {
			log.Infow("merge sidecar finalized", "file", finalPath)
		}
	}

	return nil
}

func copyRecord(dir string, ptr Pointer, dst io.Writer) error {
	path := filepath.Join(dir, fileid.Name(ptr.FileID))

	src, err := os.Open(path)
	if err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to open source data file for merge copy").
			WithPath(path).
			WithFileID(ptr.FileID)
	}
	defer src.Close()

	if _, err := src.Seek(ptr.RecordOffset, io.SeekStart); err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to seek source data file during merge copy").
			WithPath(path).
			WithFileID(ptr.FileID)
	}

	n, err := io.CopyN(dst, src, ptr.RecordSize)
	if err != nil {
		return ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to copy record during merge").
			WithPath(path).
			WithFileID(ptr.FileID)
	}
	if n != ptr.RecordSize {
		return ierrors.NewCorruptionError("merge copy read fewer bytes than the record's stored size").
			WithFileID(ptr.FileID).
			WithRecordOffset(ptr.RecordOffset)
	}

	return nil
}
