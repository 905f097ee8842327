package keydir

import (
	"bufio"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/iamNilotpal/ignite/internal/record"
	ierrors "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/fileid"
)

// ScanFile reads every record in the data file named by fileID under
// dir, recording each key's most recent EntryWithLiveness within that
// single file. A key written twice in the same file keeps only the
// later occurrence, since later offsets always carry a higher TxID.
func ScanFile(dir string, fileID uint32, tombstone []byte) (map[string]EntryWithLiveness, error) {
	path := filepath.Join(dir, fileid.Name(fileID))

	f, err := os.Open(path)
	if err != nil {
		return nil, ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to open data file for scan").
			WithPath(path).
			WithFileID(fileID)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	entries := make(map[string]EntryWithLiveness)

	var offset int64
	for {
		rec, err := record.ReadFrom(reader)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return nil, ierrors.NewCorruptionError("truncated or corrupt record encountered during scan").
				WithFileID(fileID).
				WithRecordOffset(offset)
		}

		if !rec.IsValid() {
			return nil, ierrors.NewCorruptionError("checksum mismatch encountered during scan").
				WithFileID(fileID).
				WithRecordOffset(offset).
				WithCRCs(rec.StoredCRC(), rec.ComputedCRC())
		}

		valuePos := offset + int64(record.HeaderSize) + int64(rec.KeySize())
		liveness := Live
		if rec.IsTombstone(tombstone) {
			liveness = Deleted
		}

		entries[string(rec.KeyBytes())] = EntryWithLiveness{
			Entry: EntryPointer{
				FileID:        fileID,
				ValuePosition: valuePos,
				ValueSize:     rec.ValueSize(),
				TxID:          rec.TxID(),
			},
			Liveness: liveness,
		}

		offset += int64(rec.Len())
	}

	return entries, nil
}

// LoadLatestEntries scans every file in fileIDs and folds the results
// into one map per key, keeping only the entry with the highest TxID
// across all files — mirroring the original Loadable::load_latest_entries
// fold.
func LoadLatestEntries(dir string, fileIDs []uint32, tombstone []byte) (map[string]EntryWithLiveness, error) {
	latest := make(map[string]EntryWithLiveness)

	for _, fileID := range fileIDs {
		fileEntries, err := ScanFile(dir, fileID, tombstone)
		if err != nil {
			return nil, err
		}

		for key, candidate := range fileEntries {
			existing, ok := latest[key]
			if !ok || candidate.TxID().Cmp(existing.TxID()) > 0 {
				latest[key] = candidate
			}
		}
	}

	return latest, nil
}
