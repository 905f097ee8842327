package merge

import (
	"bufio"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/iamNilotpal/ignite/internal/keydir"
	"github.com/iamNilotpal/ignite/internal/record"
	ierrors "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/fileid"
)

// scanFile reads every record in the data file named by fileID, yielding
// a Pointer per key rather than decoding key/value bytes — the merge
// copy only needs byte ranges to seek and copy.
func scanFile(dir string, fileID uint32, tombstone []byte) (map[string]Pointer, error) {
	path := filepath.Join(dir, fileid.Name(fileID))

	f, err := os.Open(path)
	if err != nil {
		return nil, ierrors.NewStorageError(err, ierrors.ErrorCodeIO, "failed to open data file for merge scan").
			WithPath(path).
			WithFileID(fileID)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	pointers := make(map[string]Pointer)

	var offset int64
	for {
		rec, err := record.ReadFrom(reader)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return nil, ierrors.NewCorruptionError("truncated or corrupt record encountered during merge scan").
				WithFileID(fileID).
				WithRecordOffset(offset)
		}

		if !rec.IsValid() {
			return nil, ierrors.NewCorruptionError("checksum mismatch encountered during merge scan").
				WithFileID(fileID).
				WithRecordOffset(offset).
				WithCRCs(rec.StoredCRC(), rec.ComputedCRC())
		}

		liveness := keydir.Live
		if rec.IsTombstone(tombstone) {
			liveness = keydir.Deleted
		}

		pointers[string(rec.KeyBytes())] = Pointer{
			Liveness:     liveness,
			FileID:       fileID,
			TxID:         rec.TxID(),
			RecordOffset: offset,
			RecordSize:   int64(rec.Len()),
			KeySize:      rec.KeySize(),
			ValueSize:    rec.ValueSize(),
		}

		offset += int64(rec.Len())
	}

	return pointers, nil
}

// loadLatestPointers scans every file in fileIDs and folds the results
// into one Pointer per key, keeping the highest-TxID version across all
// inactive files — the same recency fold used in internal/keydir, kept
// separate here since Pointer and EntryWithLiveness carry different
// fields for different purposes.
func loadLatestPointers(dir string, fileIDs []uint32, tombstone []byte) (map[string]Pointer, error) {
	latest := make(map[string]Pointer)

	for _, fileID := range fileIDs {
		filePointers, err := scanFile(dir, fileID, tombstone)
		if err != nil {
			return nil, err
		}

		for key, candidate := range filePointers {
			existing, ok := latest[key]
			if !ok || candidate.TxID.Cmp(existing.TxID) > 0 {
				latest[key] = candidate
			}
		}
	}

	return latest, nil
}
