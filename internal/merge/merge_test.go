package merge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iamNilotpal/ignite/internal/codec"
	"github.com/iamNilotpal/ignite/internal/keydir"
	"github.com/iamNilotpal/ignite/internal/merge"
	"github.com/iamNilotpal/ignite/internal/record"
	"github.com/iamNilotpal/ignite/pkg/fileid"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir string, id uint32, rows []struct {
	key   string
	value []byte
	txID  record.TxID
}) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, fileid.Name(id)))
	require.NoError(t, err)
	defer f.Close()

	for _, row := range rows {
		rec, err := record.New([]byte(row.key), row.value, row.txID)
		require.NoError(t, err)
		_, err = f.Write(rec.Bytes())
		require.NoError(t, err)
	}
}

func TestRunKeepsLatestAndDropsTombstones(t *testing.T) {
	dir := t.TempDir()
	enc := codec.NewGobEncoder()
	tombstone, err := codec.NewTombstoneCache(enc).Bytes()
	require.NoError(t, err)

	tx1 := record.Zero.Next()
	tx2 := tx1.Next()
	tx3 := tx2.Next()

	writeFile(t, dir, 0, []struct {
		key   string
		value []byte
		txID  record.TxID
	}{
		{"a", []byte("v1"), tx1},
		{"b", []byte("v1"), tx2},
	})
	writeFile(t, dir, 1, []struct {
		key   string
		value []byte
		txID  record.TxID
	}{
		{"a", tombstone, tx3},
	})

	kd := keydir.New(map[string]keydir.EntryPointer{
		"a": {FileID: 1, TxID: tx3},
		"b": {FileID: 0, TxID: tx2},
	})

	err = merge.Run(merge.Config{
		DataDir:          dir,
		InactiveFileIDs:  []uint32{0, 1},
		Keydir:           kd,
		MaxFileSizeBytes: 1 << 20,
		Tombstone:        tombstone,
	})
	require.NoError(t, err)

	require.False(t, kd.ContainsKey("a"))
	_, ok := kd.Get("b")
	require.True(t, ok)

	// File 0 is deleted; ID 1 is recycled for the merged output, so file 1
	// now holds only b's record.
	_, err = os.Stat(filepath.Join(dir, fileid.Name(0)))
	require.True(t, os.IsNotExist(err))

	remaining, err := fileid.All(dir)
	require.NoError(t, err)
	require.Equal(t, []uint32{1}, remaining)
}

func TestRunSkipsKeysNewerInActiveFile(t *testing.T) {
	dir := t.TempDir()
	tombstone, err := codec.NewTombstoneCache(codec.NewGobEncoder()).Bytes()
	require.NoError(t, err)

	tx1 := record.Zero.Next()
	tx2 := tx1.Next()

	writeFile(t, dir, 0, []struct {
		key   string
		value []byte
		txID  record.TxID
	}{
		{"a", []byte("stale"), tx1},
	})

	kd := keydir.New(map[string]keydir.EntryPointer{
		"a": {FileID: 2, ValuePosition: 100, TxID: tx2},
	})

	err = merge.Run(merge.Config{
		DataDir:          dir,
		InactiveFileIDs:  []uint32{0},
		Keydir:           kd,
		MaxFileSizeBytes: 1 << 20,
		Tombstone:        tombstone,
	})
	require.NoError(t, err)

	entry, ok := kd.Get("a")
	require.True(t, ok)
	require.Equal(t, uint32(2), entry.FileID)
	require.Equal(t, int64(100), entry.ValuePosition)
}
