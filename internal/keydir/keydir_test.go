package keydir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/iamNilotpal/ignite/internal/codec"
	"github.com/iamNilotpal/ignite/internal/keydir"
	"github.com/iamNilotpal/ignite/internal/record"
	"github.com/iamNilotpal/ignite/pkg/fileid"
	"github.com/stretchr/testify/require"
)

func TestInsertGetRemove(t *testing.T) {
	k := keydir.New(nil)

	ptr := keydir.EntryPointer{FileID: 1, ValuePosition: 26, ValueSize: 3, TxID: record.Zero.Next()}
	_, existed := k.Insert("foo", ptr)
	require.False(t, existed)

	got, ok := k.Get("foo")
	require.True(t, ok)
	require.Equal(t, ptr, got)

	require.True(t, k.ContainsKey("foo"))
	require.Equal(t, []string{"foo"}, k.Keys())

	removed, ok := k.Remove("foo")
	require.True(t, ok)
	require.Equal(t, ptr, removed)
	require.False(t, k.ContainsKey("foo"))
}

func TestLatestTxID(t *testing.T) {
	k := keydir.New(nil)
	require.Equal(t, 0, k.Len())

	_, ok := k.LatestTxID()
	require.False(t, ok)

	a := record.Zero.Next()
	b := a.Next()

	k.Insert("x", keydir.EntryPointer{TxID: a})
	k.Insert("y", keydir.EntryPointer{TxID: b})

	latest, ok := k.LatestTxID()
	require.True(t, ok)
	require.Equal(t, b, latest)
}

func writeDataFile(t *testing.T, dir string, id uint32, entries []struct {
	key   string
	value []byte
	txID  record.TxID
}) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, fileid.Name(id)))
	require.NoError(t, err)
	defer f.Close()

	for _, e := range entries {
		rec, err := record.New([]byte(e.key), e.value, e.txID)
		require.NoError(t, err)
		_, err = f.Write(rec.Bytes())
		require.NoError(t, err)
	}
}

func TestScanFileAndLoadLatestEntries(t *testing.T) {
	dir := t.TempDir()
	tombstoneCache := codec.NewTombstoneCache(codec.NewGobEncoder())
	tombstone, err := tombstoneCache.Bytes()
	require.NoError(t, err)

	tx1 := record.Zero.Next()
	tx2 := tx1.Next()
	tx3 := tx2.Next()

	writeDataFile(t, dir, 0, []struct {
		key   string
		value []byte
		txID  record.TxID
	}{
		{"a", []byte("1"), tx1},
		{"b", []byte("2"), tx2},
	})

	writeDataFile(t, dir, 1, []struct {
		key   string
		value []byte
		txID  record.TxID
	}{
		{"a", tombstone, tx3},
	})

	latest, err := keydir.LoadLatestEntries(dir, []uint32{0, 1}, tombstone)
	require.NoError(t, err)

	require.Len(t, latest, 2)
	require.Equal(t, keydir.Deleted, latest["a"].Liveness)
	require.Equal(t, uint32(1), latest["a"].Entry.FileID)
	require.Equal(t, keydir.Live, latest["b"].Liveness)
	require.Equal(t, uint32(0), latest["b"].Entry.FileID)

	want := map[string]keydir.EntryWithLiveness{
		"a": {Entry: keydir.EntryPointer{FileID: 1, ValuePosition: int64(record.HeaderSize + 1), ValueSize: uint32(len(tombstone)), TxID: tx3}, Liveness: keydir.Deleted},
		"b": {Entry: keydir.EntryPointer{FileID: 0, ValuePosition: int64(record.HeaderSize+1+1) + int64(record.HeaderSize+1), ValueSize: 1, TxID: tx2}, Liveness: keydir.Live},
	}
	if diff := cmp.Diff(want, latest); diff != "" {
		t.Errorf("loaded entries mismatch (-want +got):\n%s", diff)
	}
}
