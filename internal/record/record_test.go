package record_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/iamNilotpal/ignite/internal/record"
	"github.com/stretchr/testify/require"
)

func TestNewAndReadFromRoundTrip(t *testing.T) {
	txID := record.Zero.Next()

	r, err := record.New([]byte("foo"), []byte("bar"), txID)
	require.NoError(t, err)
	require.True(t, r.IsValid())

	read, err := record.ReadFrom(bytes.NewReader(r.Bytes()))
	require.NoError(t, err)

	require.True(t, read.IsValid())
	require.Equal(t, []byte("foo"), read.KeyBytes())
	require.Equal(t, []byte("bar"), read.ValueBytes())
	require.Equal(t, txID, read.TxID())
	require.Equal(t, r.Len(), read.Len())
}

func TestReadFromCleanEOF(t *testing.T) {
	_, err := record.ReadFrom(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

func TestReadFromTruncatedRecordIsNotCleanEOF(t *testing.T) {
	r, err := record.New([]byte("foo"), []byte("bar"), record.Zero.Next())
	require.NoError(t, err)

	truncated := r.Bytes()[:r.Len()-2]

	_, err = record.ReadFrom(bytes.NewReader(truncated))
	require.Error(t, err)
	require.NotErrorIs(t, err, io.EOF)
}

func TestIsValidDetectsCorruption(t *testing.T) {
	r, err := record.New([]byte("foo"), []byte("bar"), record.Zero.Next())
	require.NoError(t, err)

	corrupted := append([]byte(nil), r.Bytes()...)
	corrupted[len(corrupted)-1] ^= 0xFF

	read, err := record.ReadFrom(bytes.NewReader(corrupted))
	require.NoError(t, err)
	require.False(t, read.IsValid())
}

func TestIsTombstoneByteEquality(t *testing.T) {
	tombstone := []byte("bitcask_tombstone")

	del, err := record.New([]byte("foo"), tombstone, record.Zero.Next())
	require.NoError(t, err)
	require.True(t, del.IsTombstone(tombstone))

	live, err := record.New([]byte("foo"), []byte("bar"), record.Zero.Next())
	require.NoError(t, err)
	require.False(t, live.IsTombstone(tombstone))
}

func TestNewRejectsOversizedKey(t *testing.T) {
	bigKey := make([]byte, record.MaxKeySize+1)
	_, err := record.New(bigKey, []byte("v"), record.Zero.Next())
	require.Error(t, err)
}

func TestTxIDOrderingAndOverflow(t *testing.T) {
	a := record.TxID{Hi: 0, Lo: ^uint64(0)}
	b := a.Next()

	require.Equal(t, uint64(1), b.Hi)
	require.Equal(t, uint64(0), b.Lo)
	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 1, b.Cmp(a))
	require.Equal(t, 0, a.Cmp(a))
}
