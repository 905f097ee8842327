package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/pkg/fileid"
	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...options.OptionFunc) *engine.Engine {
	t.Helper()

	o := options.NewDefaultOptions()
	o.DataDir = t.TempDir()
	for _, apply := range opts {
		apply(&o)
	}

	eng, err := engine.New(&engine.Config{Options: &o})
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close() })
	return eng
}

func TestInsertGetRoundTrip(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Insert("foo", "bar"))

	var out string
	found, err := eng.Get("foo", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "bar", out)
}

func TestGetMissingKey(t *testing.T) {
	eng := newTestEngine(t)

	var out string
	found, err := eng.Get("missing", &out)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRemoveThenGet(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Insert("foo", "bar"))
	require.NoError(t, eng.Remove("foo"))

	var out string
	found, err := eng.Get("foo", &out)
	require.NoError(t, err)
	require.False(t, found)
	require.False(t, eng.ContainsKey("foo"))
}

func TestRemoveAbsentKeyIsNoop(t *testing.T) {
	eng := newTestEngine(t)
	require.NoError(t, eng.Remove("never-existed"))
}

func TestHeterogeneousValueTypes(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Insert("s", "a string"))
	require.NoError(t, eng.Insert("n", uint32(42)))
	require.NoError(t, eng.Insert("l", []int64{1, 2, 3}))

	var s string
	found, err := eng.Get("s", &s)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "a string", s)

	var n uint32
	found, err = eng.Get("n", &n)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint32(42), n)

	var l []int64
	found, err = eng.Get("l", &l)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []int64{1, 2, 3}, l)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	o := options.NewDefaultOptions()
	o.DataDir = dir

	eng, err := engine.New(&engine.Config{Options: &o})
	require.NoError(t, err)
	require.NoError(t, eng.Insert("foo", "bar"))
	require.NoError(t, eng.Insert("baz", "qux"))
	require.NoError(t, eng.Remove("foo"))
	require.NoError(t, eng.Close())

	reopened, err := engine.New(&engine.Config{Options: &o})
	require.NoError(t, err)
	defer reopened.Close()

	require.False(t, reopened.ContainsKey("foo"))

	var out string
	found, err := reopened.Get("baz", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "qux", out)
}

func TestRolloverCreatesNewActiveFile(t *testing.T) {
	dir := t.TempDir()
	o := options.NewDefaultOptions()
	o.DataDir = dir
	o.MaxFileSizeBytes = 64

	eng, err := engine.New(&engine.Config{Options: &o})
	require.NoError(t, err)
	defer eng.Close()

	for i := 0; i < 20; i++ {
		require.NoError(t, eng.Insert("key", i))
	}

	ids, err := fileid.All(dir)
	require.NoError(t, err)
	require.Greater(t, len(ids), 1)

	var out int
	found, err := eng.Get("key", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 19, out)
}

func TestMergeReclaimsSpace(t *testing.T) {
	dir := t.TempDir()
	o := options.NewDefaultOptions()
	o.DataDir = dir
	o.MaxFileSizeBytes = 48

	eng, err := engine.New(&engine.Config{Options: &o})
	require.NoError(t, err)
	defer eng.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, eng.Insert("key", i))
	}
	require.NoError(t, eng.Remove("gone"))

	dataSize := func() int64 {
		ids, err := fileid.All(dir)
		require.NoError(t, err)
		var total int64
		for _, id := range ids {
			info, err := os.Stat(filepath.Join(dir, fileid.Name(id)))
			require.NoError(t, err)
			total += info.Size()
		}
		return total
	}
	before := dataSize()

	require.NoError(t, eng.Merge())
	require.Less(t, dataSize(), before)

	var out int
	found, err := eng.Get("key", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 9, out)
}
