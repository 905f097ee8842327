package ignite_test

import (
	"context"
	"testing"
	"time"

	"github.com/iamNilotpal/ignite/pkg/ignite"
	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/stretchr/testify/require"
)

func TestInstanceInsertGetRemove(t *testing.T) {
	dir := t.TempDir()
	inst, err := ignite.NewInstance(context.Background(), "test",
		options.WithDataDir(dir),
	)
	require.NoError(t, err)
	defer inst.Close(context.Background())

	require.NoError(t, inst.Insert("foo", "bar"))

	var out string
	found, err := inst.Get("foo", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "bar", out)

	require.NoError(t, inst.Remove("foo"))
	require.False(t, inst.ContainsKey("foo"))
}

func TestInstanceBackgroundCompaction(t *testing.T) {
	dir := t.TempDir()
	inst, err := ignite.NewInstance(context.Background(), "test",
		options.WithDataDir(dir),
		options.WithMaxFileSizeBytes(48),
		options.WithCompactInterval(20*time.Millisecond),
	)
	require.NoError(t, err)
	defer inst.Close(context.Background())

	for i := 0; i < 20; i++ {
		require.NoError(t, inst.Insert("key", i))
	}

	time.Sleep(100 * time.Millisecond)

	var out int
	found, err := inst.Get("key", &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 19, out)
}
