package watch

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestWatcher_ReportsSettledWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.wsc")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := New(path, 20*time.Millisecond, discardLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.wsc")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := New(path, 50*time.Millisecond, discardLogger())
	require.NoError(t, err)
	defer w.Close()

	// A burst of writes inside the debounce window reports once.
	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case <-w.Changes():
		t.Fatal("burst reported more than once")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.wsc")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := New(path, 20*time.Millisecond, discardLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-w.Changes():
		t.Fatal("sibling file change reported")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_SeesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.wsc")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	w, err := New(path, 20*time.Millisecond, discardLogger())
	require.NoError(t, err)
	defer w.Close()

	// Simulators commonly write to a temp file and rename it into place.
	tmp := filepath.Join(dir, "trace.wsc.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("v2"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("rename-replace not reported")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nodir", "trace.wsc"), 0, discardLogger())
	require.Error(t, err)
}
