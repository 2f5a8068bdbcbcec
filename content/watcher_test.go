package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func waitUpdate(t *testing.T, w *Watcher) Update {
	t.Helper()
	select {
	case u, ok := <-w.Updates():
		require.True(t, ok, "updates closed")
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
		return Update{}
	}
}

func TestWatcherReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoProjects), 0o644))

	w, err := NewWatcher(path, 20*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer w.Close()

	one := "projects:\n  - id: solo\n    title: Solo\n    description: d\n    image: i\n    details: x\n"
	require.NoError(t, os.WriteFile(path, []byte(one), 0o644))

	u := waitUpdate(t, w)
	require.NoError(t, u.Err)
	require.Len(t, u.Projects, 1)
	require.Equal(t, "solo", u.Projects[0].ID)

	require.NoError(t, os.WriteFile(path, []byte("projects: []\n"), 0o644))
	u = waitUpdate(t, w)
	require.ErrorIs(t, u.Err, ErrInvalidProject)
	require.Nil(t, u.Projects)

	require.NoError(t, w.Close())
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoProjects), 0o644))

	w, err := NewWatcher(path, 10*time.Millisecond, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))
	select {
	case u := <-w.Updates():
		t.Fatalf("unexpected reload: %+v", u)
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	_, ok := <-w.Updates()
	require.False(t, ok, "updates should be closed")
	require.NoError(t, w.Close())
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "projects.yaml"), 0, nil)
	require.Error(t, err)
}
