package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/yurt/internal/core"
)

func TestFileStore_GetSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".git", "yurt", "state.json")

	s, err := NewFileStore(path, &core.RealFS{})
	require.NoError(t, err)

	v, err := s.Get("yurt.profile")
	require.NoError(t, err)
	assert.Empty(t, v, "absent key reads empty")

	require.NoError(t, s.Set("yurt.profile", "laptop"))

	reopened, err := NewFileStore(path, &core.RealFS{})
	require.NoError(t, err)
	v, err = reopened.Get("yurt.profile")
	require.NoError(t, err)
	assert.Equal(t, "laptop", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path, &core.RealFS{})
	assert.Error(t, err)
}

func TestFileStore_History(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := NewFileStore(path, &core.RealFS{})
	require.NoError(t, err)

	assert.Empty(t, s.Runs())

	for i := 0; i < maxHistory+5; i++ {
		require.NoError(t, s.AddRun(RunRecord{ID: "run", Command: "install", Timestamp: time.Now(), Changed: i}))
	}

	runs := s.Runs()
	assert.Len(t, runs, maxHistory)
	assert.Equal(t, maxHistory+4, runs[len(runs)-1].Changed)
	assert.Equal(t, 5, runs[0].Changed, "oldest records are dropped first")
}
