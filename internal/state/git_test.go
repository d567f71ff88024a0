package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/yurt/internal/core"
)

func TestGitConfigStore(t *testing.T) {
	runner := core.NewMockRunner()
	runner.OnCommand("git -C /repo config --local --get yurt.profile", "  laptop\n", nil)
	runner.OnCommand("git -C /repo config --local --get yurt.missing", "", core.MockExitError(1))
	runner.OnCommand("git -C /repo config --local --get yurt.broken", "fatal: bad config", core.MockExitError(3))
	runner.OnCommand("git -C /repo config --local yurt.profile desktop", "", nil)

	s := NewGitConfigStore(runner, "/repo")

	v, err := s.Get("yurt.profile")
	require.NoError(t, err)
	assert.Equal(t, "laptop", v)

	v, err = s.Get("yurt.missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = s.Get("yurt.broken")
	assert.Error(t, err)

	require.NoError(t, s.Set("yurt.profile", "desktop"))
	assert.True(t, runner.Called("git -C /repo config --local yurt.profile"))
}

func TestStatePath(t *testing.T) {
	runner := core.NewMockRunner()
	runner.OnCommand("git -C /repo rev-parse --absolute-git-dir", "/repo/.git\n", nil)
	runner.OnCommand("git -C /tmp/x rev-parse --absolute-git-dir", "", errors.New("not a git repository"))

	assert.Equal(t, "/repo/.git/yurt/state.json", StatePath(runner, "/repo"))
	assert.Contains(t, StatePath(runner, "/tmp/x"), "yurt/state.json")
}
