package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/yurt/internal/core"
)

func TestPermission(t *testing.T) {
	ctx, _ := testContext(false)
	dir := t.TempDir()
	script := filepath.Join(dir, "setup.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0644))
	require.NoError(t, os.Chmod(script, 0644))

	t.Run("owner exec", func(t *testing.T) {
		res := NewPermission(script, 0, false)
		state, err := res.CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.Incorrect("0644"), state)

		require.NoError(t, res.Apply(ctx))
		info, err := os.Stat(script)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o744), info.Mode().Perm())

		state, err = res.CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateCorrect, state.Kind)
	})

	t.Run("exact mode", func(t *testing.T) {
		res := NewPermission(script, 0o600, true)
		state, err := res.CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateIncorrect, state.Kind)

		require.NoError(t, res.Apply(ctx))
		info, err := os.Stat(script)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("absent path is invalid", func(t *testing.T) {
		res := NewPermission(filepath.Join(dir, "sparse-excluded.sh"), 0, false)
		state, err := res.CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateInvalid, state.Kind)
	})
}
