package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/melih-ucgun/yurt/internal/core"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errRunFailed))
	assert.Equal(t, 1, ExitCode(core.LoadError(errors.New("bad yaml"), "load packages")))

	resolution := core.ResolutionError(errors.New("unknown profile"), "resolve profile %q", "lptop")
	assert.Equal(t, 2, ExitCode(resolution))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("profile set: %w", resolution)))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"install"},
		{"uninstall"},
		{"validate"},
		{"profile", "list"},
		{"profile", "show"},
		{"profile", "set"},
		{"sparse", "plan"},
	} {
		cmd, _, err := rootCmd.Find(path)
		assert.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	for _, flag := range []string{"repo", "profile", "dry-run", "verbose", "skip", "only"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().ShorthandLookup("n"))
	assert.NotNil(t, rootCmd.PersistentFlags().ShorthandLookup("p"))
}
