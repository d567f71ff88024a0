package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/yurt/internal/config"
	"github.com/melih-ucgun/yurt/internal/core"
)

type linkFixture struct {
	files  string
	home   string
	source string
	target string
}

func newLinkFixture(t *testing.T) linkFixture {
	t.Helper()
	root := t.TempDir()
	f := linkFixture{
		files: filepath.Join(root, "repo", "home"),
		home:  filepath.Join(root, "home"),
	}
	f.source = filepath.Join(f.files, ".config", "nvim")
	f.target = filepath.Join(f.home, ".config", "nvim")
	require.NoError(t, os.MkdirAll(f.source, 0755))
	require.NoError(t, os.MkdirAll(f.home, 0755))
	return f
}

func TestSymlink_States(t *testing.T) {
	ctx, _ := testContext(false)

	t.Run("source absent is invalid", func(t *testing.T) {
		f := newLinkFixture(t)
		res := NewSymlink(filepath.Join(f.files, "not-checked-out"), f.target)
		state, err := res.CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateInvalid, state.Kind)
		assert.ErrorIs(t, res.Apply(ctx), ErrInvalidPrecondition)
	})

	t.Run("target absent is missing", func(t *testing.T) {
		f := newLinkFixture(t)
		state, err := NewSymlink(f.source, f.target).CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateMissing, state.Kind)
	})

	t.Run("link elsewhere is incorrect", func(t *testing.T) {
		f := newLinkFixture(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(f.target), 0755))
		require.NoError(t, os.Symlink("/somewhere/else", f.target))

		state, err := NewSymlink(f.source, f.target).CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.Incorrect("/somewhere/else"), state)
	})

	t.Run("relative link to source is correct", func(t *testing.T) {
		f := newLinkFixture(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(f.target), 0755))
		rel, err := filepath.Rel(filepath.Dir(f.target), f.source)
		require.NoError(t, err)
		require.NoError(t, os.Symlink(rel, f.target))

		state, err := NewSymlink(f.source, f.target).CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateCorrect, state.Kind)
	})
}

func TestSymlink_ApplyIsIdempotent(t *testing.T) {
	ctx, _ := testContext(false)
	f := newLinkFixture(t)
	res := NewSymlink(f.source, f.target)

	require.NoError(t, res.Apply(ctx))
	dest, err := os.Readlink(f.target)
	require.NoError(t, err)
	assert.Equal(t, f.source, dest)

	state, err := res.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StateCorrect, state.Kind)

	info, err := os.Lstat(f.target)
	require.NoError(t, err)
	require.NoError(t, res.Apply(ctx))
	after, err := os.Lstat(f.target)
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), after.ModTime(), "second apply must not touch the link")
}

func TestSymlink_ApplyReplacesWrongIdentity(t *testing.T) {
	ctx, _ := testContext(false)
	f := newLinkFixture(t)

	// A real directory full of files sits where the link should go.
	require.NoError(t, os.MkdirAll(filepath.Join(f.target, "lua"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.target, "init.lua"), []byte("--"), 0644))

	res := NewSymlink(f.source, f.target)
	state, err := res.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.Incorrect("directory"), state)

	require.NoError(t, res.Apply(ctx))
	state, err = res.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StateCorrect, state.Kind)
}

func TestSymlink_CorrectIdentityIsLeftAlone(t *testing.T) {
	ctx, _ := testContext(false)
	f := newLinkFixture(t)
	src := filepath.Join(f.files, ".zshrc")
	require.NoError(t, os.WriteFile(src, []byte("one"), 0644))
	res := NewSymlink(src, filepath.Join(f.home, ".zshrc"))
	require.NoError(t, res.Apply(ctx))

	// Edited through the link: identity is unchanged.
	require.NoError(t, os.WriteFile(filepath.Join(f.home, ".zshrc"), []byte("two"), 0644))
	state, err := res.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StateCorrect, state.Kind)
}

func TestSymlink_Remove(t *testing.T) {
	ctx, _ := testContext(false)
	f := newLinkFixture(t)
	res := NewSymlink(f.source, f.target)
	require.NoError(t, res.Apply(ctx))

	require.NoError(t, res.Remove(ctx))
	_, err := os.Lstat(f.target)
	assert.True(t, os.IsNotExist(err))

	// A foreign file at the target is not ours to remove.
	require.NoError(t, os.WriteFile(f.target, []byte("mine"), 0644))
	require.NoError(t, res.Remove(ctx))
	_, err = os.Stat(f.target)
	assert.NoError(t, err)
}

func TestSymlink_DryRunMakesNoChanges(t *testing.T) {
	ctx, _ := testContext(true)
	f := newLinkFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(f.target), 0755))
	require.NoError(t, os.Symlink("/elsewhere", f.target))
	other := filepath.Join(f.home, ".bashrc")
	require.NoError(t, os.WriteFile(filepath.Join(f.files, ".bashrc"), nil, 0644))

	task := &core.ResourceTask{
		TaskName: "symlinks",
		Resources: []core.Resource{
			NewSymlink(f.source, f.target),
			NewSymlink(filepath.Join(f.files, ".bashrc"), other),
		},
	}
	stats := core.NewEngine(ctx).Run([]core.Task{task})

	assert.Equal(t, 2, stats.DryRun)
	dest, err := os.Readlink(f.target)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", dest)
	_, err = os.Lstat(other)
	assert.True(t, os.IsNotExist(err))
}

func TestSymlink_NestedUnderLinkedParent(t *testing.T) {
	ctx, _ := testContext(false)
	root := t.TempDir()
	ctx.RepoRoot = filepath.Join(root, "repo")
	ctx.FilesDir = filepath.Join(ctx.RepoRoot, "home")
	ctx.HomeDir = filepath.Join(root, "home")
	initLua := filepath.Join(ctx.FilesDir, ".config", "nvim", "init.lua")
	require.NoError(t, os.MkdirAll(filepath.Dir(initLua), 0755))
	require.NoError(t, os.WriteFile(initLua, []byte("vim.o.number = true"), 0644))
	require.NoError(t, os.MkdirAll(ctx.HomeDir, 0755))

	links := NewFactory(ctx, "code").Symlinks([]config.SymlinkEntry{
		{Source: ".config", Target: ".config"},
		{Source: ".config/nvim", Target: ".config/nvim"},
	})
	task := &core.ResourceTask{TaskName: "symlinks", Resources: links}

	stats := core.NewEngine(ctx).Run([]core.Task{task})
	require.False(t, stats.HasFailures())
	assert.Equal(t, 1, stats.Changed)
	assert.Equal(t, 1, stats.Correct, "the child is already served by the parent link")

	data, err := os.ReadFile(initLua)
	require.NoError(t, err, "repository files survive")
	assert.Equal(t, "vim.o.number = true", string(data))
	info, err := os.Lstat(filepath.Join(ctx.FilesDir, ".config", "nvim"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	stats = core.NewEngine(ctx).Run([]core.Task{task})
	assert.Equal(t, 2, stats.Correct)
	assert.Zero(t, stats.Changed)

	// Uninstall drops the parent link and never touches the source tree.
	remove := &core.ResourceTask{TaskName: "symlinks", Resources: links, Mode: core.ModeRemove}
	stats = core.NewEngine(ctx).Run([]core.Task{remove})
	require.False(t, stats.HasFailures())
	_, err = os.Lstat(filepath.Join(ctx.HomeDir, ".config"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(initLua)
	assert.NoError(t, err)
}

func TestSymlink_TargetInsideRepositoryIsInvalid(t *testing.T) {
	ctx, _ := testContext(false)
	root := t.TempDir()
	ctx.RepoRoot = filepath.Join(root, "repo")
	ctx.FilesDir = filepath.Join(ctx.RepoRoot, "home")
	ctx.HomeDir = filepath.Join(root, "home")
	tracked := filepath.Join(ctx.FilesDir, ".config", "foo")
	require.NoError(t, os.MkdirAll(filepath.Dir(tracked), 0755))
	require.NoError(t, os.WriteFile(tracked, []byte("tracked"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(ctx.FilesDir, "foo"), []byte("other"), 0644))
	require.NoError(t, os.MkdirAll(ctx.HomeDir, 0755))
	require.NoError(t, os.Symlink(filepath.Join(ctx.FilesDir, ".config"), filepath.Join(ctx.HomeDir, ".config")))

	link := NewFactory(ctx, "code").Symlinks([]config.SymlinkEntry{{Source: "foo", Target: ".config/foo"}})[0]
	state, err := link.CurrentState(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StateInvalid, state.Kind)
	assert.ErrorIs(t, link.Apply(ctx), ErrInvalidPrecondition)

	data, err := os.ReadFile(tracked)
	require.NoError(t, err)
	assert.Equal(t, "tracked", string(data))
}
