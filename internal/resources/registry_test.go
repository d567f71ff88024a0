package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/yurt/internal/core"
)

const regOutput = `
HKEY_CURRENT_USER\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize
    AppsUseLightTheme    REG_DWORD    0x0
`

func windowsContext() (*core.SystemContext, *core.MockRunner) {
	ctx, runner := testContext(false)
	ctx.Platform = fakePlatform{manager: "winget", windows: true}
	return ctx, runner
}

func TestRegistry_States(t *testing.T) {
	key := `HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

	t.Run("matching dword", func(t *testing.T) {
		ctx, runner := windowsContext()
		runner.OnCommand("reg query "+key+" /v AppsUseLightTheme", regOutput, nil)

		state, err := NewRegistry(key, "AppsUseLightTheme", "REG_DWORD", "0").CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateCorrect, state.Kind)
	})

	t.Run("different value", func(t *testing.T) {
		ctx, runner := windowsContext()
		runner.OnCommand("reg query "+key+" /v AppsUseLightTheme", regOutput, nil)

		state, err := NewRegistry(key, "AppsUseLightTheme", "REG_DWORD", "1").CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.Incorrect("REG_DWORD 0x0"), state)
	})

	t.Run("absent", func(t *testing.T) {
		ctx, runner := windowsContext()
		runner.OnCommand("reg query "+key+" /v Missing", "ERROR: The system was unable to find the specified registry key or value.", core.MockExitError(1))

		state, err := NewRegistry(key, "Missing", "REG_SZ", "x").CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateMissing, state.Kind)
	})

	t.Run("not windows", func(t *testing.T) {
		ctx, runner := testContext(false)
		state, err := NewRegistry(key, "AppsUseLightTheme", "REG_DWORD", "0").CurrentState(ctx)
		require.NoError(t, err)
		assert.Equal(t, core.StateInvalid, state.Kind)
		assert.Empty(t, runner.Calls)
	})
}

func TestRegistry_Apply(t *testing.T) {
	ctx, runner := windowsContext()
	key := `HKCU\Software\Foo`
	runner.OnCommand("reg query "+key+" /v Theme", "", core.MockExitError(1))
	runner.OnCommand("reg add "+key+" /v Theme /t REG_SZ /d dark /f", "The operation completed successfully.", nil)

	require.NoError(t, NewRegistry(key, "Theme", "REG_SZ", "dark").Apply(ctx))
	assert.True(t, runner.Called("reg add "+key))
}

func TestParseRegQuery(t *testing.T) {
	out := "\nHKEY_CURRENT_USER\\Console\n    Face Name    REG_SZ    Cascadia Mono\n"
	typ, value, ok := parseRegQuery(out, "Face Name")
	require.True(t, ok)
	assert.Equal(t, "REG_SZ", typ)
	assert.Equal(t, "Cascadia Mono", value)

	_, _, ok = parseRegQuery(out, "Other")
	assert.False(t, ok)
}
