package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	root := t.TempDir()

	s, err := LoadSettings(root)
	require.NoError(t, err)

	assert.Equal(t, root, s.Paths.RepoRoot)
	assert.Equal(t, filepath.Join(root, "config"), s.ConfigPath())
	assert.Equal(t, filepath.Join(root, "home"), s.FilesPath())
	assert.Equal(t, "git", s.Profile.Store)
	assert.Equal(t, "yurt.profile", s.Profile.Key)
	assert.Equal(t, "base", s.Profile.Base)
	assert.Equal(t, "code", s.Extensions.Editor)
	assert.Contains(t, s.Extensions.Editors, "codium")
}

func TestLoadSettings_Precedence(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "yurt.toml", `
[paths]
config_dir = "dots"
files_dir = "/srv/files"

[profile]
store = "file"
key = "toml.key"
`)
	writeFile(t, root, ".env", "YURT_PROFILE_KEY=dotenv.key\nYURT_EXTENSIONS_EDITOR=codium\nOTHER=ignored\n")
	t.Setenv("YURT_EXTENSIONS_EDITOR", "code-insiders")

	s, err := LoadSettings(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "dots"), s.ConfigPath())
	assert.Equal(t, "/srv/files", s.FilesPath(), "absolute paths are kept")
	assert.Equal(t, "file", s.Profile.Store)
	assert.Equal(t, "dotenv.key", s.Profile.Key, ".env overrides the settings file")
	assert.Equal(t, "code-insiders", s.Extensions.Editor, "environment overrides .env")
}

func TestLoadSettings_Invalid(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "yurt.toml", "[profile]\nstore = \"sqlite\"\n")

	_, err := LoadSettings(root)
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "paths.config_dir", envKey("YURT_PATHS_CONFIG_DIR"))
	assert.Equal(t, "profile.store", envKey("YURT_PROFILE_STORE"))
}
