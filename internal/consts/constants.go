package consts

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Constants for configuration paths and defaults
const (
	AppName = "yurt"

	SettingsFileName = "yurt.toml"
	EnvFileName      = ".env"
	EnvPrefix        = "YURT_"

	DefaultConfigDir = "config"
	DefaultFilesDir  = "home"
	DocumentExt      = ".yaml"

	ManifestFileName     = "manifest.yaml"
	ProfilesFileName     = "profiles.yaml"
	ProfilesTOMLFileName = "profiles.toml"

	DefaultProfileKey   = "yurt.profile"
	DefaultBaseCategory = "base"
	DefaultEditor       = "code"

	StoreGit  = "git"
	StoreFile = "file"

	StateDirName  = "yurt"
	StateFileName = "state.json"
	LogFileName   = "yurt.log"

	SparseCheckoutFile = "info/sparse-checkout"
)

// GetStateDir returns the XDG state directory used outside a git work tree.
func GetStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// GetLogFilePath returns the default log file path.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), LogFileName)
}

// GetRepoStatePath returns the state file path inside a repository's git dir.
func GetRepoStatePath(gitDir string) string {
	return filepath.Join(gitDir, StateDirName, StateFileName)
}
