package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/melih-ucgun/yurt/internal/consts"
)

// Settings is the application configuration: where things live and how the
// profile choice is stored. It is separate from the desired-state documents.
type Settings struct {
	Paths      PathSettings      `koanf:"paths"`
	Profile    ProfileSettings   `koanf:"profile"`
	Log        LogSettings       `koanf:"log"`
	Extensions ExtensionSettings `koanf:"extensions"`
}

type PathSettings struct {
	RepoRoot  string `koanf:"repo_root"`
	ConfigDir string `koanf:"config_dir"`
	FilesDir  string `koanf:"files_dir"`
	HomeDir   string `koanf:"home_dir"`
}

type ProfileSettings struct {
	Store string `koanf:"store"`
	Key   string `koanf:"key"`
	Base  string `koanf:"base"`
}

type LogSettings struct {
	File string `koanf:"file"`
}

type ExtensionSettings struct {
	Editor string `koanf:"editor"`
	// Editors lists the editor CLIs that are accepted in records.
	Editors []string `koanf:"editors"`
}

// ConfigPath resolves the desired-state document directory.
func (s *Settings) ConfigPath() string {
	return s.resolve(s.Paths.ConfigDir)
}

// FilesPath resolves the directory symlink sources live in.
func (s *Settings) FilesPath() string {
	return s.resolve(s.Paths.FilesDir)
}

func (s *Settings) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.Paths.RepoRoot, p)
}

func defaultSettings(repoRoot string) map[string]interface{} {
	home, _ := os.UserHomeDir()
	return map[string]interface{}{
		"paths.repo_root":    repoRoot,
		"paths.config_dir":   consts.DefaultConfigDir,
		"paths.files_dir":    consts.DefaultFilesDir,
		"paths.home_dir":     home,
		"profile.store":      consts.StoreGit,
		"profile.key":        consts.DefaultProfileKey,
		"profile.base":       consts.DefaultBaseCategory,
		"log.file":           consts.GetLogFilePath(),
		"extensions.editor":  consts.DefaultEditor,
		"extensions.editors": []string{"code", "codium", "code-insiders"},
	}
}

// envKey maps YURT_PATHS_CONFIG_DIR to paths.config_dir.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, consts.EnvPrefix)), "_", ".", 1)
}

// LoadSettings loads settings in increasing precedence: defaults, yurt.toml
// at the repository root, the repository .env file, then YURT_* variables.
func LoadSettings(repoRoot string) (*Settings, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaultSettings(repoRoot), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Root settings file if it exists
	settingsPath := filepath.Join(repoRoot, consts.SettingsFileName)
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings from %s: %w", settingsPath, err)
		}
	}

	// 3. .env overlay, without touching the process environment
	dotenv, err := godotenv.Read(filepath.Join(repoRoot, consts.EnvFileName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", consts.EnvFileName, err)
	}
	overlay := make(map[string]interface{})
	for key, value := range dotenv {
		if strings.HasPrefix(key, consts.EnvPrefix) {
			overlay[envKey(key)] = value
		}
	}
	if err := k.Load(confmap.Provider(overlay, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", consts.EnvFileName, err)
	}

	// 4. Environment
	if err := k.Load(env.Provider(consts.EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch s.Profile.Store {
	case consts.StoreGit, consts.StoreFile:
	default:
		return fmt.Errorf("profile.store must be %q or %q, got %q", consts.StoreGit, consts.StoreFile, s.Profile.Store)
	}
	if strings.TrimSpace(s.Profile.Key) == "" {
		return errors.New("profile.key must not be empty")
	}
	if strings.TrimSpace(s.Profile.Base) == "" {
		return errors.New("profile.base must not be empty")
	}
	return nil
}
