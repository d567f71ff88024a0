package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/melih-ucgun/yurt/internal/adapters/ui"
	"github.com/melih-ucgun/yurt/internal/category"
	"github.com/melih-ucgun/yurt/internal/config"
	"github.com/melih-ucgun/yurt/internal/consts"
	"github.com/melih-ucgun/yurt/internal/core"
	"github.com/melih-ucgun/yurt/internal/profile"
	"github.com/melih-ucgun/yurt/internal/resources"
	"github.com/melih-ucgun/yurt/internal/state"
	"github.com/melih-ucgun/yurt/internal/system"
)

// session is everything a command needs, built once per invocation.
type session struct {
	Settings *config.Settings
	Ctx      *core.SystemContext
	Platform *system.Platform
	Store    state.Store
	History  *state.FileStore
	Resolver *profile.Resolver

	logFile *os.File
}

func newSession() (*session, error) {
	runner := &core.RealRunner{}
	fsys := &core.RealFS{}

	root, err := repoRoot(runner)
	if err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(root)
	if err != nil {
		return nil, err
	}

	s := &session{Settings: settings}
	logger := core.NewDefaultLogger(os.Stderr, s.openLog(settings.Log.File), core.LevelFromVerbosity(verboseCount))

	s.Platform = system.Detect(fsys, runner)
	logger.Debug("Platform detected",
		"os", s.Platform.OS, "distro", s.Platform.Distro, "init", s.Platform.InitSystem,
		"categories", category.JoinTag(s.Platform.DetectedCategories()))

	ctx := core.NewSystemContext(dryRun)
	ctx.Platform = s.Platform
	ctx.HomeDir = settings.Paths.HomeDir
	ctx.RepoRoot = root
	ctx.FilesDir = settings.FilesPath()
	ctx.Logger = logger
	ctx.UI = ui.NewPtermUI()
	ctx.FS = fsys
	ctx.Runner = runner
	s.Ctx = ctx

	s.History, err = state.NewFileStore(state.StatePath(runner, root), fsys)
	if err != nil {
		return nil, err
	}
	switch settings.Profile.Store {
	case consts.StoreFile:
		s.Store = s.History
	default:
		s.Store = state.NewGitConfigStore(runner, root)
	}

	s.Resolver = &profile.Resolver{
		Store:    s.Store,
		Prompter: profile.NewPtermPrompter(),
		Platform: s.Platform,
		Key:      settings.Profile.Key,
		Base:     category.Category(settings.Profile.Base),
		DryRun:   dryRun,
		Logger:   logger,
	}
	return s, nil
}

// openLog opens the log file for appending. Logging to the file is best
// effort; the console still works without it.
func (s *session) openLog(path string) io.Writer {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		pterm.Debug.Printf("log file disabled: %v\n", err)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		pterm.Debug.Printf("log file disabled: %v\n", err)
		return nil
	}
	s.logFile = f
	return f
}

func (s *session) Close() {
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// loadProfiles reads the profile document. Failing to read it is a
// resolution error: no profile can be chosen without it.
func (s *session) loadProfiles() (*config.Profiles, error) {
	if s.Resolver.Profiles != nil {
		return s.Resolver.Profiles, nil
	}
	profiles, err := config.LoadProfiles(s.Ctx.FS, s.Settings.ConfigPath())
	if err != nil {
		return nil, core.ResolutionError(err, "load profiles")
	}
	s.Resolver.Profiles = profiles
	return profiles, nil
}

// resolve resolves the run's profile and stores it on the context.
func (s *session) resolve() (core.Profile, error) {
	if _, err := s.loadProfiles(); err != nil {
		return core.Profile{}, err
	}
	p, err := s.Resolver.Resolve(profileFlag)
	if err != nil {
		return core.Profile{}, err
	}
	s.Ctx.Profile = p
	s.Ctx.Logger.Info(fmt.Sprintf("Profile %s", p.Name))
	return p, nil
}

func (s *session) factory() *resources.Factory {
	f := resources.NewFactory(s.Ctx, s.Settings.Extensions.Editor)
	f.Editors = s.Settings.Extensions.Editors
	return f
}

// repoRoot is --repo if given, else the git top-level of the working
// directory, else the working directory itself.
func repoRoot(runner core.Runner) (string, error) {
	if repoFlag != "" {
		return filepath.Abs(repoFlag)
	}
	if out, err := runner.CombinedOutput("git", "rev-parse", "--show-toplevel"); err == nil {
		return strings.TrimSpace(out), nil
	}
	return os.Getwd()
}
