package core

import "os"

// SystemContext holds everything a task or resource needs at run time.
// It is read-only once the run starts.
type SystemContext struct {
	Platform PlatformInfo

	// Paths
	HomeDir  string // where links are created
	RepoRoot string // working copy root
	FilesDir string // link sources live under RepoRoot/FilesDir

	// Run mode
	Profile Profile
	DryRun  bool

	// Collaborators
	Logger Logger
	UI     UI
	FS     FileSystem
	Runner Runner
}

// PlatformInfo is the part of platform detection resources care about.
type PlatformInfo interface {
	PackageManager() string
	AURHelper() string
	IsWindows() bool
}

// NewSystemContext returns a context with real collaborators and quiet output.
// Detection and profile resolution fill in the rest.
func NewSystemContext(dryRun bool) *SystemContext {
	home, _ := os.UserHomeDir()
	return &SystemContext{
		HomeDir: home,
		DryRun:  dryRun,
		Logger:  NopLogger{},
		UI:      &NoOpUI{},
		FS:      &RealFS{},
		Runner:  &RealRunner{},
	}
}
