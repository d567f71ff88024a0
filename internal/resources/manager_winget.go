package resources

import "github.com/melih-ucgun/yurt/internal/core"

type WingetManager struct{}

func (m *WingetManager) Name() string { return "winget" }

func (m *WingetManager) IsInstalled(runner core.Runner, name string) (bool, error) {
	return queryInstalled(runner, "winget", "list", "--exact", "--id", name)
}

func (m *WingetManager) Install(runner core.Runner, name string) error {
	return run(runner, "winget", "install", "--exact", "--id", name,
		"--silent", "--accept-package-agreements", "--accept-source-agreements")
}
