package resources

import "github.com/melih-ucgun/yurt/internal/core"

type FlatpakManager struct{}

func (m *FlatpakManager) Name() string { return "flatpak" }

func (m *FlatpakManager) IsInstalled(runner core.Runner, name string) (bool, error) {
	// flatpak info <app-id> exits 0 if installed, 1 otherwise
	return queryInstalled(runner, "flatpak", "info", name)
}

func (m *FlatpakManager) Install(runner core.Runner, name string) error {
	return run(runner, "flatpak", "install", "-y", "--noninteractive", "flathub", name)
}
