package resources

import "github.com/melih-ucgun/yurt/internal/core"

type ParuManager struct{}

func (m *ParuManager) Name() string { return "paru" }

func (m *ParuManager) IsInstalled(runner core.Runner, name string) (bool, error) {
	// paru -Q works like pacman -Q
	return queryInstalled(runner, "paru", "-Q", name)
}

func (m *ParuManager) Install(runner core.Runner, name string) error {
	return run(runner, "paru", "-S", "--noconfirm", "--needed", name)
}
