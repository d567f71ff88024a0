package resources

import "github.com/melih-ucgun/yurt/internal/core"

type BrewManager struct{}

func (m *BrewManager) Name() string { return "brew" }

func (m *BrewManager) IsInstalled(runner core.Runner, name string) (bool, error) {
	return queryInstalled(runner, "brew", "list", "--versions", name)
}

func (m *BrewManager) Install(runner core.Runner, name string) error {
	return run(runner, "brew", "install", name)
}
