package resources

import "github.com/melih-ucgun/yurt/internal/core"

type DnfManager struct {
	Sudo bool
}

func (m *DnfManager) Name() string { return "dnf" }

func (m *DnfManager) IsInstalled(runner core.Runner, name string) (bool, error) {
	return queryInstalled(runner, "rpm", "-q", name)
}

func (m *DnfManager) Install(runner core.Runner, name string) error {
	cmd, args := privileged(m.Sudo, "dnf", "install", "-y", name)
	return run(runner, cmd, args...)
}
