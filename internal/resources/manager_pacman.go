package resources

import "github.com/melih-ucgun/yurt/internal/core"

type PacmanManager struct {
	Sudo bool
}

func (m *PacmanManager) Name() string { return "pacman" }

func (m *PacmanManager) IsInstalled(runner core.Runner, name string) (bool, error) {
	// pacman -Q <pkg> exits 0 if installed, 1 otherwise. AUR packages are
	// registered in the same database.
	return queryInstalled(runner, "pacman", "-Q", name)
}

func (m *PacmanManager) Install(runner core.Runner, name string) error {
	// --needed: skip if up to date
	cmd, args := privileged(m.Sudo, "pacman", "-S", "--noconfirm", "--needed", name)
	return run(runner, cmd, args...)
}
