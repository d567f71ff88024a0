package resources

import "github.com/melih-ucgun/yurt/internal/core"

type AptManager struct {
	Sudo bool
}

func (m *AptManager) Name() string { return "apt" }

func (m *AptManager) IsInstalled(runner core.Runner, name string) (bool, error) {
	// dpkg -s <pkg> exits 0 if installed, 1 otherwise
	return queryInstalled(runner, "dpkg", "-s", name)
}

func (m *AptManager) Install(runner core.Runner, name string) error {
	cmd, args := privileged(m.Sudo, "env", "DEBIAN_FRONTEND=noninteractive", "apt-get", "install", "-y", name)
	return run(runner, cmd, args...)
}
