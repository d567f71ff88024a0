package resources

import "github.com/melih-ucgun/yurt/internal/core"

type YayManager struct{}

func (m *YayManager) Name() string { return "yay" }

func (m *YayManager) IsInstalled(runner core.Runner, name string) (bool, error) {
	return queryInstalled(runner, "yay", "-Q", name)
}

func (m *YayManager) Install(runner core.Runner, name string) error {
	return run(runner, "yay", "-S", "--noconfirm", "--needed", name)
}
