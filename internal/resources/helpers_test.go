package resources

import (
	"github.com/melih-ucgun/yurt/internal/core"
)

type fakePlatform struct {
	manager string
	aur     string
	windows bool
}

func (f fakePlatform) PackageManager() string { return f.manager }
func (f fakePlatform) AURHelper() string      { return f.aur }
func (f fakePlatform) IsWindows() bool        { return f.windows }

func testContext(dryRun bool) (*core.SystemContext, *core.MockRunner) {
	ctx := core.NewSystemContext(dryRun)
	runner := core.NewMockRunner()
	ctx.Runner = runner
	ctx.Platform = fakePlatform{manager: "pacman", aur: "paru"}
	return ctx, runner
}
