package resources

import (
	"fmt"

	"github.com/melih-ucgun/yurt/internal/core"
)

const TypePackage = "package"

// PackageResource is an installed package. A nil Manager means no manager can
// serve the package here, which makes it Invalid.
type PackageResource struct {
	core.BaseResource
	Manager PackageManager
	// Unavailable explains a nil Manager.
	Unavailable string
}

func NewPackage(name string, mgr PackageManager) *PackageResource {
	return &PackageResource{
		BaseResource: core.BaseResource{Name: name, Type: TypePackage},
		Manager:      mgr,
	}
}

func (r *PackageResource) CurrentState(ctx *core.SystemContext) (core.State, error) {
	if r.Manager == nil {
		return core.Invalid(r.Unavailable), nil
	}
	installed, err := r.Manager.IsInstalled(ctx.Runner, r.Name)
	if err != nil {
		return core.State{}, fmt.Errorf("failed to query %s: %w", r.Manager.Name(), err)
	}
	if installed {
		return core.Correct(), nil
	}
	return core.Missing(), nil
}

func (r *PackageResource) Apply(ctx *core.SystemContext) error {
	done, err := recheck(ctx, r)
	if err != nil || done {
		return err
	}
	if err := r.Manager.Install(ctx.Runner, r.Name); err != nil {
		return fmt.Errorf("%s failed to install %s: %w", r.Manager.Name(), r.Name, err)
	}
	return nil
}
