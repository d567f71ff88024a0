package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/melih-ucgun/yurt/internal/core"
)

const TypePermission = "permission"

const modeBits = os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky

// PermissionResource manages the mode bits of a repository file. Without
// Exact it only requires the owner-execute bit.
type PermissionResource struct {
	core.BaseResource
	Path  string
	Mode  os.FileMode
	Exact bool
}

func NewPermission(path string, mode os.FileMode, exact bool) *PermissionResource {
	return &PermissionResource{
		BaseResource: core.BaseResource{Name: path, Type: TypePermission},
		Path:         path,
		Mode:         mode,
		Exact:        exact,
	}
}

func (r *PermissionResource) CurrentState(ctx *core.SystemContext) (core.State, error) {
	info, err := ctx.FS.Stat(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.Invalid(fmt.Sprintf("%s is not checked out", r.Path)), nil
		}
		return core.State{}, err
	}

	if r.desired(info.Mode()) == info.Mode()&modeBits {
		return core.Correct(), nil
	}
	return core.Incorrect(formatMode(info.Mode())), nil
}

func (r *PermissionResource) desired(current os.FileMode) os.FileMode {
	if r.Exact {
		return r.Mode & modeBits
	}
	return (current & modeBits) | 0o100
}

func (r *PermissionResource) Apply(ctx *core.SystemContext) error {
	done, err := recheck(ctx, r)
	if err != nil || done {
		return err
	}
	info, err := ctx.FS.Stat(r.Path)
	if err != nil {
		return err
	}
	return ctx.FS.Chmod(r.Path, r.desired(info.Mode()))
}

func formatMode(m os.FileMode) string {
	bits := uint32(m.Perm())
	if m&os.ModeSetuid != 0 {
		bits |= 0o4000
	}
	if m&os.ModeSetgid != 0 {
		bits |= 0o2000
	}
	if m&os.ModeSticky != 0 {
		bits |= 0o1000
	}
	return fmt.Sprintf("%04o", bits)
}
