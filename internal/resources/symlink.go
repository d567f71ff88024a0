package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/melih-ucgun/yurt/internal/core"
)

const TypeSymlink = "symlink"

// SymlinkResource makes Target a symbolic link to Source. Both paths are
// absolute.
type SymlinkResource struct {
	core.BaseResource
	Source string
	Target string
	// Protected lists trees that must never be replaced, such as the
	// repository itself. Source is always protected.
	Protected []string
}

func NewSymlink(source, target string) *SymlinkResource {
	return &SymlinkResource{
		BaseResource: core.BaseResource{Name: target, Type: TypeSymlink},
		Source:       filepath.Clean(source),
		Target:       filepath.Clean(target),
	}
}

// CurrentState compares link identity only: a link pointing at Source is
// Correct even if the file behind it was edited.
func (r *SymlinkResource) CurrentState(ctx *core.SystemContext) (core.State, error) {
	ok, err := core.Exists(ctx.FS, r.Source)
	if err != nil {
		return core.State{}, err
	}
	if !ok {
		return core.Invalid(fmt.Sprintf("source %s is not checked out", r.Source)), nil
	}

	// A linked parent directory can make Target an alias of a path
	// inside the repository.
	actual, err := resolve(ctx.FS, r.Target)
	if err != nil {
		return core.State{}, err
	}
	source, err := resolve(ctx.FS, r.Source)
	if err != nil {
		return core.State{}, err
	}
	if actual == source {
		return core.Correct(), nil
	}
	if root, inside := r.protectedRoot(ctx.FS, actual); inside {
		return core.Invalid(fmt.Sprintf("target resolves into %s", root)), nil
	}

	info, err := ctx.FS.Lstat(r.Target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return core.Missing(), nil
		}
		return core.State{}, err
	}

	if info.Mode()&os.ModeSymlink == 0 {
		if info.IsDir() {
			return core.Incorrect("directory"), nil
		}
		return core.Incorrect("regular file"), nil
	}

	dest, err := ctx.FS.Readlink(r.Target)
	if err != nil {
		return core.State{}, err
	}
	if r.pointsToSource(dest) {
		return core.Correct(), nil
	}
	return core.Incorrect(dest), nil
}

func (r *SymlinkResource) pointsToSource(dest string) bool {
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(r.Target), dest)
	}
	return filepath.Clean(dest) == r.Source
}

// Apply replaces whatever is at Target, directories included, with the link.
func (r *SymlinkResource) Apply(ctx *core.SystemContext) error {
	done, err := recheck(ctx, r)
	if err != nil || done {
		return err
	}

	if info, err := ctx.FS.Lstat(r.Target); err == nil {
		actual, err := resolve(ctx.FS, r.Target)
		if err != nil {
			return err
		}
		if root, inside := r.protectedRoot(ctx.FS, actual); inside {
			return fmt.Errorf("%w: %s resolves into %s", ErrInvalidPrecondition, r.Target, root)
		}
		if info.IsDir() {
			err = ctx.FS.RemoveAll(r.Target)
		} else {
			err = ctx.FS.Remove(r.Target)
		}
		if err != nil {
			return fmt.Errorf("failed to remove %s: %w", r.Target, err)
		}
	}

	if err := ctx.FS.MkdirAll(filepath.Dir(r.Target), 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := ctx.FS.Symlink(r.Source, r.Target); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}
	return nil
}

// Remove deletes the link, but only while it still points at Source. A target
// reached through a linked parent directory is left alone.
func (r *SymlinkResource) Remove(ctx *core.SystemContext) error {
	state, err := r.CurrentState(ctx)
	if err != nil {
		return err
	}
	if state.Kind != core.StateCorrect {
		return nil
	}
	// Correct through a linked parent: Target is the source itself.
	info, err := ctx.FS.Lstat(r.Target)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return err
	}
	return ctx.FS.Remove(r.Target)
}

func (r *SymlinkResource) protectedRoot(fsys core.FileSystem, actual string) (string, bool) {
	for _, root := range append([]string{r.Source}, r.Protected...) {
		resolved, err := resolve(fsys, root)
		if err != nil || resolved == "" {
			continue
		}
		if within(resolved, actual) {
			return root, true
		}
	}
	return "", false
}

// resolve returns where p really lives: symlinks in its parent directories
// are followed, p itself is not. Missing trailing components are kept as
// written.
func resolve(fsys core.FileSystem, p string) (string, error) {
	dir, base := filepath.Dir(p), filepath.Base(p)
	var rest []string
	for {
		actual, err := fsys.EvalSymlinks(dir)
		if err == nil {
			parts := append([]string{actual}, rest...)
			return filepath.Join(append(parts, base)...), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return p, nil
		}
		rest = append([]string{filepath.Base(dir)}, rest...)
		dir = parent
	}
}

// within reports whether p is root or lies below it.
func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
