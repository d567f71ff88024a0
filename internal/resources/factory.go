package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/melih-ucgun/yurt/internal/config"
	"github.com/melih-ucgun/yurt/internal/core"
)

// Factory turns loaded entries into resources. The set of kinds is closed:
// one constructor per domain.
type Factory struct {
	HomeDir  string
	FilesDir string
	RepoRoot string
	Platform core.PlatformInfo
	// Editor is used for extension entries that do not name one.
	Editor string
	// Editors limits the editor CLIs extension records may name. Empty
	// accepts any.
	Editors []string
	// Sudo prefixes commands that need root.
	Sudo bool

	managers map[string]PackageManager
	lister   *ExtensionLister
}

// NewFactory builds a factory from the run context.
func NewFactory(ctx *core.SystemContext, editor string) *Factory {
	return &Factory{
		HomeDir:  ctx.HomeDir,
		FilesDir: ctx.FilesDir,
		RepoRoot: ctx.RepoRoot,
		Platform: ctx.Platform,
		Editor:   editor,
		Sudo:     NeedsSudo(ctx.Platform),
	}
}

// NeedsSudo is true for a non-root user on a unix system.
func NeedsSudo(p core.PlatformInfo) bool {
	return p != nil && !p.IsWindows() && os.Geteuid() != 0
}

func (f *Factory) home(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.HomeDir, p)
}

func (f *Factory) repo(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.RepoRoot, p)
}

func (f *Factory) Symlinks(entries []config.SymlinkEntry) []core.Resource {
	out := make([]core.Resource, 0, len(entries))
	for _, e := range entries {
		link := NewSymlink(filepath.Join(f.FilesDir, e.Source), f.home(e.Target))
		link.Protected = f.protected()
		out = append(out, link)
	}
	return out
}

// protected are the trees a symlink may never replace.
func (f *Factory) protected() []string {
	var roots []string
	for _, p := range []string{f.RepoRoot, f.FilesDir} {
		// a repository that contains the home directory cannot be fenced off
		if p != "" && !within(p, f.HomeDir) {
			roots = append(roots, p)
		}
	}
	return roots
}

func (f *Factory) Packages(entries []config.PackageEntry) []core.Resource {
	out := make([]core.Resource, 0, len(entries))
	for _, e := range entries {
		mgr, reason := f.manager(e.Source)
		res := NewPackage(e.Name, mgr)
		res.Unavailable = reason
		out = append(out, res)
	}
	return out
}

// manager picks the manager for a package source and reuses instances.
func (f *Factory) manager(source config.PackageSource) (PackageManager, string) {
	var name string
	switch source {
	case config.SourceAUR:
		if f.Platform != nil {
			name = f.Platform.AURHelper()
		}
		if name == "" {
			return nil, "no AUR helper (paru or yay) is installed"
		}
	case config.SourceFlatpak:
		name = "flatpak"
	default:
		if f.Platform != nil {
			name = f.Platform.PackageManager()
		}
		if name == "" {
			return nil, "no supported package manager found"
		}
	}

	if f.managers == nil {
		f.managers = make(map[string]PackageManager)
	}
	if mgr, ok := f.managers[name]; ok {
		return mgr, ""
	}
	mgr, err := GetPackageManager(name, f.Sudo)
	if err != nil {
		return nil, err.Error()
	}
	f.managers[name] = mgr
	return mgr, ""
}

func (f *Factory) Permissions(entries []config.PermissionEntry) []core.Resource {
	out := make([]core.Resource, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewPermission(f.repo(e.Path), e.Mode, e.Exact))
	}
	return out
}

func (f *Factory) Units(entries []config.UnitEntry) []core.Resource {
	out := make([]core.Resource, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewUnit(e.Name, e.User, f.Sudo))
	}
	return out
}

func (f *Factory) Registry(entries []config.RegistryEntry) []core.Resource {
	out := make([]core.Resource, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewRegistry(e.Key, e.Name, string(e.Type), e.Value))
	}
	return out
}

func (f *Factory) Extensions(entries []config.ExtensionEntry) []core.Resource {
	if f.lister == nil {
		f.lister = NewExtensionLister()
	}
	out := make([]core.Resource, 0, len(entries))
	for _, e := range entries {
		editor := e.Editor
		if editor == "" {
			editor = f.Editor
		}
		res := NewExtension(e.ID, editor, f.lister)
		if !f.editorAllowed(editor) {
			res.Unsupported = fmt.Sprintf("editor %s is not one of %s", editor, strings.Join(f.Editors, ", "))
		}
		out = append(out, res)
	}
	return out
}

func (f *Factory) editorAllowed(editor string) bool {
	if len(f.Editors) == 0 {
		return true
	}
	for _, e := range f.Editors {
		if e == editor {
			return true
		}
	}
	return false
}

func (f *Factory) SparseCheckout(lines []string) core.Resource {
	return NewSparseCheckout(f.RepoRoot, lines)
}

// Domain builds the resources of one loaded domain.
func (f *Factory) Domain(domain config.Domain, docs *config.Documents) ([]core.Resource, error) {
	switch domain {
	case config.DomainSymlinks:
		return f.Symlinks(docs.Symlinks), nil
	case config.DomainPackages:
		return f.Packages(docs.Packages), nil
	case config.DomainPermissions:
		return f.Permissions(docs.Permissions), nil
	case config.DomainUnits:
		return f.Units(docs.Units), nil
	case config.DomainRegistry:
		return f.Registry(docs.Registry), nil
	case config.DomainExtensions:
		return f.Extensions(docs.Extensions), nil
	default:
		return nil, fmt.Errorf("unknown domain %q", domain)
	}
}
