// Package tasks builds the fixed task lists of install, uninstall and
// validate from loaded configuration.
package tasks

import (
	"errors"
	"path/filepath"

	"github.com/melih-ucgun/yurt/internal/category"
	"github.com/melih-ucgun/yurt/internal/config"
	"github.com/melih-ucgun/yurt/internal/consts"
	"github.com/melih-ucgun/yurt/internal/core"
	"github.com/melih-ucgun/yurt/internal/resources"
	"github.com/melih-ucgun/yurt/internal/sparse"
)

// Task names, in run order.
const (
	SparseCheckout = "sparse-checkout"
	Packages       = "packages"
	Symlinks       = "symlinks"
	Permissions    = "permissions"
	Units          = "units"
	Registry       = "registry"
	Extensions     = "extensions"
)

// Order is the declared run order. Later tasks rely on the effects of
// earlier ones.
var Order = []string{SparseCheckout, Packages, Symlinks, Permissions, Units, Registry, Extensions}

var domainOf = map[string]config.Domain{
	Packages:    config.DomainPackages,
	Symlinks:    config.DomainSymlinks,
	Permissions: config.DomainPermissions,
	Units:       config.DomainUnits,
	Registry:    config.DomainRegistry,
	Extensions:  config.DomainExtensions,
}

// Input is everything loaded for a run.
type Input struct {
	Docs *config.Documents
	// Manifest drives the sparse checkout. A nil Manifest without an error
	// means there is no manifest and nothing to restrict.
	Manifest    []sparse.Entry
	ManifestErr error
	Excluded    category.Set
}

// Load reads every document of configDir for a resolved profile. Load errors
// are kept per domain so that one broken document only fails its own task.
func Load(r config.Reader, configDir string, profile core.Profile) Input {
	in := Input{
		Docs:     config.LoadDocuments(r, configDir, profile.Active),
		Excluded: profile.Excluded,
	}
	manifest, err := config.LoadManifest(r, filepath.Join(configDir, consts.ManifestFileName))
	switch {
	case errors.Is(err, config.ErrDocumentMissing):
	case err != nil:
		in.ManifestErr = core.LoadError(err, "load manifest")
	case manifest == nil:
		// an empty manifest still resets the checkout to everything
		in.Manifest = []sparse.Entry{}
	default:
		in.Manifest = manifest
	}
	return in
}

// Install returns every task in declared order.
func Install(f *resources.Factory, in Input) []core.Task {
	tasks := make([]core.Task, 0, len(Order))
	for _, name := range Order {
		if name == SparseCheckout {
			tasks = append(tasks, sparseTask(f, in))
			continue
		}
		tasks = append(tasks, domainTask(f, in.Docs, name, core.ModeApply))
	}
	return tasks
}

// Uninstall removes the links install created. Other domains are left alone.
func Uninstall(f *resources.Factory, in Input) []core.Task {
	return []core.Task{domainTask(f, in.Docs, Symlinks, core.ModeRemove)}
}

// Validate builds the same list as Install; callers audit it instead of
// running it.
func Validate(f *resources.Factory, in Input) []core.Task {
	return Install(f, in)
}

func domainTask(f *resources.Factory, docs *config.Documents, name string, mode core.TaskMode) *core.ResourceTask {
	domain := domainOf[name]
	task := &core.ResourceTask{TaskName: name, Mode: mode}
	if err := docs.Err(domain); err != nil {
		task.LoadErr = err
		return task
	}
	res, err := f.Domain(domain, docs)
	if err != nil {
		task.LoadErr = err
		return task
	}
	task.Resources = res
	return task
}

func sparseTask(f *resources.Factory, in Input) *core.ResourceTask {
	task := &core.ResourceTask{TaskName: SparseCheckout}
	switch {
	case in.ManifestErr != nil:
		task.LoadErr = in.ManifestErr
	case in.Manifest != nil:
		task.Resources = []core.Resource{f.SparseCheckout(sparse.Plan(in.Manifest, in.Excluded))}
	}
	return task
}
