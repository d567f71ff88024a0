package config

import (
	"errors"
	"path/filepath"

	"github.com/melih-ucgun/yurt/internal/category"
	"github.com/melih-ucgun/yurt/internal/consts"
	"github.com/melih-ucgun/yurt/internal/core"
)

// Domain names one desired-state document.
type Domain string

const (
	DomainSymlinks    Domain = "symlinks"
	DomainPackages    Domain = "packages"
	DomainUnits       Domain = "units"
	DomainPermissions Domain = "permissions"
	DomainRegistry    Domain = "registry"
	DomainExtensions  Domain = "extensions"
)

// Domains lists every desired-state domain.
var Domains = []Domain{
	DomainSymlinks,
	DomainPackages,
	DomainUnits,
	DomainPermissions,
	DomainRegistry,
	DomainExtensions,
}

// File returns the document file name of the domain.
func (d Domain) File() string {
	return string(d) + consts.DocumentExt
}

// Documents holds the filtered entries of every domain. A domain whose
// document failed to load has no entries and an error in Errors.
type Documents struct {
	Symlinks    []SymlinkEntry
	Packages    []PackageEntry
	Units       []UnitEntry
	Permissions []PermissionEntry
	Registry    []RegistryEntry
	Extensions  []ExtensionEntry

	Errors map[Domain]error
}

// Err returns the load error of a domain, if any.
func (d *Documents) Err(domain Domain) error {
	return d.Errors[domain]
}

// LoadDocuments loads every domain document from dir. A missing document
// yields no entries; a broken one is recorded as a load error for that
// domain only.
func LoadDocuments(r Reader, dir string, active category.Set) *Documents {
	docs := &Documents{Errors: make(map[Domain]error)}

	var err error
	docs.Symlinks, err = Load[SymlinkEntry](r, filepath.Join(dir, DomainSymlinks.File()), active)
	docs.record(DomainSymlinks, err)
	docs.Packages, err = Load[PackageEntry](r, filepath.Join(dir, DomainPackages.File()), active)
	docs.record(DomainPackages, err)
	docs.Units, err = Load[UnitEntry](r, filepath.Join(dir, DomainUnits.File()), active)
	docs.record(DomainUnits, err)
	docs.Permissions, err = Load[PermissionEntry](r, filepath.Join(dir, DomainPermissions.File()), active)
	docs.record(DomainPermissions, err)
	docs.Registry, err = Load[RegistryEntry](r, filepath.Join(dir, DomainRegistry.File()), active)
	docs.record(DomainRegistry, err)
	docs.Extensions, err = Load[ExtensionEntry](r, filepath.Join(dir, DomainExtensions.File()), active)
	docs.record(DomainExtensions, err)

	return docs
}

func (d *Documents) record(domain Domain, err error) {
	if err == nil || errors.Is(err, ErrDocumentMissing) {
		return
	}
	d.Errors[domain] = core.LoadError(err, "load %s", domain)
}
