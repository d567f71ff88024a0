package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih-ucgun/yurt/internal/category"
	"github.com/melih-ucgun/yurt/internal/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseSections_KeepsOrder(t *testing.T) {
	sections, err := ParseSections([]byte(`
zeta:
  - one
base:
  - two
"arch, desktop":
  - three
empty:
`))
	require.NoError(t, err)
	require.Len(t, sections, 4)

	assert.Equal(t, "zeta", sections[0].Tag)
	assert.Equal(t, "base", sections[1].Tag)
	assert.Equal(t, []category.Category{"arch", "desktop"}, sections[2].Categories)
	assert.Empty(t, sections[3].Entries)
}

func TestParseSections_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"top level list", "- a\n- b\n"},
		{"section is a mapping", "base:\n  a: b\n"},
		{"section is a scalar", "base: git\n"},
		{"not yaml", "base: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSections([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseSections_Empty(t *testing.T) {
	sections, err := ParseSections([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestLoad_AndFiltering(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "packages.yaml", `
base:
  - entry1
arch,desktop:
  - entry2
`)

	entries, err := Load[PackageEntry](&core.RealFS{}, path, category.FromStrings("base"))
	require.NoError(t, err)
	assert.Equal(t, []string{"entry1"}, packageNames(entries))

	entries, err = Load[PackageEntry](&core.RealFS{}, path, category.FromStrings("base", "arch", "desktop"))
	require.NoError(t, err)
	assert.Equal(t, []string{"entry1", "entry2"}, packageNames(entries))

	entries, err = Load[PackageEntry](&core.RealFS{}, path, category.FromStrings("base", "arch"))
	require.NoError(t, err)
	assert.Equal(t, []string{"entry1"}, packageNames(entries), "both categories must be active")
}

func TestLoad_PreservesOrderAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "packages.yaml", `
base:
  - b
  - a
desktop:
  - c
  - a
`)
	entries, err := Load[PackageEntry](&core.RealFS{}, path, category.FromStrings("base", "desktop"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c", "a"}, packageNames(entries))
}

func TestLoad_MissingIsDistinct(t *testing.T) {
	_, err := Load[PackageEntry](&core.RealFS{}, filepath.Join(t.TempDir(), "nope.yaml"), category.NewSet())
	assert.ErrorIs(t, err, ErrDocumentMissing)
}

func TestLoad_BrokenInactiveSectionStillFails(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "packages.yaml", `
base:
  - git
windows:
  - [not, an, entry]
`)
	_, err := Load[PackageEntry](&core.RealFS{}, path, category.FromStrings("base"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDocumentMissing)
	assert.Contains(t, err.Error(), "packages.yaml")
}

func packageNames(entries []PackageEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "symlinks.yaml", "base:\n  - .bashrc\n  - {source: nvim, target: .config/nvim}\n")
	writeFile(t, dir, "packages.yaml", "base: [git\n")
	writeFile(t, dir, "units.yaml", "base:\n  - sshd.service\n  - {name: syncthing.service, user: true}\n")

	docs := LoadDocuments(&core.RealFS{}, dir, category.FromStrings("base"))

	assert.Len(t, docs.Symlinks, 2)
	assert.Len(t, docs.Units, 2)
	assert.Empty(t, docs.Packages)
	assert.Empty(t, docs.Registry)

	require.Error(t, docs.Err(DomainPackages))
	assert.True(t, core.IsKind(docs.Err(DomainPackages), core.KindLoad))
	assert.NoError(t, docs.Err(DomainSymlinks))
	assert.NoError(t, docs.Err(DomainRegistry), "a missing document is not an error")
}
