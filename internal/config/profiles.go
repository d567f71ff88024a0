package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/melih-ucgun/yurt/internal/category"
	"github.com/melih-ucgun/yurt/internal/consts"
)

// ProfileDef is a named bundle of categories as declared in the profile
// document.
type ProfileDef struct {
	Name    string              `yaml:"-" toml:"-"`
	Include []category.Category `yaml:"include" toml:"include"`
	Exclude []category.Category `yaml:"exclude" toml:"exclude"`
}

// Profiles is the profile document, in declaration order.
type Profiles struct {
	Defs []ProfileDef
	Path string
}

// Names returns the declared profile names in order.
func (p *Profiles) Names() []string {
	names := make([]string, len(p.Defs))
	for i, d := range p.Defs {
		names[i] = d.Name
	}
	return names
}

// Get looks a profile up by exact name.
func (p *Profiles) Get(name string) (ProfileDef, bool) {
	for _, d := range p.Defs {
		if d.Name == name {
			return d, true
		}
	}
	return ProfileDef{}, false
}

// LoadProfiles reads profiles.yaml from dir, or profiles.toml when there is
// no YAML document. It returns ErrDocumentMissing when neither exists.
func LoadProfiles(r Reader, dir string) (*Profiles, error) {
	yamlPath := filepath.Join(dir, consts.ProfilesFileName)
	data, err := r.ReadFile(yamlPath)
	if err == nil {
		defs, err := parseProfilesYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", yamlPath, err)
		}
		return &Profiles{Defs: defs, Path: yamlPath}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", yamlPath, err)
	}

	tomlPath := filepath.Join(dir, consts.ProfilesTOMLFileName)
	data, err = r.ReadFile(tomlPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", yamlPath, ErrDocumentMissing)
		}
		return nil, fmt.Errorf("read %s: %w", tomlPath, err)
	}
	defs, err := parseProfilesTOML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tomlPath, err)
	}
	return &Profiles{Defs: defs, Path: tomlPath}, nil
}

func parseProfilesYAML(data []byte) ([]ProfileDef, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of profile names", root.Line)
	}

	defs := make([]ProfileDef, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		def := ProfileDef{Name: key.Value}
		if value.Kind != yaml.ScalarNode || value.Tag != "!!null" {
			if err := value.Decode(&def); err != nil {
				return nil, fmt.Errorf("profile %q: %w", key.Value, err)
			}
		}
		def.Name = key.Value
		defs = append(defs, def)
	}
	return defs, nil
}

// TOML tables are unordered once decoded, so profiles come back sorted.
func parseProfilesTOML(data []byte) ([]ProfileDef, error) {
	var raw map[string]ProfileDef
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]ProfileDef, 0, len(names))
	for _, name := range names {
		def := raw[name]
		def.Name = name
		defs = append(defs, def)
	}
	return defs, nil
}
