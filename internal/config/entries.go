package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// shape is the form an entry was written in: a bare string such as "git",
// or a mapping carrying extra metadata.
type shape int

const (
	scalar shape = iota
	record
)

// shapeOf rejects anything that is neither a string nor a mapping.
func shapeOf(node *yaml.Node) (shape, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" || strings.TrimSpace(node.Value) == "" {
			return 0, fmt.Errorf("line %d: empty entry", node.Line)
		}
		return scalar, nil
	case yaml.MappingNode:
		return record, nil
	default:
		return 0, fmt.Errorf("line %d: entry must be a string or a mapping", node.Line)
	}
}

func required(field, value string, line int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("line %d: %q is required", line, field)
	}
	return nil
}

// SymlinkEntry links Target (relative to the home directory unless absolute)
// to Source (relative to the files directory of the repository).
type SymlinkEntry struct {
	Source string
	Target string
}

func (e *SymlinkEntry) UnmarshalYAML(node *yaml.Node) error {
	form, err := shapeOf(node)
	if err != nil {
		return err
	}
	if form == scalar {
		e.Source = strings.TrimSpace(node.Value)
		e.Target = e.Source
		return nil
	}

	var raw struct {
		Source string `yaml:"source"`
		Target string `yaml:"target"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := required("source", raw.Source, node.Line); err != nil {
		return err
	}
	e.Source = raw.Source
	e.Target = raw.Target
	if e.Target == "" {
		e.Target = raw.Source
	}
	return nil
}

// PackageSource says which manager installs a package.
type PackageSource string

const (
	SourceNative  PackageSource = "native"
	SourceAUR     PackageSource = "aur"
	SourceFlatpak PackageSource = "flatpak"
)

// PackageEntry is a package name, optionally from an alternate source.
type PackageEntry struct {
	Name   string
	Source PackageSource
}

func (e *PackageEntry) UnmarshalYAML(node *yaml.Node) error {
	form, err := shapeOf(node)
	if err != nil {
		return err
	}
	e.Source = SourceNative
	if form == scalar {
		e.Name = strings.TrimSpace(node.Value)
		return nil
	}

	var raw struct {
		Name   string `yaml:"name"`
		Source string `yaml:"source"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := required("name", raw.Name, node.Line); err != nil {
		return err
	}
	e.Name = raw.Name

	switch src := PackageSource(strings.ToLower(raw.Source)); src {
	case "":
	case SourceNative, SourceAUR, SourceFlatpak:
		e.Source = src
	default:
		return fmt.Errorf("line %d: unknown package source %q", node.Line, raw.Source)
	}
	return nil
}

// UnitEntry is a systemd unit to enable, system-wide unless User is set.
type UnitEntry struct {
	Name string
	User bool
}

func (e *UnitEntry) UnmarshalYAML(node *yaml.Node) error {
	form, err := shapeOf(node)
	if err != nil {
		return err
	}
	if form == scalar {
		e.Name = strings.TrimSpace(node.Value)
		return nil
	}

	var raw struct {
		Name string `yaml:"name"`
		User bool   `yaml:"user"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := required("name", raw.Name, node.Line); err != nil {
		return err
	}
	e.Name, e.User = raw.Name, raw.User
	return nil
}

// PermissionEntry is a repository path whose mode bits are managed. Without
// an explicit Mode the path only needs to be executable by its owner.
type PermissionEntry struct {
	Path string
	Mode os.FileMode
	// Exact is set when Mode was given and must match bit for bit.
	Exact bool
}

func (e *PermissionEntry) UnmarshalYAML(node *yaml.Node) error {
	form, err := shapeOf(node)
	if err != nil {
		return err
	}
	if form == scalar {
		e.Path = strings.TrimSpace(node.Value)
		return nil
	}

	var raw struct {
		Path string `yaml:"path"`
		Mode string `yaml:"mode"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := required("path", raw.Path, node.Line); err != nil {
		return err
	}
	e.Path = raw.Path
	if raw.Mode == "" {
		return nil
	}

	mode, err := ParseMode(raw.Mode)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	e.Mode, e.Exact = mode, true
	return nil
}

// ParseMode parses an octal permission string such as "0755" or "644".
func ParseMode(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0o"), 8, 32)
	if err != nil || v > 0o7777 {
		return 0, fmt.Errorf("invalid mode %q: want octal permission bits", s)
	}
	return os.FileMode(v).Perm() | modeSpecial(v), nil
}

func modeSpecial(v uint64) os.FileMode {
	var m os.FileMode
	if v&0o4000 != 0 {
		m |= os.ModeSetuid
	}
	if v&0o2000 != 0 {
		m |= os.ModeSetgid
	}
	if v&0o1000 != 0 {
		m |= os.ModeSticky
	}
	return m
}

// RegistryType is the value type of a registry entry.
type RegistryType string

const (
	RegSZ       RegistryType = "REG_SZ"
	RegDWORD    RegistryType = "REG_DWORD"
	RegExpandSZ RegistryType = "REG_EXPAND_SZ"
)

// RegistryEntry is a single registry value. It has no scalar form.
type RegistryEntry struct {
	Key   string
	Name  string
	Type  RegistryType
	Value string
}

func (e *RegistryEntry) UnmarshalYAML(node *yaml.Node) error {
	form, err := shapeOf(node)
	if err != nil {
		return err
	}
	if form == scalar {
		return fmt.Errorf("line %d: registry entries must be records with key, name and value", node.Line)
	}

	var raw struct {
		Key   string `yaml:"key"`
		Name  string `yaml:"name"`
		Type  string `yaml:"type"`
		Value string `yaml:"value"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := required("key", raw.Key, node.Line); err != nil {
		return err
	}
	if err := required("name", raw.Name, node.Line); err != nil {
		return err
	}

	e.Key, e.Name, e.Value = raw.Key, raw.Name, raw.Value
	switch t := RegistryType(strings.ToUpper(raw.Type)); t {
	case "":
		e.Type = RegSZ
	case RegSZ, RegDWORD, RegExpandSZ:
		e.Type = t
	default:
		return fmt.Errorf("line %d: unsupported registry type %q", node.Line, raw.Type)
	}
	if e.Type == RegDWORD {
		if _, err := strconv.ParseUint(e.Value, 0, 32); err != nil {
			return fmt.Errorf("line %d: REG_DWORD value %q is not a number", node.Line, e.Value)
		}
	}
	return nil
}

// ExtensionEntry is an editor extension id. An empty Editor means the
// configured default editor.
type ExtensionEntry struct {
	ID     string
	Editor string
}

func (e *ExtensionEntry) UnmarshalYAML(node *yaml.Node) error {
	form, err := shapeOf(node)
	if err != nil {
		return err
	}
	if form == scalar {
		e.ID = strings.TrimSpace(node.Value)
		return nil
	}

	var raw struct {
		ID     string `yaml:"id"`
		Editor string `yaml:"editor"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := required("id", raw.ID, node.Line); err != nil {
		return err
	}
	e.ID, e.Editor = raw.ID, raw.Editor
	return nil
}
