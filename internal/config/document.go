package config

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/melih-ucgun/yurt/internal/category"
)

// ErrDocumentMissing is returned when a document does not exist. For desired
// state documents this is recoverable: the domain simply has no entries.
var ErrDocumentMissing = errors.New("document does not exist")

// Reader is the part of core.FileSystem the loaders need.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

// Section is one category-tagged block of a document, in declaration order.
type Section struct {
	Tag        string
	Categories []category.Category
	Entries    []*yaml.Node
	Line       int
}

// ReadSections reads and parses a sectioned document.
func ReadSections(r Reader, path string) ([]Section, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrDocumentMissing)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	sections, err := ParseSections(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sections, nil
}

// ParseSections parses a YAML mapping of category tags to entry sequences.
// Key order is kept. An empty document has no sections.
func ParseSections(data []byte) ([]Section, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping of category tags", root.Line)
	}

	sections := make([]Section, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: section key must be a category tag", key.Line)
		}

		s := Section{
			Tag:        key.Value,
			Categories: category.ParseTag(key.Value),
			Line:       key.Line,
		}
		switch {
		case value.Kind == yaml.SequenceNode:
			s.Entries = value.Content
		case value.Kind == yaml.ScalarNode && value.Tag == "!!null":
			// "tag:" with nothing under it
		default:
			return nil, fmt.Errorf("line %d: section %q must be a list", value.Line, key.Value)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// Filter keeps the sections whose categories are all active.
func Filter(sections []Section, active category.Set) []Section {
	var out []Section
	for _, s := range sections {
		if category.Matches(s.Categories, active, category.All) {
			out = append(out, s)
		}
	}
	return out
}

// DecodeSection turns the entries of one section into typed values, keeping
// source order.
func DecodeSection[E any](s Section) ([]E, error) {
	out := make([]E, 0, len(s.Entries))
	for _, node := range s.Entries {
		var e E
		if err := node.Decode(&e); err != nil {
			return nil, fmt.Errorf("section %q, line %d: %w", s.Tag, node.Line, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Load reads one desired-state document and returns the entries of every
// section whose categories are all active, flattened in source order with
// no de-duplication. Every section is decoded, active or not, so a broken
// entry fails the document regardless of the profile.
func Load[E any](r Reader, path string, active category.Set) ([]E, error) {
	sections, err := ReadSections(r, path)
	if err != nil {
		return nil, err
	}

	var out []E
	for _, s := range sections {
		entries, err := DecodeSection[E](s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if category.Matches(s.Categories, active, category.All) {
			out = append(out, entries...)
		}
	}
	return out, nil
}
