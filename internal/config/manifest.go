package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/melih-ucgun/yurt/internal/category"
	"github.com/melih-ucgun/yurt/internal/sparse"
)

// LoadManifest reads the sparse-checkout manifest. Unlike desired-state
// documents it is not filtered: every section is returned, and a path listed
// under several tags accumulates their categories at its first position.
// A missing manifest returns ErrDocumentMissing; an empty one yields no
// entries.
func LoadManifest(r Reader, path string) ([]sparse.Entry, error) {
	sections, err := ReadSections(r, path)
	if err != nil {
		return nil, err
	}
	return manifestEntries(sections)
}

func manifestEntries(sections []Section) ([]sparse.Entry, error) {
	var entries []sparse.Entry
	index := make(map[string]int)

	for _, s := range sections {
		if len(s.Categories) == 0 {
			return nil, fmt.Errorf("line %d: manifest sections need at least one category", s.Line)
		}
		for _, node := range s.Entries {
			if node.Kind != yaml.ScalarNode || strings.TrimSpace(node.Value) == "" {
				return nil, fmt.Errorf("section %q, line %d: manifest entries must be paths", s.Tag, node.Line)
			}
			p := strings.TrimSpace(node.Value)

			if i, ok := index[p]; ok {
				entries[i].Categories = mergeCategories(entries[i].Categories, s.Categories)
				continue
			}
			index[p] = len(entries)
			entries = append(entries, sparse.Entry{
				Path:       p,
				Categories: append([]category.Category(nil), s.Categories...),
			})
		}
	}
	return entries, nil
}

func mergeCategories(have, add []category.Category) []category.Category {
	set := category.NewSet(have...)
	for _, c := range add {
		if !set.Has(c) {
			set.Add(c)
			have = append(have, c)
		}
	}
	return have
}
