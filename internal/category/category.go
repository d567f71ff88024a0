// Package category evaluates which configuration sections and repository
// paths apply to the categories of the current run.
package category

import (
	"sort"
	"strings"
)

// Category is an opaque, case-sensitive label such as "arch" or "desktop".
type Category string

// Mode selects how a required-category list is compared against a set.
type Mode int

const (
	// All requires every category to be present (section activation).
	All Mode = iota
	// Any requires at least one category to be present (sparse-checkout exclusion).
	Any
)

func (m Mode) String() string {
	switch m {
	case All:
		return "all"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// TagSeparator joins the categories of a compound section tag.
const TagSeparator = ","

// Set is an unordered collection of categories.
type Set map[Category]struct{}

// NewSet builds a set from the given categories.
func NewSet(cats ...Category) Set {
	s := make(Set, len(cats))
	for _, c := range cats {
		s.Add(c)
	}
	return s
}

// FromStrings builds a set from plain strings, ignoring empty values.
func FromStrings(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			s.Add(Category(v))
		}
	}
	return s
}

func (s Set) Add(c Category)    { s[c] = struct{}{} }
func (s Set) Remove(c Category) { delete(s, c) }

func (s Set) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the categories in lexical order, for stable output.
func (s Set) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range s.Sorted() {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, TagSeparator)
}

// Matches reports whether required is satisfied by set under mode.
// An empty required list always matches.
func Matches(required []Category, set Set, mode Mode) bool {
	if len(required) == 0 {
		return true
	}
	switch mode {
	case Any:
		for _, c := range required {
			if set.Has(c) {
				return true
			}
		}
		return false
	default:
		for _, c := range required {
			if !set.Has(c) {
				return false
			}
		}
		return true
	}
}

// ParseTag splits a compound section key like "arch,desktop" into its
// categories. Surrounding whitespace and empty parts are dropped.
func ParseTag(tag string) []Category {
	var out []Category
	for _, part := range strings.Split(tag, TagSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, Category(part))
		}
	}
	return out
}

// JoinTag is the inverse of ParseTag.
func JoinTag(cats []Category) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, TagSeparator)
}
