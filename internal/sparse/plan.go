// Package sparse computes git sparse-checkout patterns from a manifest of
// categorized repository paths, and reads and writes the pattern file.
package sparse

import (
	"path"
	"strings"

	"github.com/melih-ucgun/yurt/internal/category"
)

// IncludeAll is the universal include line every plan starts with.
const IncludeAll = "/*"

// Entry is a repository path together with the categories it depends on.
// A path ending in "/" is a directory.
type Entry struct {
	Path       string
	Categories []category.Category
}

// IsDir reports whether the entry names a directory.
func (e Entry) IsDir() bool {
	return strings.HasSuffix(e.Path, "/")
}

// Pattern renders the exclusion line for the entry, anchored at the
// repository root.
func (e Entry) Pattern() string {
	p := path.Clean("/" + e.Path)
	if e.IsDir() {
		return "!" + strings.TrimSuffix(p, "/") + "/**"
	}
	return "!" + p
}

// key identifies the path an entry names, however it was spelled.
func (e Entry) key() string {
	return strings.TrimPrefix(path.Clean("/"+e.Path), "/")
}

// Plan computes the sparse-checkout pattern lines: the universal include
// first, then one exclusion per entry that depends on any excluded category,
// in manifest order. Later lines override earlier ones, so the order is
// significant.
func Plan(entries []Entry, excluded category.Set) []string {
	lines := []string{IncludeAll}
	for _, e := range Excluded(entries, excluded) {
		lines = append(lines, e.Pattern())
	}
	return lines
}

// Excluded returns the entries a plan leaves out, in order. A path is never
// returned twice, whichever categories matched it.
func Excluded(entries []Entry, excluded category.Set) []Entry {
	var out []Entry
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !category.Matches(e.Categories, excluded, category.Any) {
			continue
		}
		if seen[e.key()] {
			continue
		}
		seen[e.key()] = true
		out = append(out, e)
	}
	return out
}

// Render joins pattern lines into sparse-checkout file content.
func Render(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Parse splits sparse-checkout file content into pattern lines, dropping
// blanks and comments.
func Parse(content string) []string {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
