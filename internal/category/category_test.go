package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		required []Category
		set      Set
		mode     Mode
		want     bool
	}{
		{"empty required, all", nil, NewSet(), All, true},
		{"empty required, any", nil, NewSet("x"), Any, true},
		{"subset, all", []Category{"arch", "desktop"}, NewSet("base", "arch", "desktop"), All, true},
		{"partial, all", []Category{"arch", "desktop"}, NewSet("base", "arch"), All, false},
		{"disjoint, all", []Category{"windows"}, NewSet("base"), All, false},
		{"one overlap, any", []Category{"x", "y"}, NewSet("x"), Any, true},
		{"no overlap, any", []Category{"y"}, NewSet("x"), Any, false},
		{"case sensitive", []Category{"Arch"}, NewSet("arch"), All, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.required, tt.set, tt.mode))
		})
	}
}

// All mode is exactly the subset relation; Any mode is non-empty intersection.
func TestMatches_SetSemantics(t *testing.T) {
	universe := []Category{"a", "b", "c", "d"}
	subsets := func() [][]Category {
		var out [][]Category
		for mask := 0; mask < 1<<len(universe); mask++ {
			var s []Category
			for i, c := range universe {
				if mask&(1<<i) != 0 {
					s = append(s, c)
				}
			}
			out = append(out, s)
		}
		return out
	}()

	for _, r := range subsets {
		for _, a := range subsets {
			set := NewSet(a...)

			subset := true
			intersects := false
			for _, c := range r {
				if set.Has(c) {
					intersects = true
				} else {
					subset = false
				}
			}

			assert.Equal(t, subset, Matches(r, set, All), "All %v in %v", r, a)
			if len(r) > 0 {
				assert.Equal(t, intersects, Matches(r, set, Any), "Any %v in %v", r, a)
			}
		}
	}
}

func TestParseTag(t *testing.T) {
	assert.Equal(t, []Category{"base"}, ParseTag("base"))
	assert.Equal(t, []Category{"arch", "desktop"}, ParseTag("arch,desktop"))
	assert.Equal(t, []Category{"arch", "desktop"}, ParseTag(" arch , desktop ,"))
	assert.Empty(t, ParseTag(""))
	assert.Equal(t, "arch,desktop", JoinTag(ParseTag("arch, desktop")))
}

func TestSet(t *testing.T) {
	s := FromStrings("b", " a ", "")
	assert.Len(t, s, 2)
	assert.Equal(t, "a,b", s.String())

	s.Remove("a")
	assert.False(t, s.Has("a"))
	assert.True(t, s.Has("b"))
}
