package core

import (
	"fmt"

	"github.com/melih-ucgun/yurt/internal/category"
)

// Profile is the resolved category bundle for one run. It is built once at
// start-up and never mutated afterwards.
type Profile struct {
	Name     string
	Active   category.Set
	Excluded category.Set
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (active: %s; excluded: %s)", p.Name, p.Active, p.Excluded)
}
