package resources

import (
	"fmt"
	"strings"

	"github.com/melih-ucgun/yurt/internal/core"
)

const TypeExtension = "extension"

// ExtensionLister caches "<editor> --list-extensions" per editor for the
// length of a run.
type ExtensionLister struct {
	installed map[string]map[string]bool
}

func NewExtensionLister() *ExtensionLister {
	return &ExtensionLister{installed: make(map[string]map[string]bool)}
}

func (l *ExtensionLister) list(runner core.Runner, editor string) (map[string]bool, error) {
	if set, ok := l.installed[editor]; ok {
		return set, nil
	}
	out, err := runner.CombinedOutput(editor, "--list-extensions")
	if err != nil {
		return nil, commandError(editor, []string{"--list-extensions"}, out, err)
	}
	set := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		if id := strings.TrimSpace(line); id != "" {
			set[strings.ToLower(id)] = true
		}
	}
	l.installed[editor] = set
	return set, nil
}

func (l *ExtensionLister) added(editor, id string) {
	if set, ok := l.installed[editor]; ok {
		set[strings.ToLower(id)] = true
	}
}

// ExtensionResource is an installed editor extension. Ids compare
// case-insensitively.
type ExtensionResource struct {
	core.BaseResource
	Editor string
	Lister *ExtensionLister
	// Unsupported is set for an editor outside the accepted list.
	Unsupported string
}

func NewExtension(id, editor string, lister *ExtensionLister) *ExtensionResource {
	if lister == nil {
		lister = NewExtensionLister()
	}
	return &ExtensionResource{
		BaseResource: core.BaseResource{Name: id, Type: TypeExtension},
		Editor:       editor,
		Lister:       lister,
	}
}

func (r *ExtensionResource) CurrentState(ctx *core.SystemContext) (core.State, error) {
	if r.Unsupported != "" {
		return core.Invalid(r.Unsupported), nil
	}
	if !ctx.Runner.LookPath(r.Editor) {
		return core.Invalid(fmt.Sprintf("editor %s is not installed", r.Editor)), nil
	}
	installed, err := r.Lister.list(ctx.Runner, r.Editor)
	if err != nil {
		return core.State{}, err
	}
	if installed[strings.ToLower(r.Name)] {
		return core.Correct(), nil
	}
	return core.Missing(), nil
}

func (r *ExtensionResource) Apply(ctx *core.SystemContext) error {
	done, err := recheck(ctx, r)
	if err != nil || done {
		return err
	}
	if err := run(ctx.Runner, r.Editor, "--install-extension", r.Name); err != nil {
		return err
	}
	r.Lister.added(r.Editor, r.Name)
	return nil
}
