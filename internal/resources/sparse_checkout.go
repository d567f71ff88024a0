package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/melih-ucgun/yurt/internal/consts"
	"github.com/melih-ucgun/yurt/internal/core"
	"github.com/melih-ucgun/yurt/internal/sparse"
)

const TypeSparseCheckout = "sparse-checkout"

// SparseCheckoutResource keeps the repository's sparse-checkout patterns
// equal to a planned list. Identity is the exact sequence of pattern lines.
type SparseCheckoutResource struct {
	core.BaseResource
	RepoRoot string
	Lines    []string
}

func NewSparseCheckout(repoRoot string, lines []string) *SparseCheckoutResource {
	return &SparseCheckoutResource{
		BaseResource: core.BaseResource{Name: repoRoot, Type: TypeSparseCheckout},
		RepoRoot:     repoRoot,
		Lines:        lines,
	}
}

func (r *SparseCheckoutResource) git(args ...string) []string {
	return append([]string{"-C", r.RepoRoot}, args...)
}

func (r *SparseCheckoutResource) gitDir(ctx *core.SystemContext) (string, bool) {
	out, err := ctx.Runner.CombinedOutput("git", r.git("rev-parse", "--absolute-git-dir")...)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(out), true
}

// enabled reports core.sparseCheckout; git exits 1 when it is unset.
func (r *SparseCheckoutResource) enabled(ctx *core.SystemContext) (bool, error) {
	out, err := ctx.Runner.CombinedOutput("git", r.git("config", "--get", "core.sparseCheckout")...)
	if err != nil {
		if core.ExitCode(err) == 1 {
			return false, nil
		}
		return false, commandError("git", r.git("config", "--get", "core.sparseCheckout"), out, err)
	}
	return strings.TrimSpace(out) == "true", nil
}

// current returns the active pattern file content, or "" if there is none.
func (r *SparseCheckoutResource) current(ctx *core.SystemContext) (content string, present bool, err error) {
	gitDir, ok := r.gitDir(ctx)
	if !ok {
		return "", false, nil
	}
	data, err := ctx.FS.ReadFile(filepath.Join(gitDir, consts.SparseCheckoutFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func (r *SparseCheckoutResource) CurrentState(ctx *core.SystemContext) (core.State, error) {
	if _, ok := r.gitDir(ctx); !ok {
		return core.Invalid(fmt.Sprintf("%s is not a git work tree", r.RepoRoot)), nil
	}

	on, err := r.enabled(ctx)
	if err != nil {
		return core.State{}, err
	}
	content, present, err := r.current(ctx)
	if err != nil {
		return core.State{}, err
	}
	if !on || !present {
		return core.Missing(), nil
	}

	have := sparse.Parse(content)
	for i := 0; i < len(have) || i < len(r.Lines); i++ {
		switch {
		case i >= len(have):
			return core.Incorrect("missing " + r.Lines[i]), nil
		case i >= len(r.Lines):
			return core.Incorrect("extra " + have[i]), nil
		case have[i] != r.Lines[i]:
			return core.Incorrect(have[i]), nil
		}
	}
	return core.Correct(), nil
}

// Diff renders the pattern change Apply would make.
func (r *SparseCheckoutResource) Diff(ctx *core.SystemContext) (string, error) {
	content, _, err := r.current(ctx)
	if err != nil {
		return "", err
	}
	return core.GenerateDiff(sparse.Render(sparse.Parse(content)), sparse.Render(r.Lines)), nil
}

func (r *SparseCheckoutResource) Apply(ctx *core.SystemContext) error {
	done, err := recheck(ctx, r)
	if err != nil || done {
		return err
	}

	on, err := r.enabled(ctx)
	if err != nil {
		return err
	}
	if !on {
		if err := run(ctx.Runner, "git", r.git("sparse-checkout", "init", "--no-cone")...); err != nil {
			return err
		}
	}

	args := r.git("sparse-checkout", "set", "--no-cone", "--stdin")
	out, err := ctx.Runner.RunWithInput(sparse.Render(r.Lines), "git", args...)
	if err != nil {
		return commandError("git", args, out, err)
	}
	return nil
}
