package state

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/melih-ucgun/yurt/internal/consts"
	"github.com/melih-ucgun/yurt/internal/core"
)

// GitConfigStore keeps values in the repository's local git config, which is
// never committed.
type GitConfigStore struct {
	Runner   core.Runner
	RepoRoot string
}

func NewGitConfigStore(runner core.Runner, repoRoot string) *GitConfigStore {
	return &GitConfigStore{Runner: runner, RepoRoot: repoRoot}
}

func (g *GitConfigStore) Get(key string) (string, error) {
	out, err := g.Runner.CombinedOutput("git", "-C", g.RepoRoot, "config", "--local", "--get", key)
	if err != nil {
		// git exits 1 when the key is not set
		if core.ExitCode(err) == 1 {
			return "", nil
		}
		return "", fmt.Errorf("git config --get %s: %w: %s", key, err, strings.TrimSpace(out))
	}
	return strings.TrimSpace(out), nil
}

func (g *GitConfigStore) Set(key, value string) error {
	out, err := g.Runner.CombinedOutput("git", "-C", g.RepoRoot, "config", "--local", key, value)
	if err != nil {
		return fmt.Errorf("git config %s: %w: %s", key, err, strings.TrimSpace(out))
	}
	return nil
}

// GitDir returns the absolute git directory of the repository at root.
func GitDir(runner core.Runner, root string) (string, error) {
	out, err := runner.CombinedOutput("git", "-C", root, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("%s is not a git work tree: %w", root, err)
	}
	return strings.TrimSpace(out), nil
}

// StatePath picks the state file: inside the git directory when root is a
// work tree, else under the XDG state directory.
func StatePath(runner core.Runner, root string) string {
	if gitDir, err := GitDir(runner, root); err == nil {
		return consts.GetRepoStatePath(gitDir)
	}
	return filepath.Join(consts.GetStateDir(), consts.StateFileName)
}
