package cmd

import (
	"errors"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/melih-ucgun/yurt/internal/core"
)

var rootCmd = &cobra.Command{
	Use:   "yurt",
	Short: "Keep a machine in line with its dotfiles repository.",
	Long: `Yurt reconciles a machine with the desired state declared in a dotfiles
repository: packages, symlinks, permissions, systemd units, registry values,
editor extensions and the sparse checkout, filtered by a profile.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseCount > 0 {
			pterm.EnableDebugMessages()
		}
	},
}

var (
	repoFlag     string
	profileFlag  string
	dryRun       bool
	verboseCount int
	skipTasks    []string
	onlyTasks    []string
)

// errRunFailed marks a run in which at least one task failed. Details have
// already been printed.
var errRunFailed = errors.New("one or more tasks failed")

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errRunFailed) {
		pterm.Error.Println(err)
	}
	return ExitCode(err)
}

// ExitCode is 2 for a profile resolution failure and 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case core.IsKind(err, core.KindResolution):
		return 2
	default:
		return 1
	}
}

func init() {
	// PTerm output to Stderr (to keep Stdout clean for piping)
	pterm.SetDefaultOutput(os.Stderr)
	pterm.Success.Writer = os.Stderr
	pterm.Info.Writer = os.Stderr
	pterm.Error.Writer = os.Stderr
	pterm.Warning.Writer = os.Stderr
	pterm.Debug.Writer = os.Stderr
	pterm.DefaultHeader.Writer = os.Stderr

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&repoFlag, "repo", "", "repository root (default: git top-level of the working directory)")
	flags.StringVarP(&profileFlag, "profile", "p", "", "profile to use instead of the remembered one")
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "report what would change without changing anything")
	flags.CountVarP(&verboseCount, "verbose", "v", "Increase verbosity level (-v, -vv)")
	flags.StringSliceVar(&skipTasks, "skip", nil, "tasks to skip")
	flags.StringSliceVar(&onlyTasks, "only", nil, "run only these tasks")
}
