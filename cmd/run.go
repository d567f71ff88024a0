package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/yurt/internal/core"
	"github.com/melih-ucgun/yurt/internal/resources"
	"github.com/melih-ucgun/yurt/internal/state"
	"github.com/melih-ucgun/yurt/internal/tasks"
)

type buildFunc func(f *resources.Factory, in tasks.Input) []core.Task

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Bring the machine in line with the repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTasks("install", tasks.Install)
	},
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the symlinks install created",
	Long: `Remove every symlink that currently points into the repository. Packages,
units, permissions and other state are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTasks("uninstall", tasks.Uninstall)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report drift without changing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		p, err := sess.resolve()
		if err != nil {
			return err
		}
		in := tasks.Load(sess.Ctx.FS, sess.Settings.ConfigPath(), p)
		list, err := core.Filter(tasks.Validate(sess.factory(), in), onlyTasks, skipTasks)
		if err != nil {
			return err
		}

		results := core.Audit(list, sess.Ctx)
		ui := sess.Ctx.UI
		if len(results) == 0 {
			ui.Info("Nothing is configured for this profile.")
			return nil
		}
		ui.Table(core.AuditRows(results))

		drifted := 0
		for _, r := range results {
			if r.Status == core.StatusDrifted {
				drifted++
			}
		}
		if core.AuditHasErrors(results) {
			ui.Error("Validation found errors.")
			return errRunFailed
		}
		if drifted > 0 {
			ui.Warning(fmt.Sprintf("%d resources differ from the desired state.", drifted))
		} else {
			ui.Success("Everything is in the desired state.")
		}
		return nil
	},
}

func runTasks(command string, build buildFunc) error {
	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	p, err := sess.resolve()
	if err != nil {
		return err
	}

	in := tasks.Load(sess.Ctx.FS, sess.Settings.ConfigPath(), p)
	list, err := core.Filter(build(sess.factory(), in), onlyTasks, skipTasks)
	if err != nil {
		return err
	}

	sess.Ctx.UI.Title(fmt.Sprintf("%s: %s", command, p.Name))
	stats := core.NewEngine(sess.Ctx).Run(list)
	report(sess.Ctx.UI, stats)
	sess.record(command, p.Name, stats)

	if stats.HasFailures() {
		return errRunFailed
	}
	return nil
}

func report(ui core.UI, stats *core.RunStats) {
	if len(stats.Results) == 0 {
		ui.Info("Nothing to do for this profile.")
		return
	}
	ui.Table(stats.SummaryRows())
	for _, r := range stats.FailedResults() {
		ui.Error(fmt.Sprintf("%s: %v", r.Task, r.Err))
	}
	switch {
	case stats.HasFailures():
	case stats.DryRun > 0:
		ui.Info(fmt.Sprintf("Dry run: %d changes pending.", stats.DryRun))
	case stats.Changed == 0:
		ui.Success("System is already in the desired state.")
	default:
		ui.Success(fmt.Sprintf("%d changes applied.", stats.Changed))
	}
}

// record appends the run to the local history. Dry runs are not recorded.
func (s *session) record(command, profileName string, stats *core.RunStats) {
	if s.Ctx.DryRun {
		return
	}
	status := "success"
	if stats.HasFailures() {
		status = "failed"
	}
	err := s.History.AddRun(state.RunRecord{
		ID:        stats.ID,
		Command:   command,
		Profile:   profileName,
		Timestamp: time.Now(),
		Status:    status,
		Changed:   stats.Changed,
		Failed:    stats.Failed,
	})
	if err != nil {
		s.Ctx.Logger.Warn(fmt.Sprintf("Failed to record run history: %v", err))
	}
}

func init() {
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(validateCmd)
}
