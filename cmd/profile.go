package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/yurt/internal/category"
)

// recentRuns is how many history records profile show lists.
const recentRuns = 5

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the machine's profile",
	Long:  `List the profiles the repository declares, show the resolved one, or change it.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		profiles, err := sess.loadProfiles()
		if err != nil {
			return err
		}
		active, err := sess.Store.Get(sess.Settings.Profile.Key)
		if err != nil {
			return err
		}

		sess.Ctx.UI.Title("Available Profiles")
		tableData := [][]string{{"Name", "Include", "Exclude", "Status"}}
		for _, name := range profiles.Names() {
			def, _ := profiles.Get(name)
			status := ""
			if name == active {
				status = "Active"
			}
			tableData = append(tableData, []string{name, joinCategories(def.Include), joinCategories(def.Exclude), status})
		}
		sess.Ctx.UI.Table(tableData)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved profile",
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

		ui := sess.Ctx.UI
		ui.Table([][]string{
			{"Profile", p.Name},
			{"Active", joinCategories(p.Active.Sorted())},
			{"Excluded", joinCategories(p.Excluded.Sorted())},
			{"Detected", joinCategories(sess.Platform.DetectedCategories())},
		})
		runs := sess.History.Runs()
		if len(runs) == 0 {
			return nil
		}
		if len(runs) > recentRuns {
			runs = runs[len(runs)-recentRuns:]
		}
		rows := [][]string{{"When", "Command", "Profile", "Status", "Changed", "Failed"}}
		for i := len(runs) - 1; i >= 0; i-- {
			r := runs[i]
			rows = append(rows, []string{
				r.Timestamp.Format("2006-01-02 15:04"), r.Command, r.Profile, r.Status,
				strconv.Itoa(r.Changed), strconv.Itoa(r.Failed),
			})
		}
		ui.Table(rows)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set [name]",
	Short: "Remember a profile for this machine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		if _, err := sess.loadProfiles(); err != nil {
			return err
		}
		p, err := sess.Resolver.Resolve(args[0])
		if err != nil {
			return err
		}
		sess.Ctx.UI.Success(fmt.Sprintf("Switched to profile '%s'.", p.Name))
		return nil
	},
}

func joinCategories(cats []category.Category) string {
	if len(cats) == 0 {
		return "-"
	}
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
