package cmd

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/yurt/internal/config"
	"github.com/melih-ucgun/yurt/internal/consts"
	"github.com/melih-ucgun/yurt/internal/sparse"
)

var sparseCmd = &cobra.Command{
	Use:   "sparse",
	Short: "Inspect the sparse checkout",
}

var sparsePlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the sparse-checkout patterns for the resolved profile",
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

		entries, err := config.LoadManifest(sess.Ctx.FS, filepath.Join(sess.Settings.ConfigPath(), consts.ManifestFileName))
		if err != nil && !errors.Is(err, config.ErrDocumentMissing) {
			return err
		}
		for _, e := range sparse.Excluded(entries, p.Excluded) {
			sess.Ctx.Logger.Debug("Excluded", "path", e.Path, "categories", e.Categories)
		}

		out := sess.Ctx.UI.WithWriter(cmd.OutOrStdout())
		for _, line := range sparse.Plan(entries, p.Excluded) {
			out.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sparseCmd)
	sparseCmd.AddCommand(sparsePlanCmd)
}
