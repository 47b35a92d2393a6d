package cli

import (
	"fmt"

	"github.com/encorekit/encore-init/internal/config"
	"github.com/encorekit/encore-init/internal/doctor"
	"github.com/encorekit/encore-init/internal/fsutil"
	"github.com/encorekit/encore-init/internal/prompt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var doctorDir string

func init() {
	doctorCmd.Flags().StringVarP(&doctorDir, "dir", "C", ".", "Project directory to check")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that a project is ready for init",
	Long:  `Verify that Node.js and the configured package manager are installed and that package.json is valid.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := fsutil.NewWriter(afero.NewOsFs(), prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()), nil)
		checker := doctor.New(w, config.PackageManager())

		if failures := checker.Run(cmd.OutOrStdout(), doctorDir); failures > 0 {
			return fmt.Errorf("%d check(s) failed", failures)
		}
		return nil
	},
}
