package cli

import (
	"github.com/encorekit/encore-init/internal/config"
	"github.com/spf13/cobra"
)

var (
	initDir            string
	initPackageManager string
	initVerbose        bool
)

func init() {
	initCmd.Flags().StringVarP(&initDir, "dir", "C", ".", "Project directory containing package.json")
	initCmd.Flags().StringVar(&initPackageManager, "package-manager", "", "Package manager for the install plan (npm or yarn); defaults to the package_manager setting")
	initCmd.Flags().BoolVarP(&initVerbose, "verbose", "v", false, "Log each generation step to stderr")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up Webpack Encore in a project",
	Long: `Set up Webpack Encore in an existing project.

Asks for the app type, JavaScript flavor and CSS flavor, then:
  - writes webpack.config.js (asks before overwriting)
  - prints the npm or yarn command installing the required packages
  - adds encore:dev, encore:watch and encore:production to package.json
  - writes postcss.config.js (asks before overwriting)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager := initPackageManager
		if manager == "" {
			manager = config.PackageManager()
		}
		if err := config.Validate(config.KeyPackageManager, manager); err != nil {
			return err
		}

		return Dispatch(cmd.Context(), RunConfig{
			Command:        CommandInit,
			Dir:            initDir,
			In:             cmd.InOrStdin(),
			Out:            cmd.OutOrStdout(),
			Err:            cmd.ErrOrStderr(),
			PackageManager: manager,
			Color:          config.ColorMode(),
			Verbose:        initVerbose || config.Verbose(),
		})
	},
}
