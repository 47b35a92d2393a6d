package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/encorekit/encore-init/internal/branding"
	"github.com/encorekit/encore-init/internal/config"
	"github.com/encorekit/encore-init/internal/report"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` sets up a Webpack Encore asset pipeline in an existing project.
It asks a few questions, writes webpack.config.js and postcss.config.js,
and adds the encore scripts to package.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			report.NewPrinter(os.Stderr, config.ColorMode()).Failure(err)
		}
	}
	return err
}
