// Package cli provides the command-line interface for buildwaterfall.
package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "BUILDWATERFALL"

// globalFlags are the persistent flags shared by all subcommands.
type globalFlags struct {
	verbose bool
	quiet   bool
}

type app struct {
	flags  globalFlags
	viper  *viper.Viper
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{viper: viper.New()}

	cmd := &cobra.Command{
		Use:   "buildwaterfall",
		Short: "Visualize container build logs as a waterfall chart",
		Long: `buildwaterfall parses container build logs (BuildKit or classic docker
build output), reconstructs the timeline of build steps, and renders it
as a Gantt-style waterfall with bottleneck highlighting.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.viper.SetEnvPrefix(envPrefix)
			a.viper.AutomaticEnv()
			err := a.viper.BindPFlags(cmd.Flags())
			if err != nil {
				return errors.Wrap(err, "unable to bind flags")
			}

			a.logger = initLogger(a.flags.verbose, a.flags.quiet)

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&a.flags.quiet, "quiet", "q", false, "only log warnings and errors")

	cmd.AddCommand(newRenderCmd(a))

	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
