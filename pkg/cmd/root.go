// Package cmd implements the charthound command line surface.
package cmd

import (
	"github.com/go-logr/zerologr"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/jzelinskie/cobrautil/v2/cobraotel"
	"github.com/jzelinskie/cobrautil/v2/cobrazerolog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/charthound/charthound/internal/logging"
)

// RegisterRootFlags registers the flags shared by every subcommand.
func RegisterRootFlags(cmd *cobra.Command) {
	cobrazerolog.New().RegisterFlags(cmd.PersistentFlags())
	cobraotel.New(cmd.Use).RegisterFlags(cmd.PersistentFlags())
	RegisterDatastoreFlags(cmd.PersistentFlags())
}

// DefaultPreRunE sets up viper, zerolog, and OpenTelemetry flag handling for
// a command.
func DefaultPreRunE(programName string) cobrautil.CobraRunFunc {
	return cobrautil.CommandStack(
		cobrautil.SyncViperDotEnvPreRunE(programName, "charthound.env", zerologr.New(&logging.Logger)),
		cobrazerolog.New(
			cobrazerolog.WithTarget(func(logger zerolog.Logger) {
				logging.SetGlobalLogger(logger)
			}),
		).RunE(),
		cobraotel.New(programName,
			cobraotel.WithLogger(zerologr.New(&logging.Logger)),
		).RunE(),
	)
}

// NewRootCommand creates the root command for the program.
func NewRootCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:           programName,
		Short:         "A viewership statistics collector for streaming channels",
		Long:          "Collects per-channel viewership statistics into PostgreSQL and inspects the tables that hold them",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
}
