package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	log "github.com/charthound/charthound/internal/logging"
)

// NewVerifyCommand samples one stored row back out of a table and confirms
// it can be re-read by exact match.
func NewVerifyCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:     "verify <table>",
		Short:   "verify that a table's contents can be read back",
		Long:    "Samples one random row from the named table and re-reads it by exact match, confirming that collected data is durably stored.",
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tableName := args[0]

			ds, err := DatastoreFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = ds.Close() }()

			record, err := ds.SampleRow(ctx, tableName)
			if err != nil {
				return err
			}

			found, err := ds.HasRow(ctx, tableName, *record)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("sampled row was not found on re-read: %+v", *record)
			}

			log.Ctx(ctx).Info().
				Str("table", tableName).
				Str("date", record.Date).
				Int("average-viewers", record.AverageViewers).
				Msg("sampled row re-read successfully")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
		Args: cobra.ExactArgs(1),
	}
}
