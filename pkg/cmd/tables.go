package cmd

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
)

// RegisterTablesFlags registers the flags for the tables command.
func RegisterTablesFlags(cmd *cobra.Command) {
	cmd.Flags().String("schema", "public", "schema whose tables are listed")
	cmd.Flags().String("prefix", "streamer_", "list only tables whose names begin with this prefix")
}

// NewTablesCommand lists the channel tables known to the database catalog.
func NewTablesCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:     "tables",
		Short:   "list channel tables in the datastore",
		Long:    "Lists the tables in the configured schema whose names begin with the given prefix, straight from the database catalog.",
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ds, err := DatastoreFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = ds.Close() }()

			tableNames, err := ds.ListTables(ctx,
				cobrautil.MustGetString(cmd, "schema"),
				cobrautil.MustGetString(cmd, "prefix"),
			)
			if err != nil {
				return err
			}

			for _, tableName := range tableNames {
				fmt.Fprintln(cmd.OutOrStdout(), tableName)
			}
			return nil
		},
		Args: cobra.ExactArgs(0),
	}
}
