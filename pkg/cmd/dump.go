package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/charthound/charthound/internal/datastore"
)

// NewDumpCommand dumps every row of one table.
func NewDumpCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:     "dump <table>",
		Short:   "dump all rows of a table",
		Long:    "Selects every row and column of the named table and renders the result. The table is not checked for existence first; a wrong name surfaces the database's own error.",
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ds, err := DatastoreFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = ds.Close() }()

			rowSet, err := ds.DumpTable(ctx, args[0])
			if err != nil {
				return err
			}

			return renderRowSet(cmd.OutOrStdout(), rowSet)
		},
		Args: cobra.ExactArgs(1),
	}
}

func renderRowSet(out io.Writer, rowSet *datastore.RowSet) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(rowSet.Columns, "\t"))

	for _, row := range rowSet.Rows {
		cells := make([]string, 0, len(row))
		for _, value := range row {
			if value == nil {
				cells = append(cells, "<null>")
				continue
			}
			cells = append(cells, fmt.Sprintf("%v", value))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "(%s rows)\n", humanize.Comma(int64(len(rowSet.Rows))))
	return err
}
