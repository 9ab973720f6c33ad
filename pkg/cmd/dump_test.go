package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charthound/charthound/internal/datastore"
)

func TestRenderRowSet(t *testing.T) {
	t.Parallel()
	var out strings.Builder
	err := renderRowSet(&out, &datastore.RowSet{
		Columns: []string{"date", "average_viewers", "stream_days"},
		Rows: [][]any{
			{"7-days", int32(25000), int32(5)},
			{"last-month", int32(21000), nil},
		},
	})
	require.NoError(t, err)

	rendered := out.String()
	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Regexp(t, `^date\s+average_viewers\s+stream_days$`, lines[0])
	require.Regexp(t, `^7-days\s+25000\s+5$`, lines[1])
	require.Regexp(t, `^last-month\s+21000\s+<null>$`, lines[2])
	require.Equal(t, "(2 rows)", lines[3])
}

func TestRenderRowSetEmpty(t *testing.T) {
	t.Parallel()
	var out strings.Builder
	err := renderRowSet(&out, &datastore.RowSet{Columns: []string{"date"}})
	require.NoError(t, err)
	require.Contains(t, out.String(), "(0 rows)")
}
