package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charthound/charthound/internal/datastore"
)

func TestListTablesQuery(t *testing.T) {
	t.Parallel()
	listSQL, listArgs, err := listTablesQuery("public", "streamer_")
	require.NoError(t, err)
	require.Equal(t,
		"SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = $1 AND tablename LIKE $2 ORDER BY tablename",
		listSQL,
	)
	require.Equal(t, []any{"public", `streamer\_%`}, listArgs)
}

func TestAppendHistoryQuery(t *testing.T) {
	t.Parallel()
	insertSQL, insertArgs, err := appendHistoryQuery("streamer_shroud", []datastore.HistoryRecord{
		{Date: "7-days", AverageViewers: 25000, StreamDays: 5},
		{Date: "last-month", AverageViewers: 21000, StreamDays: 22},
	})
	require.NoError(t, err)
	require.Equal(t,
		`INSERT INTO "streamer_shroud" (date,average_viewers,stream_days) VALUES ($1,$2,$3),($4,$5,$6) ON CONFLICT (date) DO NOTHING`,
		insertSQL,
	)
	require.Equal(t, []any{"7-days", 25000, 5, "last-month", 21000, 22}, insertArgs)
}
