package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charthound/charthound/internal/charts"
	"github.com/charthound/charthound/internal/datastore"
)

type fakeSource struct {
	channels   []charts.Channel
	history    map[string][]charts.PeriodStats
	listErr    error
	historyErr map[string]error
}

func (f *fakeSource) TopChannels(_ context.Context) ([]charts.Channel, error) {
	return f.channels, f.listErr
}

func (f *fakeSource) ChannelHistory(_ context.Context, channel string) ([]charts.PeriodStats, error) {
	if err := f.historyErr[channel]; err != nil {
		return nil, err
	}
	return f.history[channel], nil
}

type fakeWriter struct {
	appended  map[string][]datastore.HistoryRecord
	ensureErr map[string]error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{appended: map[string][]datastore.HistoryRecord{}}
}

func (f *fakeWriter) EnsureChannelTable(_ context.Context, channel string) (string, error) {
	if err := f.ensureErr[channel]; err != nil {
		return "", err
	}
	return "streamer_" + channel, nil
}

func (f *fakeWriter) AppendHistory(_ context.Context, channel string, records []datastore.HistoryRecord) (int64, error) {
	f.appended[channel] = append(f.appended[channel], records...)
	return int64(len(records)), nil
}

func TestRunCollectsEveryChannel(t *testing.T) {
	t.Parallel()
	source := &fakeSource{
		channels: []charts.Channel{
			{Name: "shroud", AverageViewers: 25000},
			{Name: "ninja", AverageViewers: 21000},
		},
		history: map[string][]charts.PeriodStats{
			"shroud": {
				{Period: "7-days", AverageViewers: 25000, StreamDays: 5},
				{Period: "last-month", AverageViewers: 21000, StreamDays: 22},
			},
			"ninja": {
				{Period: "7-days", AverageViewers: 21000, StreamDays: 6},
			},
		},
	}
	writer := newFakeWriter()

	report, err := NewCollector(source, writer).Run(t.Context())
	require.NoError(t, err)

	require.Equal(t, 2, report.Channels)
	require.Zero(t, report.Failures)
	require.Equal(t, int64(3), report.RowsWritten)
	require.Equal(t, []string{"streamer_shroud", "streamer_ninja"}, report.Tables)

	require.Equal(t, []datastore.HistoryRecord{
		{Date: "7-days", AverageViewers: 25000, StreamDays: 5},
		{Date: "last-month", AverageViewers: 21000, StreamDays: 22},
	}, writer.appended["shroud"])
}

func TestRunSkipsFailedChannels(t *testing.T) {
	t.Parallel()
	source := &fakeSource{
		channels: []charts.Channel{
			{Name: "shroud"},
			{Name: "brokenhistory"},
			{Name: "brokentable"},
		},
		history: map[string][]charts.PeriodStats{
			"shroud":      {{Period: "7-days", AverageViewers: 100, StreamDays: 1}},
			"brokentable": {{Period: "7-days", AverageViewers: 50, StreamDays: 1}},
		},
		historyErr: map[string]error{"brokenhistory": errors.New("history unavailable")},
	}
	writer := newFakeWriter()
	writer.ensureErr = map[string]error{"brokentable": errors.New("permission denied")}

	report, err := NewCollector(source, writer).Run(t.Context())
	require.NoError(t, err)

	require.Equal(t, 3, report.Channels)
	require.Equal(t, 2, report.Failures)
	require.Equal(t, int64(1), report.RowsWritten)
	require.Equal(t, []string{"streamer_shroud"}, report.Tables)
	require.NotContains(t, writer.appended, "brokenhistory")
	require.NotContains(t, writer.appended, "brokentable")
}

func TestRunFailsWhenListingFails(t *testing.T) {
	t.Parallel()
	source := &fakeSource{listErr: errors.New("api down")}

	_, err := NewCollector(source, newFakeWriter()).Run(t.Context())
	require.ErrorContains(t, err, "unable to list top channels")
}
