// Package collector orchestrates a collection run: top channels are fetched
// from the charts API and their history is appended to per-channel tables.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/charthound/charthound/internal/charts"
	"github.com/charthound/charthound/internal/datastore"
	log "github.com/charthound/charthound/internal/logging"
)

// StatsSource is the part of the charts API the collector consumes.
type StatsSource interface {
	TopChannels(ctx context.Context) ([]charts.Channel, error)
	ChannelHistory(ctx context.Context, channel string) ([]charts.PeriodStats, error)
}

// HistoryWriter is the part of the datastore the collector writes through.
type HistoryWriter interface {
	EnsureChannelTable(ctx context.Context, channel string) (string, error)
	AppendHistory(ctx context.Context, channel string, records []datastore.HistoryRecord) (int64, error)
}

// RunReport summarizes a single collection run.
type RunReport struct {
	Channels    int
	Tables      []string
	RowsWritten int64
	Failures    int
}

// Collector drives collection runs against a stats source and a datastore.
type Collector struct {
	source StatsSource
	ds     HistoryWriter
}

// NewCollector creates a collector over the given source and datastore.
func NewCollector(source StatsSource, ds HistoryWriter) *Collector {
	return &Collector{source: source, ds: ds}
}

// Run performs one collection pass. A channel that fails to collect is logged
// and skipped; the run itself fails only if the channel listing cannot be
// fetched at all.
func (c *Collector) Run(ctx context.Context) (RunReport, error) {
	startedAt := time.Now()
	defer func() {
		collectDurationHistogram.Observe(time.Since(startedAt).Seconds())
	}()

	channels, err := c.source.TopChannels(ctx)
	if err != nil {
		return RunReport{}, fmt.Errorf("unable to list top channels: %w", err)
	}

	report := RunReport{Channels: len(channels)}
	for _, channel := range channels {
		tableName, written, err := c.collectChannel(ctx, channel.Name)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("channel", channel.Name).Msg("failed to collect channel")
			channelFailuresCounter.Inc()
			report.Failures++
			continue
		}

		channelsCounter.Inc()
		rowsAppendedCounter.Add(float64(written))
		report.Tables = append(report.Tables, tableName)
		report.RowsWritten += written
	}

	log.Ctx(ctx).Info().
		Int("channels", report.Channels).
		Int("failures", report.Failures).
		Int64("rows-written", report.RowsWritten).
		Msg("collection run complete")

	return report, nil
}

func (c *Collector) collectChannel(ctx context.Context, channel string) (string, int64, error) {
	history, err := c.source.ChannelHistory(ctx, channel)
	if err != nil {
		return "", 0, err
	}

	tableName, err := c.ds.EnsureChannelTable(ctx, channel)
	if err != nil {
		return "", 0, err
	}

	records := make([]datastore.HistoryRecord, 0, len(history))
	for _, stats := range history {
		records = append(records, datastore.HistoryRecord{
			Date:           stats.Period,
			AverageViewers: stats.AverageViewers,
			StreamDays:     stats.StreamDays,
		})
	}

	written, err := c.ds.AppendHistory(ctx, channel, records)
	if err != nil {
		return "", 0, err
	}

	log.Ctx(ctx).Debug().
		Str("channel", channel).
		Str("table", tableName).
		Int64("rows-written", written).
		Msg("collected channel")

	return tableName, written, nil
}
