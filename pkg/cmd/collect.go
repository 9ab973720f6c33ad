package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"

	"github.com/charthound/charthound/internal/charts"
	"github.com/charthound/charthound/internal/collector"
	log "github.com/charthound/charthound/internal/logging"
)

// RegisterCollectFlags registers the flags for the collect command.
func RegisterCollectFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("charts-api-addr", "", "override the charts API endpoint")
	flags.String("charts-client-id", "", "client ID used to authenticate against the charts API")
	flags.String("charts-token", "", "token used to authenticate against the charts API")
	flags.Int("charts-channel-limit", 20, "number of top channels to collect")
	flags.Duration("charts-pace", 200*time.Millisecond, "delay between successive history requests")
	flags.Bool("charts-testing-mode", false, "send the charts API testing mode flag on every request")
	flags.String("metrics-addr", "", `address on which to serve Prometheus metrics during the run (e.g. ":9090"); disabled when empty`)
}

// NewCollectCommand runs one collection pass against the charts API.
func NewCollectCommand(programName string) *cobra.Command {
	return &cobra.Command{
		Use:     "collect",
		Short:   "collect channel statistics into the datastore",
		Long:    "Fetches the top channels by average viewership from the charts API and appends each channel's history to its own table.",
		PreRunE: DefaultPreRunE(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := charts.NewClient(
				cobrautil.MustGetStringExpanded(cmd, "charts-client-id"),
				cobrautil.MustGetStringExpanded(cmd, "charts-token"),
				chartsOptionsFromFlags(cmd)...,
			)
			if err != nil {
				return err
			}

			ds, err := DatastoreFromFlags(ctx, cmd)
			if err != nil {
				return err
			}
			defer func() { _ = ds.Close() }()

			if err := collector.RegisterMetrics(); err != nil {
				return err
			}

			if metricsAddr := cobrautil.MustGetString(cmd, "metrics-addr"); metricsAddr != "" {
				metricsSrv := NewMetricsServer(metricsAddr)
				go func() {
					if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Ctx(ctx).Error().Err(err).Msg("failed while serving metrics")
					}
				}()
				defer func() { _ = metricsSrv.Close() }()
			}

			report, err := collector.NewCollector(client, ds).Run(ctx)
			if err != nil {
				return err
			}

			for _, tableName := range report.Tables {
				fmt.Fprintln(cmd.OutOrStdout(), tableName)
			}
			return nil
		},
		Args: cobra.ExactArgs(0),
	}
}

func chartsOptionsFromFlags(cmd *cobra.Command) []charts.Option {
	options := []charts.Option{
		charts.ChannelLimit(cobrautil.MustGetInt(cmd, "charts-channel-limit")),
		charts.Pace(cobrautil.MustGetDuration(cmd, "charts-pace")),
		charts.WithTestingMode(cobrautil.MustGetBool(cmd, "charts-testing-mode")),
	}

	if addr := cobrautil.MustGetStringExpanded(cmd, "charts-api-addr"); addr != "" {
		options = append(options, charts.BaseURL(addr))
	}

	return options
}
