// Package charts is a client for the streamscharts jazz API, which reports
// viewership statistics for streaming channels.
package charts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"

	"github.com/cenkalti/backoff/v4"

	log "github.com/charthound/charthound/internal/logging"
)

// Periods are the time windows the API reports history over.
var Periods = []string{"7-days", "last-month", "last-year"}

// Channel is one channel as reported by the channel listing endpoint.
type Channel struct {
	Name           string `json:"channel_name"`
	AverageViewers int    `json:"average_viewers"`
}

// PeriodStats is a channel's viewership summary over a single period.
type PeriodStats struct {
	Period         string `json:"-"`
	AverageViewers int    `json:"average_viewers"`
	StreamDays     int    `json:"stream_days"`
}

// TopChannels returns the channels with the highest average viewership over
// the last seven days, at most the client's configured limit.
func (c *Client) TopChannels(ctx context.Context) ([]Channel, error) {
	log.Ctx(ctx).Info().Int("limit", c.limit).Msg("requesting top channels by average viewers")

	var payload struct {
		Data []Channel `json:"data"`
	}
	if err := c.getJSON(ctx, c.listURL(), &payload); err != nil {
		return nil, fmt.Errorf("unable to fetch channels: %w", err)
	}

	channels := payload.Data
	sort.SliceStable(channels, func(i, j int) bool {
		return channels[i].AverageViewers > channels[j].AverageViewers
	})
	if len(channels) > c.limit {
		channels = channels[:c.limit]
	}

	log.Ctx(ctx).Info().Int("count", len(channels)).Msg("fetched top channels")
	return channels, nil
}

// ChannelHistory returns the channel's viewership summary for every known
// period, pacing requests so as not to hammer the API.
func (c *Client) ChannelHistory(ctx context.Context, channel string) ([]PeriodStats, error) {
	records := make([]PeriodStats, 0, len(Periods))
	for i, period := range Periods {
		if i > 0 {
			c.clock.Sleep(c.pace)
		}

		var payload struct {
			Data *PeriodStats `json:"data"`
		}
		if err := c.getJSON(ctx, c.historyURL(channel, period), &payload); err != nil {
			return nil, fmt.Errorf("unable to fetch history for channel %s over %s: %w", channel, period, err)
		}

		if payload.Data == nil {
			log.Ctx(ctx).Debug().Str("channel", channel).Str("period", period).Msg("no history reported for period")
			continue
		}

		record := *payload.Data
		record.Period = period
		records = append(records, record)
	}

	return records, nil
}

func (c *Client) listURL() string {
	return c.baseURL + "/channels?" + c.commonQuery("7-days").Encode()
}

func (c *Client) historyURL(channel, period string) string {
	return c.baseURL + "/channels/" + url.PathEscape(channel) + "?" + c.commonQuery(period).Encode()
}

func (c *Client) commonQuery(period string) url.Values {
	query := url.Values{}
	query.Set("platform", c.platform)
	query.Set("time", period)
	if c.testingMode {
		query.Set("testing_mode", "true")
	}
	return query
}

// getJSON issues a GET and decodes the response body, retrying transport
// failures and server errors with exponential backoff. Client errors are
// terminal.
func (c *Client) getJSON(ctx context.Context, requestURL string, into any) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Client-ID", c.clientID)
		req.Header.Set("Token", c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
				return backoff.Permanent(fmt.Errorf("unable to decode response: %w", err))
			}
			return nil

		case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			log.Ctx(ctx).Warn().Int("status", resp.StatusCode).Str("url", requestURL).Msg("retrying failed request")
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)

		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body))
		}
	}

	backoffInterval := backoff.NewExponentialBackOff()
	backoffInterval.InitialInterval = c.retryInitialInterval
	backoffInterval.MaxElapsedTime = c.retryMaxElapsedTime

	return backoff.Retry(operation, backoff.WithContext(backoffInterval, ctx))
}
