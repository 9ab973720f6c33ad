package charts

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, options ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	options = append([]Option{
		BaseURL(srv.URL),
		Pace(0),
		RetryInitialInterval(time.Millisecond),
		RetryMaxElapsedTime(250 * time.Millisecond),
	}, options...)

	client, err := NewClient("test-client-id", "test-token", options...)
	require.NoError(t, err)
	return client
}

func TestTopChannels(t *testing.T) {
	t.Parallel()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/channels", r.URL.Path)
		require.Equal(t, "twitch", r.URL.Query().Get("platform"))
		require.Equal(t, "7-days", r.URL.Query().Get("time"))
		require.Empty(t, r.URL.Query().Get("testing_mode"))
		require.Equal(t, "test-client-id", r.Header.Get("Client-ID"))
		require.Equal(t, "test-token", r.Header.Get("Token"))

		fmt.Fprint(w, `{"data":[
			{"channel_name":"midtier","average_viewers":5000},
			{"channel_name":"shroud","average_viewers":25000},
			{"channel_name":"ninja","average_viewers":21000}
		]}`)
	})

	client := newTestClient(t, handler, ChannelLimit(2))
	channels, err := client.TopChannels(t.Context())
	require.NoError(t, err)
	require.Equal(t, []Channel{
		{Name: "shroud", AverageViewers: 25000},
		{Name: "ninja", AverageViewers: 21000},
	}, channels)
}

func TestTopChannelsTestingMode(t *testing.T) {
	t.Parallel()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "true", r.URL.Query().Get("testing_mode"))
		fmt.Fprint(w, `{"data":[]}`)
	})

	client := newTestClient(t, handler, WithTestingMode(true))
	channels, err := client.TopChannels(t.Context())
	require.NoError(t, err)
	require.Empty(t, channels)
}

func TestChannelHistory(t *testing.T) {
	t.Parallel()
	viewersByPeriod := map[string]int{
		"7-days":     25000,
		"last-month": 21000,
		"last-year":  18000,
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/channels/shroud", r.URL.Path)
		period := r.URL.Query().Get("time")
		require.Contains(t, viewersByPeriod, period)
		fmt.Fprintf(w, `{"data":{"average_viewers":%d,"stream_days":7}}`, viewersByPeriod[period])
	})

	client := newTestClient(t, handler)
	records, err := client.ChannelHistory(t.Context(), "shroud")
	require.NoError(t, err)
	require.Equal(t, []PeriodStats{
		{Period: "7-days", AverageViewers: 25000, StreamDays: 7},
		{Period: "last-month", AverageViewers: 21000, StreamDays: 7},
		{Period: "last-year", AverageViewers: 18000, StreamDays: 7},
	}, records)
}

func TestChannelHistorySkipsEmptyPeriods(t *testing.T) {
	t.Parallel()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("time") == "last-year" {
			fmt.Fprint(w, `{"data":null}`)
			return
		}
		fmt.Fprint(w, `{"data":{"average_viewers":100,"stream_days":1}}`)
	})

	client := newTestClient(t, handler)
	records, err := client.ChannelHistory(t.Context(), "shroud")
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestRetriesServerErrors(t *testing.T) {
	t.Parallel()
	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"data":[]}`)
	})

	client := newTestClient(t, handler)
	_, err := client.TopChannels(t.Context())
	require.NoError(t, err)
	require.Equal(t, int32(2), requests.Load())
}

func TestClientErrorsAreTerminal(t *testing.T) {
	t.Parallel()
	var requests atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})

	client := newTestClient(t, handler)
	_, err := client.TopChannels(t.Context())
	require.ErrorContains(t, err, "unexpected status 401")
	require.Equal(t, int32(1), requests.Load())
}

func TestHistoryRequestsArePaced(t *testing.T) {
	t.Parallel()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"average_viewers":100,"stream_days":1}}`)
	})

	mockClock := clock.NewMock()
	client := newTestClient(t, handler, Clock(mockClock), Pace(time.Minute))
	startedAt := mockClock.Now()

	done := make(chan error, 1)
	go func() {
		_, err := client.ChannelHistory(t.Context(), "shroud")
		done <- err
	}()

	// Drive the mock clock forward until the paced requests complete.
	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			require.GreaterOrEqual(t, mockClock.Now().Sub(startedAt), 2*time.Minute)
			return
		default:
			mockClock.Add(time.Minute)
			time.Sleep(time.Millisecond)
		}
	}
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()
	_, err := NewClient("", "token")
	require.Error(t, err)

	_, err = NewClient("id", "")
	require.Error(t, err)

	_, err = NewClient("id", "token", ChannelLimit(0))
	require.Error(t, err)
}
