package charts

import (
	"fmt"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	defaultBaseURL              = "https://streamscharts.com/api/jazz"
	defaultPlatform             = "twitch"
	defaultLimit                = 20
	defaultPace                 = 200 * time.Millisecond
	defaultRetryInitialInterval = 500 * time.Millisecond
	defaultRetryMaxElapsedTime  = 30 * time.Second
)

// Client calls the streamscharts jazz API.
type Client struct {
	httpClient *http.Client
	clock      clock.Clock

	baseURL  string
	platform string
	clientID string
	token    string

	testingMode          bool
	limit                int
	pace                 time.Duration
	retryInitialInterval time.Duration
	retryMaxElapsedTime  time.Duration
}

// Option provides the facility to configure how the client talks to the API.
type Option func(*Client)

// NewClient creates a client authenticated with the given credentials.
func NewClient(clientID, token string, options ...Option) (*Client, error) {
	if clientID == "" || token == "" {
		return nil, fmt.Errorf("missing one of required values: client ID, token")
	}

	c := &Client{
		httpClient:           http.DefaultClient,
		clock:                clock.New(),
		baseURL:              defaultBaseURL,
		platform:             defaultPlatform,
		clientID:             clientID,
		token:                token,
		limit:                defaultLimit,
		pace:                 defaultPace,
		retryInitialInterval: defaultRetryInitialInterval,
		retryMaxElapsedTime:  defaultRetryMaxElapsedTime,
	}

	for _, option := range options {
		option(c)
	}

	if c.limit <= 0 {
		return nil, fmt.Errorf("channel limit must be positive: %d", c.limit)
	}

	return c, nil
}

// BaseURL overrides the API endpoint.
func BaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// HTTPClient overrides the HTTP client used for requests.
func HTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// Clock overrides the clock used for request pacing.
func Clock(clk clock.Clock) Option {
	return func(c *Client) { c.clock = clk }
}

// ChannelLimit sets how many of the top channels are returned.
//
// This value defaults to 20.
func ChannelLimit(limit int) Option {
	return func(c *Client) { c.limit = limit }
}

// Pace is the delay inserted between successive history requests.
//
// This value defaults to 200ms.
func Pace(pace time.Duration) Option {
	return func(c *Client) { c.pace = pace }
}

// WithTestingMode marks whether the API's testing mode flag is sent on every
// request.
func WithTestingMode(testingMode bool) Option {
	return func(c *Client) { c.testingMode = testingMode }
}

// RetryInitialInterval sets the initial delay used when retrying failed
// requests.
func RetryInitialInterval(interval time.Duration) Option {
	return func(c *Client) { c.retryInitialInterval = interval }
}

// RetryMaxElapsedTime bounds the total time spent retrying a single request.
// Zero disables the bound.
func RetryMaxElapsedTime(maxElapsed time.Duration) Option {
	return func(c *Client) { c.retryMaxElapsedTime = maxElapsed }
}
