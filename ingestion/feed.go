package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/poiesic/hemeroteca/core"
)

const (
	defaultUserAgent = "hemeroteca/1.0"
	defaultTimeout   = 30 * time.Second
)

// HTTPClient is the subset of *http.Client used to fetch feeds and pages.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FeedClient fetches feeds and article pages over HTTP.
// It is safe for concurrent use.
type FeedClient struct {
	httpClient HTTPClient
	limiter    *rate.Limiter
	userAgent  string
	logger     *slog.Logger
}

// ClientOption configures a FeedClient.
type ClientOption func(*FeedClient)

// WithHTTPClient sets the HTTP client.
// Default is an *http.Client with a 30 second timeout.
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *FeedClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit caps outgoing requests at r per second with the given burst.
// Default is no limit.
func WithRateLimit(r float64, burst int) ClientOption {
	return func(c *FeedClient) {
		if r <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(r), max(burst, 1))
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *FeedClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithClientLogger sets a custom logger.
// Default is slog.Default().
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *FeedClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewFeedClient creates a feed client.
func NewFeedClient(opts ...ClientOption) *FeedClient {
	c := &FeedClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  defaultUserAgent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "feed-client")
	return c
}

// Get issues a GET request and returns the response of a 2xx answer.
// The caller must close the body.
func (c *FeedClient) Get(ctx context.Context, url string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}
	return resp, nil
}

// Fetch reads the feed at url and returns its valid entries as items.
// Invalid entries are logged and skipped.
func (c *FeedClient) Fetch(ctx context.Context, url string) ([]core.Item, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFeedParse, url, err)
	}

	items := make([]core.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		item, err := ItemFromFeed(feed.Title, entry)
		if err != nil {
			c.logger.Warn("skipping feed entry", "feed", url, "err", err)
			continue
		}
		items = append(items, item)
	}

	c.logger.Debug("fetched feed", "feed", url, "channel", feed.Title, "items", len(items))
	return items, nil
}
