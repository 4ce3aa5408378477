// Package tmdb is a small client for the TMDB v3 REST API.
//
// Every request is retried up to three times with a linear backoff of one,
// two, and three seconds after each failed attempt. A request that fails all
// attempts returns an *Error carrying the last status and a body snippet.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the TMDB v3 API root.
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultTimeout = 30 * time.Second
	defaultMaxRPS  = 20.0
	defaultBurst   = 5

	maxAttempts = 3

	// Courtesy pauses, not rate limiting.
	pageDelay    = 300 * time.Millisecond
	creditsDelay = 200 * time.Millisecond
)

// Options configures a Client. Zero values take defaults.
type Options struct {
	Token   string
	BaseURL string
	Timeout time.Duration
	// MaxRPS caps outbound requests per second across the whole client.
	MaxRPS float64
}

// Client is a TMDB API client authenticated with a v4 bearer token.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
	limiter *rate.Limiter
	logger  *slog.Logger

	// sleep waits for d or until ctx is done. Tests replace it.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a new TMDB client.
func New(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRPS <= 0 {
		opts.MaxRPS = defaultMaxRPS
	}

	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		baseURL: opts.BaseURL,
		token:   opts.Token,
		limiter: rate.NewLimiter(rate.Limit(opts.MaxRPS), defaultBurst),
		logger:  logger,
		sleep:   sleepContext,
	}
}

// Close releases resources. Currently a no-op but included for interface consistency.
func (c *Client) Close() {}

// Get fetches path with query and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, op, path string, query url.Values, out any) error {
	body, err := c.get(ctx, op, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: op, URL: c.buildURL(path, nil), Attempts: 1, Err: fmt.Errorf("parse response: %w", err)}
	}
	return nil
}

// get performs the GET with retries and returns the raw body of the first 200 response.
func (c *Client) get(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	fullURL := c.buildURL(path, query)

	var lastErr *Error
	for attempt := range maxAttempts {
		body, err := c.do(ctx, op, fullURL)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, &Error{Op: op, URL: fullURL, Attempts: attempt + 1, Err: ctx.Err()}
		}

		lastErr = err
		lastErr.Attempts = attempt + 1
		wait := backoff(attempt)
		c.logger.Warn("tmdb request failed",
			"op", op,
			"path", path,
			"attempt", attempt+1,
			"status", err.Status,
			"retry_in", wait,
		)
		if err := c.sleep(ctx, wait); err != nil {
			return nil, &Error{Op: op, URL: fullURL, Attempts: attempt + 1, Err: err}
		}
	}

	return nil, lastErr
}

// do executes a single attempt.
func (c *Client) do(ctx context.Context, op, fullURL string) ([]byte, *Error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Op: op, URL: fullURL, Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &Error{Op: op, URL: fullURL, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "reelpulse/1.0")

	c.logger.Debug("tmdb request", "op", op, "url", fullURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, URL: fullURL, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, URL: fullURL, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Op:     op,
			URL:    fullURL,
			Status: resp.StatusCode,
			Body:   snippet(body),
			Err:    statusError(resp.StatusCode),
		}
	}

	return body, nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// backoff returns the wait after the given zero-based failed attempt: 1s, 2s, 3s.
func backoff(attempt int) time.Duration {
	return time.Duration(attempt+1) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
