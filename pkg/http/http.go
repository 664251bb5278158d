// Package http is the outbound HTTP client used for third-party APIs.
//
// Client retries transport failures, 429 and 5xx responses with exponential
// backoff, honouring Retry-After when the server sends one:
//
//	c := http.New(http.WithAttempts(3), http.WithBackoff(500*time.Millisecond))
//	resp, err := c.Do(req)
//
// Requests whose body cannot be replayed (no GetBody) are sent once.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	gohttp "net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
)

// defaultTransport is the connection-pooled transport used in production.
var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// maxRetryAfter caps how long a Retry-After header can stall a call.
const maxRetryAfter = 30 * time.Second

type Client struct {
	inner    *gohttp.Client
	attempts int
	wait     time.Duration
}

type Option func(*Client)

// WithAttempts sets the total number of attempts (1 = no retry).
func WithAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithBackoff sets the first retry delay. It doubles on every attempt.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.wait = d }
}

// WithTimeout bounds each call, retries included. Long polls need a timeout
// larger than their poll interval.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.inner.Timeout = d }
}

// WithTransport swaps the round tripper, mostly for tests.
func WithTransport(rt gohttp.RoundTripper) Option {
	return func(c *Client) { c.inner.Transport = rt }
}

func New(opts ...Option) *Client {
	c := &Client{
		inner:    &gohttp.Client{Transport: defaultTransport},
		attempts: 3,
		wait:     500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends req, retrying when the failure looks transient. When every
// attempt gets a retryable status the last response is returned as is so
// the caller can read the API's error body.
func (c *Client) Do(req *gohttp.Request) (*gohttp.Response, error) {
	var lastErr error

	for attempt := 1; ; attempt++ {
		if attempt > 1 {
			body, err := rewind(req)
			if err != nil {
				return nil, err
			}
			req.Body = body
		}

		resp, err := c.inner.Do(req)
		last := attempt >= c.attempts || (req.Body != nil && req.GetBody == nil)

		var wait time.Duration
		switch {
		case err != nil:
			lastErr = err
			var uerr *url.Error
			if errors.As(err, &uerr) {
				lastErr = uerr.Err
			}
			if last || req.Context().Err() != nil {
				return nil, fmt.Errorf("http: %s %s failed after %d attempt(s): %w", req.Method, redact(req), attempt, lastErr)
			}
			wait = c.backoff(attempt)
		case retryable(resp.StatusCode) && !last:
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			wait = c.backoff(attempt)
			if ra, ok := retryAfter(resp); ok {
				wait = ra
			}
			drain(resp)
		default:
			return resp, nil
		}

		metrics.OutboundRetries.WithLabelValues(req.URL.Host).Inc()
		logger.Warn("http: request failed, retrying",
			"method", req.Method, "url", redact(req), "attempt", attempt, "backoff", wait, "error", lastErr)
		if err := sleep(req.Context(), wait); err != nil {
			return nil, err
		}
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	return time.Duration(float64(c.wait) * math.Pow(2, float64(attempt-1)))
}

func retryable(status int) bool {
	return status == gohttp.StatusTooManyRequests || status >= 500
}

func retryAfter(resp *gohttp.Response) (time.Duration, bool) {
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs < 0 {
		return 0, false
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter), true
}

func rewind(req *gohttp.Request) (io.ReadCloser, error) {
	if req.GetBody == nil {
		return req.Body, nil
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("http: rewind body: %w", err)
	}
	return body, nil
}

func drain(resp *gohttp.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	resp.Body.Close()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// redact drops the path, which carries the bot token for Telegram calls.
// Transport errors are unwrapped from *url.Error for the same reason.
func redact(req *gohttp.Request) string {
	return req.URL.Scheme + "://" + req.URL.Host
}
