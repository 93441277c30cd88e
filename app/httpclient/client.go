package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const backoffBase = 300 * time.Millisecond

// FetchError is returned when a request fails after exhausting its retry
// budget. It carries the last observed HTTP status (0 on transport errors).
type FetchError struct {
	URL        string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s failed after %d attempts: HTTP %d", e.URL, e.Attempts, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client performs HTTP GET requests with bounded exponential backoff.
// Backoff delays grow by a factor of 3 per attempt (300ms, 900ms, 2700ms...).
type Client struct {
	httpClient *http.Client
	userAgent  string
	maxRetries int
	sleep      func(time.Duration)
}

func New(timeout time.Duration, maxRetries int, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		maxRetries: maxRetries,
		sleep:      time.Sleep,
	}
}

// Get fetches the URL and returns the response body. It retries on transport
// errors and non-2xx responses; the delay is applied before each retry, not
// before the first attempt.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	var lastErr error
	lastStatus := 0

	attempts := c.maxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := backoffBase
			for i := 1; i < attempt; i++ {
				delay *= 3
			}
			slog.Debug("Retrying fetch", "url", url, "attempt", attempt+1, "delay", delay.String())
			c.sleep(delay)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		body, status, err := c.doGet(ctx, url)
		if err == nil {
			return body, nil
		}

		lastErr = err
		lastStatus = status
	}

	return "", &FetchError{URL: url, StatusCode: lastStatus, Attempts: attempts, Err: lastErr}
}

func (c *Client) doGet(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", resp.StatusCode, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return string(data), 0, nil
}
