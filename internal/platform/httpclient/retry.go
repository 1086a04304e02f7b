package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/go-result/internal/platform/config"
	"github.com/jsamuelsen11/go-result/internal/platform/logging"
)

// jitterFraction spreads each backoff delay by up to ±25%.
const jitterFraction = 0.25

// retryPolicy is the client's copy of config.RetryConfig.
type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		maxAttempts:     cfg.MaxAttempts,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		multiplier:      cfg.Multiplier,
	}
}

// backoff is the delay before retry number attempt (1 for the first retry):
// initialInterval * multiplier^(attempt-1), capped at maxInterval, then
// jittered.
func (p retryPolicy) backoff(attempt int) time.Duration {
	delay := min(float64(p.initialInterval)*math.Pow(p.multiplier, float64(attempt-1)), float64(p.maxInterval))
	delay += delay * jitterFraction * (2*rand.Float64() - 1) //nolint:gosec // jitter needs no CSPRNG
	return time.Duration(max(delay, 0))
}

// delay honours a server-supplied Retry-After, still capped at maxInterval.
func (p retryPolicy) delay(attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return min(retryAfter, p.maxInterval)
	}
	return p.backoff(attempt)
}

// doWithRetry sends req up to maxAttempts times, replaying its body each
// time. A retryable status on the final attempt is handed back through resp
// together with an error; the caller then owns the open body.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retry.maxAttempts < 1 {
		return fmt.Errorf("httpclient: retry.max_attempts must be >= 1, got %d", c.retry.maxAttempts)
	}

	body, err := snapshotBody(req)
	if err != nil {
		return err
	}

	var (
		lastErr    error
		retryAfter time.Duration
	)
	for attempt := range c.retry.maxAttempts {
		if attempt > 0 {
			if err := c.pause(ctx, req, attempt, c.retry.delay(attempt, retryAfter), lastErr); err != nil {
				return err
			}
		}
		body.rewind(req)

		r, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			if !isRetryable(err) {
				return err
			}
			lastErr, retryAfter = err, 0
			continue
		case !isRetryableStatus(r.StatusCode):
			*resp = r
			return nil
		}

		lastErr = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName)
		retryAfter = parseRetryAfter(r)
		if attempt == c.retry.maxAttempts-1 {
			*resp = r
			return lastErr
		}
		// drain so the connection goes back to the pool
		_, _ = io.Copy(io.Discard, r.Body)
		_ = r.Body.Close()
	}
	return lastErr
}

// requestBody holds a request payload so every attempt can resend it.
type requestBody []byte

func snapshotBody(req *http.Request) (requestBody, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("buffering request body: %w", err)
	}
	return data, nil
}

func (b requestBody) rewind(req *http.Request) {
	if b == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(b))
	req.ContentLength = int64(len(b))
}

// pause logs the upcoming retry and sleeps for d unless ctx ends first.
func (c *Client) pause(ctx context.Context, req *http.Request, attempt int, d time.Duration, cause error) error {
	logging.FromContext(ctx).WarnContext(ctx, "retrying downstream call",
		slog.String("peer_service", c.serviceName),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.retry.maxAttempts),
		slog.Duration("backoff", d),
		slog.Any("error", cause),
	)

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseRetryAfter reads Retry-After in delta-seconds from a 429. Dates and
// any other status give zero.
func parseRetryAfter(resp *http.Response) time.Duration {
	if resp.StatusCode != http.StatusTooManyRequests {
		return 0
	}
	secs, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// isRetryable treats every transport error as transient except the caller
// giving up.
func isRetryable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
