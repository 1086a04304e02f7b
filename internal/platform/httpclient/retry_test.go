package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-result/internal/platform/config"
)

func TestBackoff_ExponentialIncrease(t *testing.T) {
	t.Parallel()

	p := retryPolicy{
		initialInterval: 100 * time.Millisecond,
		maxInterval:     10 * time.Second,
		multiplier:      2.0,
	}

	for attempt := 1; attempt <= 3; attempt++ {
		base := float64(100*time.Millisecond) * math.Pow(2.0, float64(attempt-1))
		lo := time.Duration(base * (1 - jitterFraction))
		hi := time.Duration(base * (1 + jitterFraction))

		for range 100 {
			delay := p.backoff(attempt)
			assert.GreaterOrEqual(t, delay, lo, "attempt %d", attempt)
			assert.LessOrEqual(t, delay, hi, "attempt %d", attempt)
		}
	}
}

func TestBackoff_CappedAtMaxInterval(t *testing.T) {
	t.Parallel()

	p := retryPolicy{
		initialInterval: 100 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		multiplier:      2.0,
	}
	hi := time.Duration(float64(p.maxInterval) * (1 + jitterFraction))

	for range 100 {
		assert.LessOrEqual(t, p.backoff(10), hi)
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"wrapped canceled", fmt.Errorf("dial: %w", context.Canceled), false},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, true},
		{"generic", errors.New("something failed"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, false},
		{http.StatusCreated, false},
		{http.StatusBadRequest, false},
		{http.StatusNotFound, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isRetryableStatus(tt.status))
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		header string
		want   time.Duration
	}{
		{"seconds on 429", http.StatusTooManyRequests, "2", 2 * time.Second},
		{"missing header", http.StatusTooManyRequests, "", 0},
		{"http date ignored", http.StatusTooManyRequests, "Wed, 21 Oct 2015 07:28:00 GMT", 0},
		{"negative ignored", http.StatusTooManyRequests, "-1", 0},
		{"only honoured on 429", http.StatusServiceUnavailable, "2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			assert.Equal(t, tt.want, parseRetryAfter(resp))
		})
	}
}

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	p := newRetryPolicy(config.RetryConfig{
		MaxAttempts:     3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
	})

	assert.Equal(t, 500*time.Millisecond, p.delay(1, 500*time.Millisecond), "Retry-After wins")
	assert.Equal(t, time.Second, p.delay(1, 30*time.Second), "Retry-After is capped")

	d := p.delay(2, 0)
	assert.GreaterOrEqual(t, d, 150*time.Millisecond)
	assert.LessOrEqual(t, d, 250*time.Millisecond)
}

func TestRequestBody_Rewind(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"a"}`))
	body, err := snapshotBody(req)
	require.NoError(t, err)

	for range 2 {
		body.rewind(req)
		got, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"a"}`, string(got))
		assert.Equal(t, int64(len(got)), req.ContentLength)
	}

	empty, err := snapshotBody(httptest.NewRequest(http.MethodGet, "/todos", nil))
	require.NoError(t, err)
	assert.Nil(t, empty)
}
