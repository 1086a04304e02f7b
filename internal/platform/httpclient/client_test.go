package httpclient_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/go-result/internal/platform/config"
	"github.com/jsamuelsen11/go-result/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-result/internal/platform/telemetry"
)

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       1 * time.Second,
			HalfOpenLimit: 1,
		},
	}
}

// get issues a GET through client and closes any response body.
func get(t *testing.T, ctx context.Context, client *httpclient.Client, url string) (int, error) {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(ctx, req)
	if resp == nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode, err
}

func statusServer(t *testing.T, status int, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// tripBreaker sends one failing request with retries and threshold at one.
func tripBreaker(t *testing.T, breakerTimeout time.Duration) (*httpclient.Client, *httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := statusServer(t, http.StatusInternalServerError, &hits)

	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.CircuitBreaker.Timeout = breakerTimeout
	cfg.Retry.MaxAttempts = 1

	client := httpclient.New(cfg, "todo-api")
	_, err := get(t, context.Background(), client, srv.URL+"/trip")
	require.Error(t, err)

	return client, srv, &hits
}

func TestDo_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	client := httpclient.New(testConfig(srv.URL), "test-svc")

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/test", http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestDo_RetryOnRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		failStatus   int
		failCount    int32
		wantAttempts int32
	}{
		{"5xx retries until success", http.StatusInternalServerError, 2, 3},
		{"429 retries until success", http.StatusTooManyRequests, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var count atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if count.Add(1) <= tt.failCount {
					w.WriteHeader(tt.failStatus)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			t.Cleanup(srv.Close)

			status, err := get(t, context.Background(), httpclient.New(testConfig(srv.URL), "test-svc"), srv.URL)

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.wantAttempts, count.Load())
		})
	}
}

func TestDo_RetryAfterHonouredUpToMaxInterval(t *testing.T) {
	t.Parallel()

	var count atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if count.Add(1) == 1 {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	start := time.Now()
	status, err := get(t, context.Background(), httpclient.New(testConfig(srv.URL), "test-svc"), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Less(t, time.Since(start), 5*time.Second, "Retry-After must be capped at max interval")
}

func TestDo_NoRetryOn4xx(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := statusServer(t, http.StatusBadRequest, &hits)

	status, err := get(t, context.Background(), httpclient.New(testConfig(srv.URL), "test-svc"), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int32(1), hits.Load())
}

func TestDo_MaxRetriesExhausted(t *testing.T) {
	t.Parallel()

	var count atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		count.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
	}))
	t.Cleanup(srv.Close)

	client := httpclient.New(testConfig(srv.URL), "test-svc")

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), req)
	require.Error(t, err)
	require.NotNil(t, resp, "last response is returned with its body")
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "unavailable", string(body))
	assert.Equal(t, int32(3), count.Load())
}

func TestDo_RequestBodyPreservedAcrossRetries(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		bodies []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		n := len(bodies)
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := httpclient.New(testConfig(srv.URL), "test-svc")

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL, strings.NewReader("hello"))
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"hello", "hello"}, bodies)
}

func TestDo_HeaderInjection(t *testing.T) {
	t.Parallel()

	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client := httpclient.New(testConfig(srv.URL), "test-svc")

	ctx := httpclient.WithRequestID(context.Background(), "req-123")
	ctx = httpclient.WithCorrelationID(ctx, "corr-456")

	_, err := get(t, ctx, client, srv.URL)
	require.NoError(t, err)

	h := <-headers
	assert.Equal(t, "req-123", h.Get("X-Request-ID"))
	assert.Equal(t, "corr-456", h.Get("X-Correlation-ID"))
}

func TestDo_NoHeadersWithoutContext(t *testing.T) {
	t.Parallel()

	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	_, err := get(t, context.Background(), httpclient.New(testConfig(srv.URL), "test-svc"), srv.URL)
	require.NoError(t, err)

	h := <-headers
	assert.Empty(t, h.Get("X-Request-ID"))
	assert.Empty(t, h.Get("X-Correlation-ID"))
}

func TestDo_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	client, srv, hits := tripBreaker(t, time.Second)
	before := hits.Load()

	_, err := get(t, context.Background(), client, srv.URL)

	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, httpclient.IsBreakerRejection(err))
	assert.Equal(t, before, hits.Load(), "open breaker must not reach the server")
	assert.Equal(t, httpclient.StateOpen, client.BreakerState())
}

func TestDo_CircuitBreakerRecovery(t *testing.T) {
	t.Parallel()

	var failing atomic.Bool
	failing.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.CircuitBreaker.Timeout = 100 * time.Millisecond
	cfg.Retry.MaxAttempts = 1
	client := httpclient.New(cfg, "test-svc")

	_, _ = get(t, context.Background(), client, srv.URL)
	_, err := get(t, context.Background(), client, srv.URL)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)

	time.Sleep(150 * time.Millisecond)
	failing.Store(false)

	status, err := get(t, context.Background(), client, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, httpclient.StateClosed, client.BreakerState())
}

func TestDo_CanceledCallsDoNotTripBreaker(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusOK, nil)

	cfg := testConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 1
	client := httpclient.New(cfg, "test-svc")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := get(t, ctx, client, srv.URL)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, httpclient.StateClosed, client.BreakerState())
}

func TestDo_RateLimitWaitHonoursContext(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := statusServer(t, http.StatusOK, &hits)

	cfg := testConfig(srv.URL)
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1}
	client := httpclient.New(cfg, "test-svc")

	_, err := get(t, context.Background(), client, srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = get(t, ctx, client, srv.URL)
	require.Error(t, err, "second call has no token and cannot wait for one")
	assert.Equal(t, int32(1), hits.Load())
}

func TestDo_RecordsClientMetrics(t *testing.T) {
	t.Parallel()

	srv := statusServer(t, http.StatusNotFound, nil)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := telemetry.NewMetrics(mp, "test")
	require.NoError(t, err)

	client := httpclient.New(testConfig(srv.URL), "todo-api", httpclient.WithMetrics(metrics))
	_, err = get(t, context.Background(), client, srv.URL)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.client.request.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)

			dp := sum.DataPoints[0]
			outcome, _ := dp.Attributes.Value(telemetry.AttrResult)
			status, _ := dp.Attributes.Value(telemetry.AttrHTTPStatus)
			assert.Equal(t, int64(1), dp.Value)
			assert.Equal(t, "error", outcome.AsString())
			assert.Equal(t, int64(http.StatusNotFound), status.AsInt64())
			found = true
		}
	}
	assert.True(t, found, "http.client.request.total not recorded")
}

func TestClient_Name(t *testing.T) {
	t.Parallel()

	client := httpclient.New(testConfig("http://localhost"), "todo-api")

	assert.Equal(t, "todo-api", client.Name())
	assert.Equal(t, "http://localhost", client.BaseURL())
}

func TestClient_HealthCheck(t *testing.T) {
	t.Parallel()

	t.Run("closed", func(t *testing.T) {
		t.Parallel()
		client := httpclient.New(testConfig("http://localhost"), "todo-api")
		assert.NoError(t, client.HealthCheck(context.Background()))
	})

	t.Run("open", func(t *testing.T) {
		t.Parallel()
		client, _, _ := tripBreaker(t, time.Minute)
		err := client.HealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failing")
	})

	t.Run("half-open", func(t *testing.T) {
		t.Parallel()
		client, _, _ := tripBreaker(t, 100*time.Millisecond)
		time.Sleep(150 * time.Millisecond)

		err := client.HealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "degraded")
		assert.Equal(t, httpclient.StateHalfOpen, client.BreakerState())
	})
}
