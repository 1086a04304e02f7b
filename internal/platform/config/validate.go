package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate reports every invalid setting at once, joined with errors.Join.
func (c *Config) Validate() error {
	var v validator

	s := c.Server
	v.check(s.Port >= 1 && s.Port <= 65535, "server.port must be between 1 and 65535, got %d", s.Port)
	v.check(s.ReadTimeout > 0, "server.read_timeout must be positive, got %s", s.ReadTimeout)
	v.check(s.WriteTimeout > 0, "server.write_timeout must be positive, got %s", s.WriteTimeout)
	v.check(s.RequestTimeout > 0 && s.RequestTimeout < s.WriteTimeout,
		"server.request_timeout must be positive and below server.write_timeout (%s), got %s",
		s.WriteTimeout, s.RequestTimeout)

	v.oneOf("log.level", c.Log.Level, "debug", "info", "warn", "error")
	v.oneOf("log.format", c.Log.Format, "json", "text")

	v.oneOf("store.backend", c.Store.Backend, StoreBackendMemory, StoreBackendRemote)
	v.check(c.Store.BulkMaxWorkers >= 1, "store.bulk_max_workers must be >= 1, got %d", c.Store.BulkMaxWorkers)

	cl := c.Client
	v.check(cl.BaseURL != "", "client.base_url must not be empty")
	v.check(cl.Timeout > 0, "client.timeout must be positive, got %s", cl.Timeout)
	v.check(cl.Retry.MaxAttempts >= 1, "client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts)
	v.check(cl.Retry.Multiplier > 0, "client.retry.multiplier must be positive, got %g", cl.Retry.Multiplier)
	v.check(cl.CircuitBreaker.MaxFailures >= 1,
		"client.circuit_breaker.max_failures must be >= 1, got %d", cl.CircuitBreaker.MaxFailures)
	v.check(cl.RateLimit.RequestsPerSecond >= 0,
		"client.rate_limit.requests_per_second must not be negative, got %g", cl.RateLimit.RequestsPerSecond)
	v.check(cl.RateLimit.RequestsPerSecond == 0 || cl.RateLimit.BurstSize >= 1,
		"client.rate_limit.burst_size must be >= 1 when rate limiting is enabled, got %d", cl.RateLimit.BurstSize)

	// Exporter settings only matter once telemetry is switched on.
	if t := c.Telemetry; t.Enabled {
		v.oneOf("telemetry.exporter", t.Exporter, "stdout", "otlp")
		v.check(t.Exporter != "otlp" || t.Endpoint != "", "telemetry.endpoint must not be empty when exporter is otlp")
	}

	return errors.Join(v.errs...)
}

type validator struct {
	errs []error
}

func (v *validator) check(ok bool, format string, args ...any) {
	if !ok {
		v.errs = append(v.errs, fmt.Errorf(format, args...))
	}
}

func (v *validator) oneOf(key, got string, allowed ...string) {
	v.check(slices.Contains(allowed, got), "%s must be one of %v, got %q", key, allowed, got)
}
