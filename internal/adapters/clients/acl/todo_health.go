package acl

import "context"

// Name identifies the remote store in the health registry. It matches the
// service name given to the underlying httpclient.Client.
func (c *TodoClient) Name() string {
	return "todo-api"
}

// HealthCheck reports the downstream circuit breaker state without making a
// network call. It reflects downstream status, not readiness of this
// service, which keeps answering with Unavailable faults while the breaker
// is open.
func (c *TodoClient) HealthCheck(ctx context.Context) error {
	return c.req.HealthCheck(ctx)
}
