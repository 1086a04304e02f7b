// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by handlers.
// Store ports are implemented by outbound adapters and called by the application layer.
// Operations that can fail for business reasons return result.Result rather
// than (value, error) pairs.
package ports
