// Package middleware holds the inbound HTTP pipeline. The router installs it
// in this order:
//
//	Recovery, RequestID, CorrelationID, OpenTelemetry, Logging, Timeout
//
// Every middleware is a func(http.Handler) http.Handler. Status capture uses
// chi's WrapResponseWriter.
package middleware
