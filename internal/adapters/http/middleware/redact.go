package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/go-result/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders returns a "headers" group with one attribute per header in
// key order. Credentials (see logging.IsSensitiveHeader) are replaced with
// [REDACTED]; multi-value headers are comma-joined.
func RedactHeaders(headers http.Header) slog.Attr {
	attrs := make([]any, 0, len(headers))
	for _, key := range slices.Sorted(maps.Keys(headers)) {
		val := strings.Join(headers[key], ",")
		if logging.IsSensitiveHeader(key) {
			val = redacted
		}
		attrs = append(attrs, slog.String(key, val))
	}
	return slog.Group("headers", attrs...)
}
