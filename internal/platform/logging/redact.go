package logging

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

// sensitiveHeaders lists, in lowercase, the HTTP headers that carry
// credentials. The request logger and the masq field-name rules both read it.
var sensitiveHeaders = []string{"authorization", "cookie", "x-api-key"}

// IsSensitiveHeader reports whether the named header carries credentials.
// The match ignores case.
func IsSensitiveHeader(name string) bool {
	return slices.Contains(sensitiveHeaders, strings.ToLower(name))
}

var (
	sensitiveFields   = []string{"password", "secret", "token"}
	sensitivePrefixes = []string{"secret_", "api_key"}

	// Value patterns catch credentials logged under an innocent key. JWT
	// segments need ten characters so version strings like 1.2.3 survive.
	sensitiveValues = []*regexp.Regexp{
		regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
		regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
		regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
	}
)

// redactAttr builds the masq ReplaceAttr hook installed on every handler New
// returns.
func redactAttr() func([]string, slog.Attr) slog.Attr {
	var opts []masq.Option
	for _, name := range slices.Concat(sensitiveHeaders, sensitiveFields) {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range sensitiveValues {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}
