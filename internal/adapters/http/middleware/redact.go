package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
)

const redacted = "[REDACTED]"

// credentialHeaders are never logged verbatim. Keys are canonical.
var credentialHeaders = map[string]struct{}{
	"Authorization":       {},
	"Proxy-Authorization": {},
	"Cookie":              {},
	"Set-Cookie":          {},
	"X-Api-Key":           {},
}

// RedactHeaders returns the headers as a "headers" log group with keys in
// sorted order, multi-valued headers joined by commas and credential headers
// replaced by [REDACTED]. Account and idempotency headers are kept since
// they identify, not authenticate.
func RedactHeaders(headers http.Header) slog.Attr {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	slices.Sort(names)

	attrs := make([]any, 0, len(names))
	for _, name := range names {
		value := strings.Join(headers[name], ",")
		if _, secret := credentialHeaders[http.CanonicalHeaderKey(name)]; secret {
			value = redacted
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return slog.Group("headers", attrs...)
}
