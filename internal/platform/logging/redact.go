package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SecretTag marks struct fields that must never be logged, as in
// `masq:"secret"`. Config credentials carry it so the loaded configuration
// can be logged whole.
const SecretTag = "secret"

var (
	// bearerPattern catches tokens that reach a message or value verbatim.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

	// jwtPattern needs 10+ characters per segment so version strings and
	// dotted ids are left alone.
	jwtPattern = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)

	// redisURLPattern catches passwords embedded in redis connection URLs.
	redisURLPattern = regexp.MustCompile(`rediss?://[^:@/\s]*:[^@\s]+@`)
)

// redactor returns the masq ReplaceAttr used by every handler New builds.
func redactor() func([]string, slog.Attr) slog.Attr {
	return masq.New(
		masq.WithTag(SecretTag),

		masq.WithFieldName("authorization"),
		masq.WithFieldName("Authorization"),
		masq.WithFieldName("cookie"),
		masq.WithFieldName("password"),
		masq.WithFieldName("Password"),
		masq.WithFieldName("api_key"),
		masq.WithFieldName("APIKey"),
		masq.WithFieldPrefix("secret"),

		masq.WithRegex(bearerPattern),
		masq.WithRegex(jwtPattern),
		masq.WithRegex(redisURLPattern),
	)
}
