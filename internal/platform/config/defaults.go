package config

const (
	defaultServerPort = 8080

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"storage.driver":      StorageMemory,
		"storage.sqlite.path": "crowdfund.db",

		"payout.driver":                                 PayoutCustody,
		"payout.client.base_url":                        "http://localhost:8081",
		"payout.client.api_key":                         "",
		"payout.client.timeout":                         "30s",
		"payout.client.retry.max_attempts":              defaultRetryMaxAttempts,
		"payout.client.retry.initial_interval":          "100ms",
		"payout.client.retry.max_interval":              "10s",
		"payout.client.retry.multiplier":                defaultRetryMultiplier,
		"payout.client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"payout.client.circuit_breaker.timeout":         "30s",
		"payout.client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"payout.client.rate_limit.requests_per_second":  0,
		"payout.client.rate_limit.burst_size":           1,

		"idempotency.enabled":        true,
		"idempotency.driver":         IdempotencyMemory,
		"idempotency.ttl":            "24h",
		"idempotency.redis.addr":     "localhost:6379",
		"idempotency.redis.password": "",
		"idempotency.redis.db":       0,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "crowdfund-escrow",
	}
}
