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

		"db.driver": "sqlite",
		"db.dsn":    "file:projectboard.db",

		"auth.jwt_secret": "",

		"identity.base_url":                        "http://localhost:1337",
		"identity.timeout":                         "10s",
		"identity.retry.max_attempts":              defaultRetryMaxAttempts,
		"identity.retry.initial_interval":          "100ms",
		"identity.retry.max_interval":              "10s",
		"identity.retry.multiplier":                defaultRetryMultiplier,
		"identity.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"identity.circuit_breaker.timeout":         "30s",
		"identity.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"identity.rate_limit.requests_per_second":  0,
		"identity.rate_limit.burst_size":           0,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
