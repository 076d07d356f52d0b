package config

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names, exported for tests and tooling.
const (
	EnvAppEnv       = "INSIGHTS_APP_ENV"
	EnvPort         = "INSIGHTS_APP_PORT"
	EnvLogLevel     = "INSIGHTS_LOG_LEVEL"
	EnvLogWarnStack = "INSIGHTS_LOG_WARN_STACK"

	EnvShutdownTimeout   = "INSIGHTS_SHUTDOWN_TIMEOUT"
	EnvReadHeaderTimeout = "INSIGHTS_READ_HEADER_TIMEOUT"

	EnvRedisURL      = "INSIGHTS_REDIS_URL"
	EnvRedisAddr     = "INSIGHTS_REDIS_ADDR"
	EnvRedisPassword = "INSIGHTS_REDIS_PASSWORD"
	EnvRedisDB       = "INSIGHTS_REDIS_DB"

	EnvRateLimitEnabled = "INSIGHTS_RATE_LIMIT_ENABLED"
	EnvRateLimitWindow  = "INSIGHTS_RATE_LIMIT_WINDOW"
	EnvRateLimitLimit   = "INSIGHTS_RATE_LIMIT_LIMIT"

	EnvDefaultCurrentWindow = "INSIGHTS_PROJECTION_CURRENT_WINDOW"
	EnvDefaultForecastDays  = "INSIGHTS_PROJECTION_FORECAST_DAYS"
	EnvMaxWindow            = "INSIGHTS_PROJECTION_MAX_WINDOW"
	EnvMaxBodyBytes         = "INSIGHTS_PROJECTION_MAX_BODY_BYTES"
	EnvDefaultPolicy        = "INSIGHTS_PROJECTION_DEFAULT_POLICY"

	EnvCORSAllowedOrigins = "INSIGHTS_CORS_ALLOWED_ORIGINS"
)
