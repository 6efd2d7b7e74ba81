package config

const (
	KeyHostname       = "hostname"
	KeyOrganization   = "organization"
	KeyAccessToken    = "access_token"
	KeyUserLogin      = "user_login"
	KeyLogLevel       = "log_level"
	KeyCacheTTL       = "cache_ttl"
	KeyRequestTimeout = "request_timeout"
	KeyMaxConcurrent  = "max_concurrent_fetches"
)
