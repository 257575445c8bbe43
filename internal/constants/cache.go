package constants

// Local cache keys. Each key holds a full collection snapshot, replaced on every write.
const (
	CacheKeyProfile      = "profile"
	CacheKeyTasks        = "tasks"
	CacheKeyExpenses     = "expenses"
	CacheKeyAppointments = "appointments"
	CacheKeyRewards      = "rewards"
	CacheKeyTrophies     = "trophies"
	CacheKeyTheme        = "theme"
	CacheKeyInstallDate  = "install_date"
)

// Environment variables
const (
	EnvRemoteDSN        = "DAYQUEST_REMOTE_DSN"
	EnvSessionSecret    = "DAYQUEST_SESSION_SECRET"
	EnvCompletionDelay  = "DAYQUEST_COMPLETION_DELAY"
	EnvWritebackRetries = "DAYQUEST_WRITEBACK_RETRIES"
	EnvSessionTTL       = "DAYQUEST_SESSION_TTL"
	EnvCachePath        = "DAYQUEST_CACHE_PATH"
	EnvTimezone         = "DAYQUEST_TIMEZONE"
	EnvLogLevel         = "DAYQUEST_LOG_LEVEL"
	EnvTestPostgresDSN  = "DAYQUEST_TEST_POSTGRES_DSN"
)
