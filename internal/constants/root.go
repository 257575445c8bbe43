package constants

import "time"

const (
	AppName             = "dayquest"
	DefaultKeyringUser  = "remote-connection"
	SessionKeyringUser  = "session-token"
	DefaultConfigPath   = "~/.config/dayquest/cache.db"
	Version             = "v0.3.0"
	DefaultUserName     = "User"
	DefaultAvatar       = "dino"
	DefaultTheme        = "day"
	DefaultSessionTTL   = 7 * 24 * time.Hour
	DefaultCompletionMs = 1000

	// DateFormat is the calendar-day format used for dedup keys and streaks (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the layout of the derived expense month label
	MonthFormat = "January 2006"

	// DateTimeFormat is accepted for appointment input (YYYY-MM-DD HH:MM)
	DateTimeFormat = "2006-01-02 15:04"

	// CompletionDelay is how long a task stays in the completing state
	CompletionDelay = DefaultCompletionMs * time.Millisecond

	// Background writer
	DefaultMaxRetries = 0
	RetryBackoff      = 200 * time.Millisecond
)
