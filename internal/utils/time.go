package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/dayquest/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDateInLocation parses YYYY-MM-DD, or "today"/"tomorrow"/"yesterday"
// relative to now, returning midnight in loc.
func ParseDateInLocation(dateStr string, now time.Time, loc *time.Location) (time.Time, error) {
	now = now.In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch strings.ToLower(strings.TrimSpace(dateStr)) {
	case "", "today":
		return midnight, nil
	case "tomorrow":
		return midnight.AddDate(0, 0, 1), nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1), nil
	}

	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(dateStr), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// ParseDateTimeInLocation accepts "YYYY-MM-DD HH:MM" or anything
// ParseDateInLocation accepts.
func ParseDateTimeInLocation(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(constants.DateTimeFormat, strings.TrimSpace(s), loc); err == nil {
		return t, nil
	}
	return ParseDateInLocation(s, now, loc)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
