package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayquest/internal/keyring"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/remote"
	"github.com/julianstephens/dayquest/internal/session"
	"github.com/julianstephens/dayquest/internal/tracker"
)

var hints = []struct {
	target error
	hint   string
}{
	{models.ErrValidation, "check the values you entered and try again"},
	{keyring.ErrKeyringUnavailable, "set DAYQUEST_REMOTE_DSN or pass --remote instead"},
	{remote.ErrEmbeddedCredentials, "use PGPASSFILE or PGPASSWORD for the password"},
	{session.ErrNoSecret, "set DAYQUEST_SESSION_SECRET in the environment or a .env file"},
	{tracker.ErrNoSession, "run 'dayquest login' first"},
	{tracker.ErrNoRemote, "pass --remote, set DAYQUEST_REMOTE_DSN or run 'dayquest keyring set'"},
	{tracker.ErrTaskNotFound, "list task ids with 'dayquest task list --show-ids'"},
}

// Hint returns a short suggestion for errors the user can act on.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix,
// followed by a hint line when one applies.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
