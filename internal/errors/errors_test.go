package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/dayquest/internal/keyring"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/remote"
	"github.com/julianstephens/dayquest/internal/session"
	"github.com/julianstephens/dayquest/internal/tracker"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"plain error", errors.New("boom"), ""},
		{"nil", nil, ""},
		{"validation wrapped twice", fmt.Errorf("failed to add task: %w", fmt.Errorf("%w: title", models.ErrValidation)), "check the values"},
		{"keyring", fmt.Errorf("resolve dsn: %w", keyring.ErrKeyringUnavailable), "DAYQUEST_REMOTE_DSN"},
		{"embedded password", remote.ErrEmbeddedCredentials, "PGPASSFILE"},
		{"no session secret", fmt.Errorf("%w: set it", session.ErrNoSecret), "DAYQUEST_SESSION_SECRET"},
		{"signed out", fmt.Errorf("sync failed: %w", tracker.ErrNoSession), "dayquest login"},
		{"no remote", tracker.ErrNoRemote, "dayquest keyring set"},
		{"unknown task", fmt.Errorf("%w: abc", tracker.ErrTaskNotFound), "--show-ids"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q", got)
	}
	if got := Format(errors.New("cache is locked")); got != "Error: cache is locked" {
		t.Errorf("Format() = %q", got)
	}

	got := Format(fmt.Errorf("restore failed: %w", tracker.ErrNoSession))
	want := "Error: restore failed: not signed in\nHint: run 'dayquest login' first"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("task %s not found (%d pending)", "abc", 3); got != "Error: task abc not found (3 pending)" {
		t.Errorf("Formatf() = %q", got)
	}
}

// TestFatal re-runs the test binary so Fatal can exit.
func TestFatal(t *testing.T) {
	switch os.Getenv("DAYQUEST_FATAL_CASE") {
	case "error":
		Fatal(fmt.Errorf("sync failed: %w", tracker.ErrNoRemote))
		return
	case "nil":
		Fatal(nil)
		os.Exit(0)
	}

	run := func(c string) (int, string) {
		cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
		cmd.Env = append(os.Environ(), "DAYQUEST_FATAL_CASE="+c)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		err := cmd.Run()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), stderr.String()
		}
		if err != nil {
			t.Fatalf("subprocess failed to start: %v", err)
		}
		return 0, stderr.String()
	}

	code, stderr := run("error")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Error: sync failed: no remote store configured") || !strings.Contains(stderr, "Hint:") {
		t.Errorf("stderr = %q", stderr)
	}

	if code, _ := run("nil"); code != 0 {
		t.Errorf("Fatal(nil) exit code = %d, want 0", code)
	}
}
