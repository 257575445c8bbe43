package appointments

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dayquest/internal/cache"
	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/config"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	local := cache.NewSQLite(dbPath)
	if err := local.Init(); err != nil {
		t.Fatalf("failed to init cache: %v", err)
	}
	if err := local.Close(); err != nil {
		t.Fatal(err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Config:  &config.Config{CachePath: dbPath, CompletionDelay: time.Millisecond},
		Offline: true,
		Out:     out,
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, out
}

func TestAppointmentAddListDelete(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&AppointmentAddCmd{Title: "Dentist", Date: "2099-01-02 10:00", Duration: 30, Category: "health"}).Run(ctx); err != nil {
		t.Fatalf("appointment add failed: %v", err)
	}
	if err := (&AppointmentAddCmd{Title: "Old standup", Date: "2000-01-03 09:00", Duration: 15, Category: "meeting"}).Run(ctx); err != nil {
		t.Fatalf("appointment add failed: %v", err)
	}

	out.Reset()
	if err := (&AppointmentListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "Dentist (30m, health)") || strings.Contains(got, "Old standup") {
		t.Errorf("upcoming list = %q", got)
	}

	out.Reset()
	if err := (&AppointmentListCmd{Past: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Old standup") {
		t.Errorf("list --past = %q", out.String())
	}

	tr, err := ctx.Tracker(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	ws, _ := tr.Snapshot(context.Background())
	for _, a := range ws.Appointments {
		if err := (&AppointmentDeleteCmd{ID: a.ID}).Run(ctx); err != nil {
			t.Fatalf("appointment delete failed: %v", err)
		}
	}

	out.Reset()
	if err := (&AppointmentListCmd{Past: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No appointments found") {
		t.Errorf("list after delete = %q", out.String())
	}
}

func TestAppointmentAddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  AppointmentAddCmd
	}{
		{"unknown category", AppointmentAddCmd{Title: "Party", Date: "tomorrow", Duration: 60, Category: "work"}},
		{"bad date", AppointmentAddCmd{Title: "Party", Date: "next week", Duration: 60, Category: "social"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestContext(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("appointment add accepted invalid input")
			}
		})
	}
}
