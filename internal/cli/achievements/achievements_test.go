package achievements

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dayquest/internal/cache"
	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/config"
	"github.com/julianstephens/dayquest/internal/progress"
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

func TestCheckinOncePerDay(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&CheckinCmd{}).Run(ctx); err != nil {
		t.Fatalf("checkin failed: %v", err)
	}
	out.Reset()
	if err := (&CheckinCmd{}).Run(ctx); err != nil {
		t.Fatalf("second checkin failed: %v", err)
	}
	if !strings.Contains(out.String(), "Already checked in today. Streak: 1 days") {
		t.Errorf("second checkin output = %q", out.String())
	}
}

func TestRewardsAndTrophiesStartLocked(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&RewardsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, fmt.Sprintf("Rewards (0/%d)", len(progress.Rewards))) {
		t.Errorf("rewards header missing from %q", got)
	}
	if !strings.Contains(got, "unlocks at level 2") {
		t.Errorf("locked reward missing from %q", got)
	}

	out.Reset()
	if err := (&TrophiesCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got = out.String()
	if !strings.Contains(got, fmt.Sprintf("Trophies (0/%d)", len(progress.Trophies))) {
		t.Errorf("trophies header missing from %q", got)
	}
	if !strings.Contains(got, "/7 days") {
		t.Errorf("week trophy progress missing from %q", got)
	}
}
