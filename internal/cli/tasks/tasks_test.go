package tasks

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
		Config:  &config.Config{CachePath: dbPath, CompletionDelay: 5 * time.Millisecond},
		Offline: true,
		Out:     out,
	}
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx, out
}

func onlyTaskID(t *testing.T, ctx *cli.Context) string {
	t.Helper()
	tr, err := ctx.Tracker(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	ws, err := tr.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ws.Pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(ws.Pending))
	}
	return ws.Pending[0].ID
}

func TestTaskAddAndList(t *testing.T) {
	ctx, out := setupTestContext(t)

	add := &TaskAddCmd{Title: "Write report", Category: "work", Priority: "high", Estimate: 30}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("task add failed: %v", err)
	}

	out.Reset()
	if err := (&TaskListCmd{ShowIDs: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "Write report") || !strings.Contains(got, "30m") {
		t.Errorf("list output = %q", got)
	}
}

func TestTaskAddRejectsBadPriority(t *testing.T) {
	ctx, _ := setupTestContext(t)

	add := &TaskAddCmd{Title: "x", Category: "work", Priority: "urgent"}
	if err := add.Run(ctx); err == nil {
		t.Error("task add accepted an unknown priority")
	}
}

func TestTaskDoneAwardsXPOnClose(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&TaskAddCmd{Title: "Stretch", Category: "health", Priority: "low"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	id := onlyTaskID(t, ctx)

	if err := (&TaskDoneCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("task done failed: %v", err)
	}
	if err := ctx.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `Completed "Stretch" (+5 XP)`) {
		t.Errorf("output = %q", out.String())
	}

	tr, err := ctx.Tracker(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	ws, _ := tr.Snapshot(context.Background())
	if len(ws.Completed) != 1 || ws.Profile.TotalXP != 5 {
		t.Errorf("completed=%d xp=%d after reopen", len(ws.Completed), ws.Profile.TotalXP)
	}
}

func TestTaskDelete(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&TaskAddCmd{Title: "Call plumber", Category: "home", Priority: "medium"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	id := onlyTaskID(t, ctx)

	if err := (&TaskDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("task delete failed: %v", err)
	}
	if err := (&TaskDeleteCmd{ID: id}).Run(ctx); err == nil {
		t.Error("second delete succeeded")
	}
}
