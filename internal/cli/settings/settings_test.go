package settings

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/dayquest/internal/cache"
	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/config"
	"github.com/julianstephens/dayquest/internal/models"
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
	t.Cleanup(func() {
		if err := ctx.Close(); err != nil {
			t.Errorf("failed to close context: %v", err)
		}
	})
	return ctx, out
}

func ptr[T any](v T) *T { return &v }

func TestProfileEditCmd_Flags(t *testing.T) {
	ctx, out := setupTestContext(t)

	cmd := &ProfileEditCmd{Name: ptr("Ana"), Avatar: ptr("fox")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("profile edit failed: %v", err)
	}

	tr, err := ctx.Tracker(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	ws, err := tr.Snapshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ws.Profile.Name != "Ana" || ws.Profile.Avatar != "fox" {
		t.Errorf("profile = %+v", ws.Profile)
	}
	if !strings.Contains(out.String(), "Ana") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestProfileEditCmd_InvalidAvatar(t *testing.T) {
	ctx, _ := setupTestContext(t)

	err := (&ProfileEditCmd{Avatar: ptr("dragon")}).Run(ctx)
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestNewProfileForm(t *testing.T) {
	fm := &profileForm{Name: "Ana", Avatar: "cat"}
	if newProfileForm(fm) == nil {
		t.Fatal("newProfileForm() returned nil")
	}
}

func TestThemeCmds(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ThemeSetCmd{ID: "ocean"}).Run(ctx); err != nil {
		t.Fatalf("theme set failed: %v", err)
	}
	if err := (&ThemeSetCmd{ID: "plaid"}).Run(ctx); !errors.Is(err, models.ErrValidation) {
		t.Errorf("unknown theme error = %v, want ErrValidation", err)
	}

	out.Reset()
	if err := (&ThemeListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "* ocean") {
		t.Errorf("theme list did not mark ocean:\n%s", out.String())
	}
}
