package system

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dayquest/internal/cache"
	"github.com/julianstephens/dayquest/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing local cache before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path, err := ctx.CachePath()
	if err != nil {
		return err
	}

	if c.Force {
		// release our own handle before removing the file
		if err := ctx.Close(); err != nil {
			return fmt.Errorf("failed to close existing cache: %w", err)
		}
		if err := os.Remove(path); err == nil {
			ctx.Printf("Deleted existing cache at: %s\n", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to delete existing cache: %w", err)
		}
	}

	local := cache.NewSQLite(path)
	if err := local.Init(); err != nil {
		return err
	}
	if err := local.Close(); err != nil {
		return err
	}
	ctx.Printf("Initialized dayquest cache at: %s\n", path)

	bg := context.Background()
	if _, err := ctx.Tracker(bg); err != nil {
		return err
	}

	store, err := ctx.Remote(bg)
	switch {
	case err != nil:
		ctx.Printf("⚠️  Remote store not initialized: %v\n", err)
	case store != nil:
		ctx.Println("✓ Remote store schema is up to date")
	}
	return nil
}
