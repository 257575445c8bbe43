package tasks

import (
	"context"
	"fmt"

	"github.com/julianstephens/dayquest/internal/cli"
)

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to complete."`
}

// Run starts the completion. XP lands when the completion delay expires,
// which Close waits for before the process exits.
func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	if err := tr.CompleteTask(bg, c.ID); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return nil
}
