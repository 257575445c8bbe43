package tasks

import (
	"context"
	"fmt"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/models"
)

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Category    string `short:"c" help:"Category (home|work|personal|health)." default:"personal"`
	Priority    string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Estimate    int    `short:"e" help:"Estimated time in minutes."`
	Description string `short:"d" help:"Optional description."`
	WeekDay     *int   `short:"w" help:"Day of the week the task belongs to (0=Sunday)."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}

	task, err := tr.AddTask(bg, models.Task{
		Title:        c.Title,
		Description:  c.Description,
		Category:     models.TaskCategory(c.Category),
		Priority:     models.Priority(c.Priority),
		EstimatedMin: c.Estimate,
		WeekDay:      c.WeekDay,
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	ctx.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	return nil
}
