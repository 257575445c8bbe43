package tasks

import (
	"context"
	"fmt"
	"slices"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/ui"
)

type TaskListCmd struct {
	All     bool `short:"a" help:"Include completed tasks."`
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	ws, err := tr.Snapshot(bg)
	if err != nil {
		return err
	}
	s := ui.New(ws.Theme)

	if len(ws.Pending) == 0 && (!c.All || len(ws.Completed) == 0) {
		ctx.Println("No tasks found")
		return nil
	}

	ctx.Println(s.Title.Render(fmt.Sprintf("Pending (%d)", len(ws.Pending))))
	for _, t := range ws.Pending {
		status := "[ ]"
		if slices.Contains(ws.Completing, t.ID) {
			status = "[~]"
		}
		ctx.Println(c.line(s, status, t))
	}

	if c.All {
		ctx.Println(s.Section.Render(fmt.Sprintf("Completed (%d)", len(ws.Completed))))
		for _, t := range ws.Completed {
			ctx.Println(c.line(s, "[x]", t))
		}
	}
	return nil
}

func (c *TaskListCmd) line(s ui.Styles, status string, t models.Task) string {
	idStr := ""
	if c.ShowIDs {
		idStr = s.Muted.Render(fmt.Sprintf(" (ID: %s)", t.ID))
	}
	est := ""
	if t.EstimatedMin > 0 {
		est = fmt.Sprintf(" - %dm", t.EstimatedMin)
	}
	return fmt.Sprintf("  %s %s%s%s (%s, %s)", status, t.Title, idStr, est, t.Category, s.Priority(t.Priority))
}
