package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/progress"
	"github.com/julianstephens/dayquest/internal/ui"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
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
	p := ws.Profile

	avatar, _ := models.FindAvatar(p.Avatar)
	ctx.Println(s.Title.Render(fmt.Sprintf("%s %s", avatar.Emoji, p.Name)))

	toNext := progress.XPToNextLevel(p.TotalXP)
	into := constants.XPPerLevel - toNext
	ctx.Println(s.Row("Level", p.Level))
	ctx.Println(s.Row("XP", fmt.Sprintf("%d  %s  %d to next", p.TotalXP, ui.Bar(into, constants.XPPerLevel, 20), toNext)))
	ctx.Println(s.Row("Streak", fmt.Sprintf("%d days (best %d)", p.CurrentStreak, p.LongestStreak)))
	ctx.Println(s.Row("Days using", progress.DaysSinceInstall(ws.InstallDate, time.Now())))
	ctx.Println(s.Row("Tasks done", p.TotalTasksCompleted))
	ctx.Println(s.Row("Rewards", fmt.Sprintf("%d/%d", len(ws.Rewards), len(progress.Rewards))))
	ctx.Println(s.Row("Trophies", fmt.Sprintf("%d/%d", len(ws.Trophies), len(progress.Trophies))))

	ctx.Println(s.Section.Render("Today"))
	ctx.Println(s.Row("Pending tasks", len(ws.Pending)))
	ctx.Println(s.Row("Completed tasks", len(ws.Completed)))
	ctx.Println(s.Row("Expenses", len(ws.Expenses)))
	ctx.Println(s.Row("Appointments", len(ws.Appointments)))

	ctx.Println(s.Section.Render("Sync"))
	if ws.UserID == "" {
		ctx.Println(s.Row("Session", s.Muted.Render("signed out, local only")))
	} else {
		ctx.Println(s.Row("Session", ws.UserID))
	}
	return nil
}
