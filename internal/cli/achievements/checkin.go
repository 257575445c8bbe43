package achievements

import (
	"context"
	"time"

	"github.com/julianstephens/dayquest/internal/cli"
)

// CheckinCmd records today's visit. Streaks and trophies advance once per
// calendar day.
type CheckinCmd struct{}

func (c *CheckinCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	changed, err := tr.RecordUsage(bg, time.Now().In(ctx.Location()))
	if err != nil {
		return err
	}
	ws, err := tr.Snapshot(bg)
	if err != nil {
		return err
	}

	if !changed {
		ctx.Printf("Already checked in today. Streak: %d days\n", ws.Profile.CurrentStreak)
		return nil
	}
	ctx.Printf("Checked in! Streak: %d days (best %d)\n", ws.Profile.CurrentStreak, ws.Profile.LongestStreak)
	return nil
}
