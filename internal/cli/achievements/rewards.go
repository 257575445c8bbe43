package achievements

import (
	"context"
	"fmt"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/progress"
	"github.com/julianstephens/dayquest/internal/ui"
)

type RewardsCmd struct{}

func (c *RewardsCmd) Run(ctx *cli.Context) error {
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

	unlocked := make(map[string]bool, len(ws.Rewards))
	for _, r := range ws.Rewards {
		unlocked[r.RewardID] = true
	}

	ctx.Println(s.Title.Render(fmt.Sprintf("Rewards (%d/%d)", len(unlocked), len(progress.Rewards))))
	for _, r := range progress.Rewards {
		if unlocked[r.ID] {
			ctx.Printf("  %s %s  %s\n", r.Icon, s.Value.Render(r.Name), r.Description)
			continue
		}
		ctx.Println(s.Muted.Render(fmt.Sprintf("  🔒 %s  unlocks at level %d", r.Name, r.UnlockLevel)))
	}
	return nil
}

type TrophiesCmd struct{}

func (c *TrophiesCmd) Run(ctx *cli.Context) error {
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

	unlocked := make(map[string]bool, len(ws.Trophies))
	for _, t := range ws.Trophies {
		unlocked[t.TrophyID] = true
	}

	ctx.Println(s.Title.Render(fmt.Sprintf("Trophies (%d/%d)", len(unlocked), len(progress.Trophies))))
	for _, t := range progress.Trophies {
		if unlocked[t.ID] {
			ctx.Printf("  %s %s  %s\n", t.Icon, s.Value.Render(t.Name), t.Description)
			continue
		}
		streak := min(ws.Profile.CurrentStreak, t.DaysRequired)
		ctx.Printf("  🔒 %-14s %s %d/%d days\n", t.Name, ui.Bar(streak, t.DaysRequired, 20), streak, t.DaysRequired)
	}
	return nil
}
