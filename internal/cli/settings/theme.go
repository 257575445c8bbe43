package settings

import (
	"context"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/ui"
)

type ThemeSetCmd struct {
	ID string `arg:"" help:"Theme id."`
}

func (c *ThemeSetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	if err := tr.SetTheme(bg, c.ID); err != nil {
		return err
	}
	theme, _ := models.FindTheme(c.ID)
	ctx.Println(ui.New(c.ID).Badge.Render("Theme set to " + theme.Name))
	return nil
}

type ThemeListCmd struct{}

func (c *ThemeListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	ws, err := tr.Snapshot(bg)
	if err != nil {
		return err
	}

	for _, t := range models.Themes {
		marker := "  "
		if t.ID == ws.Theme {
			marker = "* "
		}
		ctx.Println(marker + ui.New(t.ID).Value.Render(t.ID) + "  " + t.Name)
	}
	return nil
}
