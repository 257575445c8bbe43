package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/models"
)

type ProfileEditCmd struct {
	Name   *string `help:"Display name."`
	Avatar *string `help:"Avatar id (dino, dog, cat, fox, ...)."`
}

type profileForm struct {
	Name   string
	Avatar string
}

func newProfileForm(fm *profileForm) *huh.Form {
	options := make([]huh.Option[string], 0, len(models.Avatars))
	for _, a := range models.Avatars {
		options = append(options, huh.NewOption(a.Emoji+"  "+a.Name, a.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Avatar").
				Options(options...).
				Value(&fm.Avatar),
		),
	).WithTheme(huh.ThemeDracula())
}

// Run applies the flags given, or opens an interactive form when there are none.
func (c *ProfileEditCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	ws, err := tr.Snapshot(bg)
	if err != nil {
		return err
	}

	fm := profileForm{Name: ws.Profile.Name, Avatar: ws.Profile.Avatar}
	if c.Name == nil && c.Avatar == nil {
		if err := newProfileForm(&fm).Run(); err != nil {
			return fmt.Errorf("profile edit cancelled: %w", err)
		}
	}
	if c.Name != nil {
		fm.Name = *c.Name
	}
	if c.Avatar != nil {
		fm.Avatar = *c.Avatar
	}

	if fm.Name != ws.Profile.Name {
		if err := tr.SetName(bg, fm.Name); err != nil {
			return err
		}
	}
	if fm.Avatar != ws.Profile.Avatar {
		if err := tr.SetAvatar(bg, fm.Avatar); err != nil {
			return err
		}
	}

	avatar, _ := models.FindAvatar(fm.Avatar)
	ctx.Printf("Profile updated: %s %s\n", avatar.Emoji, strings.TrimSpace(fm.Name))
	return nil
}
