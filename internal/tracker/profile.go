package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/progress"
	"github.com/julianstephens/dayquest/internal/writeback"
)

// RecordUsage registers a visit on today's calendar day. When the streak
// changes the trophy catalog is scanned. It reports whether the profile changed.
func (t *Tracker) RecordUsage(ctx context.Context, today time.Time) (bool, error) {
	var changed bool
	err := t.do(ctx, func() error {
		updated, streakChanged := progress.RecordUsage(t.ws.Profile, today)
		if updated == t.ws.Profile {
			return nil
		}

		var trophies []models.TrophyUnlock
		if streakChanged {
			trophies = progress.UnlockTrophies(updated.CurrentStreak, t.ws.Trophies, progress.Trophies, t.now())
		}

		err := t.apply(func() []writeback.Op {
			t.ws.Profile = updated
			t.ws.Trophies = append(t.ws.Trophies, trophies...)
			ops := []writeback.Op{writeback.SaveProfile(t.ws.UserID, updated)}
			for _, tr := range trophies {
				ops = append(ops, writeback.Create(t.ws.UserID, tr))
			}
			return ops
		})
		if err != nil {
			return err
		}

		changed = true
		if len(trophies) > 0 {
			t.log.Info("trophies unlocked", "count", len(trophies), "streak", updated.CurrentStreak)
			t.emit(Event{Kind: EventTrophiesUnlocked, Trophies: trophies})
		}
		return nil
	})
	return changed, err
}

// SetTheme stores the theme locally. Themes are per device and never mirrored.
func (t *Tracker) SetTheme(ctx context.Context, id string) error {
	if _, ok := models.FindTheme(id); !ok {
		return fmt.Errorf("%w: unknown theme %q", models.ErrValidation, id)
	}
	return t.do(ctx, func() error {
		return t.apply(func() []writeback.Op {
			t.ws.Theme = id
			return nil
		})
	})
}

func (t *Tracker) SetAvatar(ctx context.Context, id string) error {
	if _, ok := models.FindAvatar(id); !ok {
		return fmt.Errorf("%w: unknown avatar %q", models.ErrValidation, id)
	}
	return t.updateProfile(ctx, func(p *models.Profile) { p.Avatar = id })
}

func (t *Tracker) SetName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", models.ErrValidation)
	}
	return t.updateProfile(ctx, func(p *models.Profile) { p.Name = name })
}

func (t *Tracker) updateProfile(ctx context.Context, edit func(p *models.Profile)) error {
	return t.do(ctx, func() error {
		return t.apply(func() []writeback.Op {
			edit(&t.ws.Profile)
			return []writeback.Op{writeback.SaveProfile(t.ws.UserID, t.ws.Profile)}
		})
	})
}
