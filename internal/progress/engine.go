package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dayquest/internal/models"
)

// Completion is the outcome of applying one task completion to a profile.
type Completion struct {
	Profile     models.Profile
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	NewRewards  []models.RewardUnlock
}

// Complete applies a task completion. It never mutates its inputs.
//
// XP and level never decrease: a stored level higher than the XP implies is kept.
// Rewards are scanned only when the level increased, and every qualifying entry
// unlocks in the same batch.
func Complete(p models.Profile, priority models.Priority, unlocked []models.RewardUnlock, catalog []models.Reward, now time.Time) Completion {
	levelBefore := max(p.Level, LevelForXP(p.TotalXP))
	gain := XPForPriority(priority)

	p.TotalXP = max(p.TotalXP, 0) + gain
	p.Level = max(LevelForXP(p.TotalXP), levelBefore)
	p.TotalTasksCompleted++

	res := Completion{
		XPAwarded:   gain,
		LevelBefore: levelBefore,
		LevelAfter:  p.Level,
		LevelUp:     p.Level > levelBefore,
	}
	if res.LevelUp {
		res.NewRewards = UnlockRewards(p.Level, unlocked, catalog, now)
	}
	p.TotalRewards = len(unlocked) + len(res.NewRewards)
	res.Profile = p
	return res
}

// UnlockRewards returns every catalog reward with a required level at or below
// level that is not already unlocked. Running it again with the result appended
// to unlocked returns nothing.
func UnlockRewards(level int, unlocked []models.RewardUnlock, catalog []models.Reward, now time.Time) []models.RewardUnlock {
	have := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		have[u.RewardID] = true
	}

	var out []models.RewardUnlock
	for _, r := range catalog {
		if r.UnlockLevel > level || have[r.ID] {
			continue
		}
		have[r.ID] = true
		out = append(out, models.RewardUnlock{
			ID:          uuid.NewString(),
			RewardID:    r.ID,
			Name:        r.Name,
			Description: r.Description,
			Type:        r.Type,
			UnlockLevel: r.UnlockLevel,
			Icon:        r.Icon,
			UnlockedAt:  now,
		})
	}
	return out
}

// UnlockTrophies returns every catalog trophy whose required day count is at or
// below streak and that is not already unlocked. Trophies are never re-locked,
// so a later drop in streak has no effect on earlier unlocks.
func UnlockTrophies(streak int, unlocked []models.TrophyUnlock, catalog []models.Trophy, now time.Time) []models.TrophyUnlock {
	if streak <= 0 {
		return nil
	}
	have := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		have[u.TrophyID] = true
	}

	var out []models.TrophyUnlock
	for _, t := range catalog {
		if t.DaysRequired > streak || have[t.ID] {
			continue
		}
		have[t.ID] = true
		out = append(out, models.TrophyUnlock{
			ID:           uuid.NewString(),
			TrophyID:     t.ID,
			Name:         t.Name,
			Description:  t.Description,
			Icon:         t.Icon,
			DaysRequired: t.DaysRequired,
			UnlockedAt:   now,
		})
	}
	return out
}
