package tracker

import (
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/reconcile"
)

type EventKind int

const (
	EventTaskCompleted EventKind = iota
	EventLevelUp
	EventRewardsUnlocked
	EventTrophiesUnlocked
	EventReconciled
)

func (k EventKind) String() string {
	switch k {
	case EventTaskCompleted:
		return "task_completed"
	case EventLevelUp:
		return "level_up"
	case EventRewardsUnlocked:
		return "rewards_unlocked"
	case EventTrophiesUnlocked:
		return "trophies_unlocked"
	case EventReconciled:
		return "reconciled"
	default:
		return "unknown"
	}
}

// Event carries only the fields relevant to its Kind.
type Event struct {
	Kind     EventKind
	Task     models.Task
	XP       int
	Level    int
	Rewards  []models.RewardUnlock
	Trophies []models.TrophyUnlock
	Sync     reconcile.Result
}
