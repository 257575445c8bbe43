package models

import (
	"time"

	"github.com/julianstephens/dayquest/internal/constants"
)

// Profile is the per-user singleton mutated by every progression event.
type Profile struct {
	Name                string    `json:"name"`
	Avatar              string    `json:"avatar"`
	JoinDate            time.Time `json:"join_date"`
	TotalTasksCompleted int       `json:"total_tasks_completed"`
	DaysUsed            int       `json:"days_used"`
	Level               int       `json:"current_level"`
	TotalXP             int       `json:"total_xp"`
	CurrentStreak       int       `json:"current_streak"`
	LongestStreak       int       `json:"longest_streak"`
	TotalRewards        int       `json:"total_rewards"`
	RecordDays          int       `json:"record_days"`
	LastActiveDay       string    `json:"last_active_day,omitempty"` // YYYY-MM-DD
}

// NewProfile returns the profile a first-time user starts with.
func NewProfile(name string, now time.Time) Profile {
	if name == "" {
		name = constants.DefaultUserName
	}
	return Profile{
		Name:       name,
		Avatar:     constants.DefaultAvatar,
		JoinDate:   now,
		DaysUsed:   1,
		Level:      constants.MinLevel,
		RecordDays: 1,
	}
}
