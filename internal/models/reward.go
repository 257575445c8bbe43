package models

import "time"

type RewardType string

const (
	RewardSticker  RewardType = "sticker"
	RewardCosmetic RewardType = "cosmetic"
	RewardBadge    RewardType = "badge"
)

// Reward is a static catalog entry unlocked by reaching a level.
type Reward struct {
	ID          string
	Name        string
	Description string
	Type        RewardType
	UnlockLevel int
	Icon        string
}

// RewardUnlock records that a user unlocked a catalog reward. At most one exists per (user, reward).
type RewardUnlock struct {
	ID          string     `json:"id"`
	RewardID    string     `json:"reward_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        RewardType `json:"type"`
	UnlockLevel int        `json:"unlock_level"`
	Icon        string     `json:"icon"`
	UnlockedAt  time.Time  `json:"unlocked_at"`
}

func (r RewardUnlock) Kind() EntityKind { return KindReward }
func (r RewardUnlock) RecordID() string { return r.ID }
func (r RewardUnlock) DedupKey() string { return r.RewardID }

// Trophy is a static catalog entry unlocked by a consecutive-day streak.
type Trophy struct {
	ID           string
	Name         string
	Description  string
	Icon         string
	DaysRequired int
}

// TrophyUnlock records that a user unlocked a streak trophy. Never revoked.
type TrophyUnlock struct {
	ID           string    `json:"id"`
	TrophyID     string    `json:"trophy_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	DaysRequired int       `json:"days_required"`
	UnlockedAt   time.Time `json:"unlocked_at"`
}

func (t TrophyUnlock) Kind() EntityKind { return KindTrophy }
func (t TrophyUnlock) RecordID() string { return t.ID }
func (t TrophyUnlock) DedupKey() string { return t.TrophyID }
