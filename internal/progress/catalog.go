package progress

import "github.com/julianstephens/dayquest/internal/models"

// Rewards is the level-unlock catalog, ordered by required level.
var Rewards = []models.Reward{
	{ID: "star1", Name: "First Star", Description: "Your first achievement!", Type: models.RewardBadge, UnlockLevel: 2, Icon: "⭐"},
	{ID: "fire1", Name: "On Fire", Description: "You're on fire!", Type: models.RewardSticker, UnlockLevel: 3, Icon: "🔥"},
	{ID: "trophy1", Name: "Champion", Description: "A true champion!", Type: models.RewardBadge, UnlockLevel: 5, Icon: "🏆"},
	{ID: "rocket1", Name: "Rocket", Description: "Taking off toward success!", Type: models.RewardSticker, UnlockLevel: 7, Icon: "🚀"},
	{ID: "crown1", Name: "Royal Crown", Description: "Royalty of productivity!", Type: models.RewardCosmetic, UnlockLevel: 10, Icon: "👑"},
	{ID: "diamond1", Name: "Diamond", Description: "Rare as a diamond!", Type: models.RewardBadge, UnlockLevel: 15, Icon: "💎"},
	{ID: "unicorn1", Name: "Unicorn", Description: "Magical and unique!", Type: models.RewardCosmetic, UnlockLevel: 20, Icon: "🦄"},
}

// Trophies is the streak catalog, ordered by required consecutive days.
var Trophies = []models.Trophy{
	{ID: "week", Name: "7 Days in a Row", Description: "A week of dedication!", Icon: "🏆", DaysRequired: 7},
	{ID: "month", Name: "30 Days in a Row", Description: "A whole month of consistency!", Icon: "🥇", DaysRequired: 30},
	{ID: "quarter", Name: "90 Days in a Row", Description: "Three months of excellence!", Icon: "💎", DaysRequired: 90},
	{ID: "halfyear", Name: "6 Months in a Row", Description: "Half a year of dedication!", Icon: "👑", DaysRequired: 180},
	{ID: "year", Name: "1 Year in a Row", Description: "A full year of achievements!", Icon: "🌟", DaysRequired: 365},
}

func FindReward(id string) (models.Reward, bool) {
	for _, r := range Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reward{}, false
}

func FindTrophy(id string) (models.Trophy, bool) {
	for _, t := range Trophies {
		if t.ID == id {
			return t, true
		}
	}
	return models.Trophy{}, false
}
