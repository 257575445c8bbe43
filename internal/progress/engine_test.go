package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
)

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{-10, 1},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPForPriority(t *testing.T) {
	tests := []struct {
		priority models.Priority
		want     int
	}{
		{models.PriorityHigh, 15},
		{models.PriorityMedium, 10},
		{models.PriorityLow, 5},
	}
	for _, tt := range tests {
		t.Run(string(tt.priority), func(t *testing.T) {
			if got := XPForPriority(tt.priority); got != tt.want {
				t.Errorf("XPForPriority(%s) = %d, want %d", tt.priority, got, tt.want)
			}
		})
	}
}

func TestCompleteAwardsXPAndCountsTask(t *testing.T) {
	p := models.NewProfile("Ana", testNow)

	res := Complete(p, models.PriorityHigh, nil, Rewards, testNow)

	if res.XPAwarded != 15 {
		t.Errorf("XPAwarded = %d, want 15", res.XPAwarded)
	}
	if res.Profile.TotalXP != 15 {
		t.Errorf("TotalXP = %d, want 15", res.Profile.TotalXP)
	}
	if res.Profile.TotalTasksCompleted != 1 {
		t.Errorf("TotalTasksCompleted = %d, want 1", res.Profile.TotalTasksCompleted)
	}
	if res.LevelUp {
		t.Error("LevelUp = true, want false at 15 XP")
	}
	if len(res.NewRewards) != 0 {
		t.Errorf("NewRewards = %d, want 0", len(res.NewRewards))
	}
	if p.TotalXP != 0 {
		t.Error("Complete mutated its input profile")
	}
}

func TestRewardUnlockOnLevelUp(t *testing.T) {
	p := models.NewProfile("", testNow)
	var unlocked []models.RewardUnlock

	var last Completion
	for i := 0; i < 10; i++ {
		last = Complete(p, models.PriorityMedium, unlocked, Rewards, testNow)
		p = last.Profile
		unlocked = append(unlocked, last.NewRewards...)
		if i < 9 && last.LevelUp {
			t.Fatalf("unexpected level up after %d completions", i+1)
		}
	}

	if !last.LevelUp {
		t.Fatal("expected level up on reaching 100 XP")
	}
	if p.Level != 2 || p.TotalXP != 100 {
		t.Fatalf("profile level=%d xp=%d, want level 2 xp 100", p.Level, p.TotalXP)
	}
	if len(last.NewRewards) != 1 || last.NewRewards[0].RewardID != "star1" {
		t.Fatalf("NewRewards = %+v, want only star1", last.NewRewards)
	}
	if p.TotalRewards != 1 {
		t.Errorf("TotalRewards = %d, want 1", p.TotalRewards)
	}
}

func TestRewardUnlockBatchesTiedLevels(t *testing.T) {
	catalog := []models.Reward{
		{ID: "a", UnlockLevel: 2},
		{ID: "b", UnlockLevel: 2},
		{ID: "c", UnlockLevel: 3},
		{ID: "d", UnlockLevel: 9},
	}
	p := models.Profile{Level: 1, TotalXP: 195}

	res := Complete(p, models.PriorityHigh, []models.RewardUnlock{{RewardID: "b"}}, catalog, testNow)

	if res.LevelAfter != 3 {
		t.Fatalf("LevelAfter = %d, want 3", res.LevelAfter)
	}
	got := map[string]bool{}
	for _, r := range res.NewRewards {
		got[r.RewardID] = true
	}
	if len(got) != 2 || !got["a"] || !got["c"] {
		t.Errorf("NewRewards = %v, want a and c", got)
	}
	if res.Profile.TotalRewards != 3 {
		t.Errorf("TotalRewards = %d, want 3", res.Profile.TotalRewards)
	}
}

func TestUnlockRewardsIdempotent(t *testing.T) {
	first := UnlockRewards(5, nil, Rewards, testNow)
	if len(first) != 3 {
		t.Fatalf("first scan unlocked %d, want 3", len(first))
	}
	second := UnlockRewards(5, first, Rewards, testNow)
	if len(second) != 0 {
		t.Errorf("second scan unlocked %d, want 0", len(second))
	}
}

func TestLevelNeverDecreases(t *testing.T) {
	p := models.Profile{Level: 4, TotalXP: 0}
	res := Complete(p, models.PriorityLow, nil, Rewards, testNow)
	if res.Profile.Level != 4 {
		t.Errorf("Level = %d, want 4", res.Profile.Level)
	}
	if res.LevelUp {
		t.Error("LevelUp = true, want false")
	}
}

func TestTrophyUnlockMonotonic(t *testing.T) {
	var unlocked []models.TrophyUnlock

	for streak := 1; streak <= 7; streak++ {
		unlocked = append(unlocked, UnlockTrophies(streak, unlocked, Trophies, testNow)...)
	}
	if len(unlocked) != 1 || unlocked[0].TrophyID != "week" {
		t.Fatalf("unlocked = %+v, want only week", unlocked)
	}

	// streak drops, then climbs past 7 again
	for _, streak := range []int{2, 3, 4, 5, 6, 7, 8} {
		unlocked = append(unlocked, UnlockTrophies(streak, unlocked, Trophies, testNow)...)
	}
	if len(unlocked) != 1 {
		t.Errorf("week trophy duplicated: %d unlocks", len(unlocked))
	}
}

func TestUnlockTrophiesZeroStreak(t *testing.T) {
	if got := UnlockTrophies(0, nil, Trophies, testNow); len(got) != 0 {
		t.Errorf("UnlockTrophies(0) = %d unlocks, want 0", len(got))
	}
}

func TestFindCatalogEntries(t *testing.T) {
	if r, ok := FindReward("crown1"); !ok || r.UnlockLevel != 10 {
		t.Errorf("FindReward(crown1) = %+v, %v", r, ok)
	}
	if tr, ok := FindTrophy("year"); !ok || tr.DaysRequired != 365 {
		t.Errorf("FindTrophy(year) = %+v, %v", tr, ok)
	}
	if _, ok := FindReward("missing"); ok {
		t.Error("FindReward(missing) found an entry")
	}
}
