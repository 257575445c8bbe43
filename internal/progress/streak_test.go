package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestRecordUsage(t *testing.T) {
	t.Run("first use starts streak", func(t *testing.T) {
		p, changed := RecordUsage(models.NewProfile("", day(2024, 1, 1)), day(2024, 1, 1))
		if !changed || p.CurrentStreak != 1 || p.DaysUsed != 1 {
			t.Errorf("got streak=%d daysUsed=%d changed=%v", p.CurrentStreak, p.DaysUsed, changed)
		}
	})

	t.Run("same day is a no-op", func(t *testing.T) {
		p, _ := RecordUsage(models.Profile{}, day(2024, 1, 1))
		p2, changed := RecordUsage(p, day(2024, 1, 1).Add(5*time.Hour))
		if changed || p2 != p {
			t.Errorf("repeat visit changed profile: %+v", p2)
		}
	})

	t.Run("consecutive days extend streak", func(t *testing.T) {
		var p models.Profile
		for i := 0; i < 5; i++ {
			p, _ = RecordUsage(p, day(2024, 1, 1).AddDate(0, 0, i))
		}
		if p.CurrentStreak != 5 || p.LongestStreak != 5 || p.RecordDays != 5 {
			t.Errorf("streak=%d longest=%d record=%d, want 5/5/5", p.CurrentStreak, p.LongestStreak, p.RecordDays)
		}
		if p.DaysUsed != 5 {
			t.Errorf("DaysUsed = %d, want 5", p.DaysUsed)
		}
	})

	t.Run("gap resets streak but keeps record", func(t *testing.T) {
		var p models.Profile
		for i := 0; i < 3; i++ {
			p, _ = RecordUsage(p, day(2024, 1, 1).AddDate(0, 0, i))
		}
		p, changed := RecordUsage(p, day(2024, 1, 10))
		if !changed || p.CurrentStreak != 1 {
			t.Errorf("streak = %d changed=%v, want 1 true", p.CurrentStreak, changed)
		}
		if p.LongestStreak != 3 || p.RecordDays != 3 {
			t.Errorf("longest=%d record=%d, want 3/3", p.LongestStreak, p.RecordDays)
		}
	})

	t.Run("month boundary counts as consecutive", func(t *testing.T) {
		p := models.Profile{LastActiveDay: "2024-01-31", CurrentStreak: 4}
		p, _ = RecordUsage(p, day(2024, 2, 1))
		if p.CurrentStreak != 5 {
			t.Errorf("streak = %d, want 5", p.CurrentStreak)
		}
	})

	t.Run("earlier day is ignored", func(t *testing.T) {
		p := models.Profile{LastActiveDay: "2024-01-05", CurrentStreak: 2}
		p2, changed := RecordUsage(p, day(2024, 1, 3))
		if changed || p2.CurrentStreak != 2 {
			t.Errorf("streak = %d changed=%v, want 2 false", p2.CurrentStreak, changed)
		}
	})
}

func TestDaysSinceInstall(t *testing.T) {
	install := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same instant", install, 1},
		{"an hour later", install.Add(time.Hour), 1},
		{"just over a day", install.Add(25 * time.Hour), 2},
		{"exactly three days", install.Add(72 * time.Hour), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSinceInstall(install, tt.now); got != tt.want {
				t.Errorf("DaysSinceInstall() = %d, want %d", got, tt.want)
			}
		})
	}
}
