package progress

import (
	"math"
	"time"

	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
)

// RecordUsage registers that the user opened the app on today's calendar day.
// Consecutive days extend the streak, a gap restarts it at 1, and repeat visits
// on the same day change nothing. The boolean reports whether the streak changed.
func RecordUsage(p models.Profile, today time.Time) (models.Profile, bool) {
	day := models.CalendarDay(today)
	before := p.CurrentStreak

	switch {
	case p.LastActiveDay == day:
		return p, false
	case p.LastActiveDay == "":
		p.CurrentStreak = 1
		p.DaysUsed = max(p.DaysUsed, 1)
	default:
		last, err := time.ParseInLocation(constants.DateFormat, p.LastActiveDay, today.Location())
		if err != nil {
			p.CurrentStreak = 1
			p.DaysUsed++
			break
		}
		if models.CalendarDay(last) > day {
			// clock moved backwards; keep the later day
			return p, false
		}
		if models.CalendarDay(last.AddDate(0, 0, 1)) == day {
			p.CurrentStreak = max(p.CurrentStreak, 0) + 1
		} else {
			p.CurrentStreak = 1
		}
		p.DaysUsed++
	}

	p.LastActiveDay = day
	p.LongestStreak = max(p.LongestStreak, p.CurrentStreak)
	p.RecordDays = max(p.RecordDays, p.LongestStreak)
	return p, p.CurrentStreak != before
}

// DaysSinceInstall counts the days since the first use, rounding up and never below 1.
func DaysSinceInstall(install, now time.Time) int {
	diff := now.Sub(install)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	return max(days, 1)
}
