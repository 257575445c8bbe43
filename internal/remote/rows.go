package remote

import (
	"fmt"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
)

// Row types mirror the postgres columns one to one. Conversion to and from
// the models happens only here.

type profileRow struct {
	UserID              string    `db:"user_id"`
	Name                string    `db:"name"`
	Avatar              string    `db:"avatar"`
	JoinDate            time.Time `db:"join_date"`
	TotalTasksCompleted int       `db:"total_tasks_completed"`
	DaysUsed            int       `db:"days_used"`
	CurrentLevel        int       `db:"current_level"`
	TotalXP             int       `db:"total_xp"`
	CurrentStreak       int       `db:"current_streak"`
	LongestStreak       int       `db:"longest_streak"`
	TotalRewards        int       `db:"total_rewards"`
	RecordDays          int       `db:"record_days"`
	LastActiveDay       string    `db:"last_active_day"`
}

func profileRowFrom(userID string, p models.Profile) profileRow {
	return profileRow{
		UserID:              userID,
		Name:                p.Name,
		Avatar:              p.Avatar,
		JoinDate:            p.JoinDate,
		TotalTasksCompleted: p.TotalTasksCompleted,
		DaysUsed:            p.DaysUsed,
		CurrentLevel:        p.Level,
		TotalXP:             p.TotalXP,
		CurrentStreak:       p.CurrentStreak,
		LongestStreak:       p.LongestStreak,
		TotalRewards:        p.TotalRewards,
		RecordDays:          p.RecordDays,
		LastActiveDay:       p.LastActiveDay,
	}
}

func (r profileRow) toModel() models.Profile {
	return models.Profile{
		Name:                r.Name,
		Avatar:              r.Avatar,
		JoinDate:            local(r.JoinDate),
		TotalTasksCompleted: r.TotalTasksCompleted,
		DaysUsed:            r.DaysUsed,
		Level:               r.CurrentLevel,
		TotalXP:             r.TotalXP,
		CurrentStreak:       r.CurrentStreak,
		LongestStreak:       r.LongestStreak,
		TotalRewards:        r.TotalRewards,
		RecordDays:          r.RecordDays,
		LastActiveDay:       r.LastActiveDay,
	}
}

type taskRow struct {
	UserID       string     `db:"user_id"`
	ClientID     string     `db:"client_id"`
	Title        string     `db:"title"`
	Description  string     `db:"description"`
	Completed    bool       `db:"completed"`
	Category     string     `db:"category"`
	Priority     string     `db:"priority"`
	EstimatedMin int        `db:"estimated_minutes"`
	ActualMin    *int       `db:"actual_minutes"`
	CreatedAt    time.Time  `db:"created_at"`
	CompletedAt  *time.Time `db:"completed_at"`
	XPAwarded    bool       `db:"xp_awarded"`
	WeekDay      *int       `db:"week_day"`
}

func taskRowFrom(userID string, t models.Task) taskRow {
	return taskRow{
		UserID:       userID,
		ClientID:     t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Completed:    t.Completed,
		Category:     string(t.Category),
		Priority:     string(t.Priority),
		EstimatedMin: t.EstimatedMin,
		ActualMin:    t.ActualMin,
		CreatedAt:    t.CreatedAt,
		CompletedAt:  t.CompletedAt,
		XPAwarded:    t.XPAwarded,
		WeekDay:      t.WeekDay,
	}
}

func (r taskRow) toModel() models.Task {
	t := models.Task{
		ID:           r.ClientID,
		Title:        r.Title,
		Description:  r.Description,
		Completed:    r.Completed,
		Category:     models.TaskCategory(r.Category),
		Priority:     models.Priority(r.Priority),
		EstimatedMin: r.EstimatedMin,
		ActualMin:    r.ActualMin,
		CreatedAt:    local(r.CreatedAt),
		XPAwarded:    r.XPAwarded,
		WeekDay:      r.WeekDay,
	}
	if r.CompletedAt != nil {
		at := local(*r.CompletedAt)
		t.CompletedAt = &at
	}
	return t
}

type expenseRow struct {
	UserID   string    `db:"user_id"`
	ClientID string    `db:"client_id"`
	Title    string    `db:"title"`
	Amount   float64   `db:"amount"`
	Category string    `db:"category"`
	Date     time.Time `db:"date"`
	Month    string    `db:"month"`
}

func expenseRowFrom(userID string, e models.Expense) expenseRow {
	e.Normalize()
	return expenseRow{
		UserID:   userID,
		ClientID: e.ID,
		Title:    e.Title,
		Amount:   e.Amount,
		Category: string(e.Category),
		Date:     e.Date,
		Month:    e.Month,
	}
}

func (r expenseRow) toModel() models.Expense {
	return models.Expense{
		ID:       r.ClientID,
		Title:    r.Title,
		Amount:   r.Amount,
		Category: models.ExpenseCategory(r.Category),
		Date:     local(r.Date),
		Month:    r.Month,
	}
}

type appointmentRow struct {
	UserID      string    `db:"user_id"`
	ClientID    string    `db:"client_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Date        time.Time `db:"date"`
	DurationMin int       `db:"duration_minutes"`
	Category    string    `db:"category"`
}

func appointmentRowFrom(userID string, a models.Appointment) appointmentRow {
	return appointmentRow{
		UserID:      userID,
		ClientID:    a.ID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date,
		DurationMin: a.DurationMin,
		Category:    string(a.Category),
	}
}

func (r appointmentRow) toModel() models.Appointment {
	return models.Appointment{
		ID:          r.ClientID,
		Title:       r.Title,
		Description: r.Description,
		Date:        local(r.Date),
		DurationMin: r.DurationMin,
		Category:    models.AppointmentCategory(r.Category),
	}
}

type rewardRow struct {
	UserID      string    `db:"user_id"`
	ClientID    string    `db:"client_id"`
	RewardID    string    `db:"reward_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Type        string    `db:"type"`
	UnlockLevel int       `db:"unlock_level"`
	Icon        string    `db:"icon"`
	UnlockedAt  time.Time `db:"unlocked_at"`
}

func rewardRowFrom(userID string, r models.RewardUnlock) rewardRow {
	return rewardRow{
		UserID:      userID,
		ClientID:    r.ID,
		RewardID:    r.RewardID,
		Name:        r.Name,
		Description: r.Description,
		Type:        string(r.Type),
		UnlockLevel: r.UnlockLevel,
		Icon:        r.Icon,
		UnlockedAt:  r.UnlockedAt,
	}
}

func (r rewardRow) toModel() models.RewardUnlock {
	return models.RewardUnlock{
		ID:          r.ClientID,
		RewardID:    r.RewardID,
		Name:        r.Name,
		Description: r.Description,
		Type:        models.RewardType(r.Type),
		UnlockLevel: r.UnlockLevel,
		Icon:        r.Icon,
		UnlockedAt:  local(r.UnlockedAt),
	}
}

type trophyRow struct {
	UserID       string    `db:"user_id"`
	ClientID     string    `db:"client_id"`
	TrophyID     string    `db:"trophy_id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Icon         string    `db:"icon"`
	DaysRequired int       `db:"days_required"`
	UnlockedAt   time.Time `db:"unlocked_at"`
}

func trophyRowFrom(userID string, t models.TrophyUnlock) trophyRow {
	return trophyRow{
		UserID:       userID,
		ClientID:     t.ID,
		TrophyID:     t.TrophyID,
		Name:         t.Name,
		Description:  t.Description,
		Icon:         t.Icon,
		DaysRequired: t.DaysRequired,
		UnlockedAt:   t.UnlockedAt,
	}
}

func (r trophyRow) toModel() models.TrophyUnlock {
	return models.TrophyUnlock{
		ID:           r.ClientID,
		TrophyID:     r.TrophyID,
		Name:         r.Name,
		Description:  r.Description,
		Icon:         r.Icon,
		DaysRequired: r.DaysRequired,
		UnlockedAt:   local(r.UnlockedAt),
	}
}

// rowFrom picks the row type for rec.
func rowFrom(userID string, rec models.Record) (any, error) {
	switch v := rec.(type) {
	case models.Task:
		return taskRowFrom(userID, v), nil
	case models.Expense:
		return expenseRowFrom(userID, v), nil
	case models.Appointment:
		return appointmentRowFrom(userID, v), nil
	case models.RewardUnlock:
		return rewardRowFrom(userID, v), nil
	case models.TrophyUnlock:
		return trophyRowFrom(userID, v), nil
	default:
		return nil, fmt.Errorf("unsupported record type %T", rec)
	}
}

// Timestamps come back from postgres in UTC. Calendar-day dedup keys are
// computed in local time, so convert back.
func local(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(time.Local)
}
