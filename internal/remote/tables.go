package remote

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dayquest/internal/models"
)

type table struct {
	name    string
	columns []string // excluding user_id and client_id
}

var tables = map[models.EntityKind]table{
	models.KindTask: {"tasks", []string{
		"title", "description", "completed", "category", "priority", "estimated_minutes",
		"actual_minutes", "created_at", "completed_at", "xp_awarded", "week_day",
	}},
	models.KindExpense: {"expenses", []string{
		"title", "amount", "category", "date", "month",
	}},
	models.KindAppointment: {"appointments", []string{
		"title", "description", "date", "duration_minutes", "category",
	}},
	models.KindReward: {"user_rewards", []string{
		"reward_id", "name", "description", "type", "unlock_level", "icon", "unlocked_at",
	}},
	models.KindTrophy: {"trophies", []string{
		"trophy_id", "name", "description", "icon", "days_required", "unlocked_at",
	}},
}

func tableFor(kind models.EntityKind) (table, error) {
	t, ok := tables[kind]
	if !ok {
		return table{}, fmt.Errorf("unknown entity kind %q", kind)
	}
	return t, nil
}

func (t table) allColumns() []string {
	return append([]string{"user_id", "client_id"}, t.columns...)
}

func (t table) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE user_id = $1 ORDER BY id",
		strings.Join(t.allColumns(), ", "), t.name)
}

func (t table) insertSQL() string {
	cols := t.allColumns()
	named := make([]string, len(cols))
	for i, c := range cols {
		named[i] = ":" + c
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT DO NOTHING",
		t.name, strings.Join(cols, ", "), strings.Join(named, ", "))
}

func (t table) updateSQL() string {
	sets := make([]string, len(t.columns))
	for i, c := range t.columns {
		sets[i] = c + " = :" + c
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE user_id = :user_id AND client_id = :client_id",
		t.name, strings.Join(sets, ", "))
}
