package tracker

import (
	"slices"
	"time"

	"github.com/julianstephens/dayquest/internal/cache"
	"github.com/julianstephens/dayquest/internal/models"
)

// WorkingSet is the in-memory state the app renders from. A task id lives in
// exactly one of Pending or Completed.
type WorkingSet struct {
	Pending      []models.Task
	Completed    []models.Task
	Expenses     []models.Expense
	Appointments []models.Appointment
	Rewards      []models.RewardUnlock
	Trophies     []models.TrophyUnlock
	Profile      models.Profile
	Theme        string
	InstallDate  time.Time

	// Completing holds the ids of pending tasks waiting on their completion timer.
	Completing []string
	// UserID is empty while signed out.
	UserID string
}

func (w WorkingSet) clone() WorkingSet {
	w.Pending = slices.Clone(w.Pending)
	w.Completed = slices.Clone(w.Completed)
	w.Expenses = slices.Clone(w.Expenses)
	w.Appointments = slices.Clone(w.Appointments)
	w.Rewards = slices.Clone(w.Rewards)
	w.Trophies = slices.Clone(w.Trophies)
	w.Completing = slices.Clone(w.Completing)
	return w
}

// snapshot combines pending and completed tasks the way the cache and the
// remote store keep them.
func (w WorkingSet) snapshot() models.Snapshot {
	p := w.Profile
	tasks := make([]models.Task, 0, len(w.Pending)+len(w.Completed))
	tasks = append(tasks, w.Pending...)
	tasks = append(tasks, w.Completed...)
	return models.Snapshot{
		Profile:      &p,
		Tasks:        tasks,
		Expenses:     slices.Clone(w.Expenses),
		Appointments: slices.Clone(w.Appointments),
		Rewards:      slices.Clone(w.Rewards),
		Trophies:     slices.Clone(w.Trophies),
	}
}

func (w WorkingSet) state() cache.State {
	return cache.State{Snapshot: w.snapshot(), Theme: w.Theme, InstallDate: w.InstallDate}
}

// replace swaps in the collections of snap, splitting tasks by their completed
// flag. A snapshot without a profile keeps the current one.
func (w *WorkingSet) replace(snap models.Snapshot) {
	w.Pending, w.Completed = splitTasks(snap.Tasks)
	w.Expenses = slices.Clone(snap.Expenses)
	w.Appointments = slices.Clone(snap.Appointments)
	w.Rewards = slices.Clone(snap.Rewards)
	w.Trophies = slices.Clone(snap.Trophies)
	if snap.Profile != nil {
		w.Profile = *snap.Profile
	}
}

func splitTasks(tasks []models.Task) (pending, completed []models.Task) {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

func indexByID[T models.Record](recs []T, id string) int {
	return slices.IndexFunc(recs, func(r T) bool { return r.RecordID() == id })
}
