package tracker

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/progress"
	"github.com/julianstephens/dayquest/internal/writeback"
)

// apply runs change against the working set and persists the result. When
// the cache write fails the working set is rolled back and nothing is mirrored.
func (t *Tracker) apply(change func() []writeback.Op) error {
	prev := t.ws.clone()
	ops := change()
	if err := t.persist(); err != nil {
		t.ws = prev
		return err
	}
	for _, op := range ops {
		t.mirror(op)
	}
	return nil
}

// AddTask validates and stores a new pending task. Id and creation time are
// filled in when empty.
func (t *Tracker) AddTask(ctx context.Context, task models.Task) (models.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = t.now()
	}
	task.Completed = false
	task.CompletedAt = nil
	task.XPAwarded = false
	if err := task.Validate(); err != nil {
		return models.Task{}, err
	}

	err := t.do(ctx, func() error {
		if indexByID(t.ws.Pending, task.ID) >= 0 || indexByID(t.ws.Completed, task.ID) >= 0 {
			return fmt.Errorf("%w: task %s already exists", models.ErrValidation, task.ID)
		}
		return t.apply(func() []writeback.Op {
			t.ws.Pending = append(t.ws.Pending, task)
			return []writeback.Op{writeback.Create(t.ws.UserID, task)}
		})
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CompleteTask starts the completion timer for a pending task. The task moves
// to Completed and XP is awarded when the timer fires. Calling it again while
// the timer runs does nothing.
func (t *Tracker) CompleteTask(ctx context.Context, id string) error {
	return t.do(ctx, func() error {
		if indexByID(t.ws.Pending, id) < 0 {
			if indexByID(t.ws.Completed, id) >= 0 {
				return fmt.Errorf("%w: %s", ErrNotPending, id)
			}
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		if t.life.Begin(id) {
			t.log.Debug("task completing", "task", id)
		}
		return nil
	})
}

// finishCompletion runs on the loop when a completion timer fires.
func (t *Tracker) finishCompletion(id string) {
	if !t.life.Finish(id) {
		return
	}
	i := indexByID(t.ws.Pending, id)
	if i < 0 {
		return
	}
	task := t.ws.Pending[i]
	if task.XPAwarded || task.Completed {
		return
	}

	now := t.now()
	res := progress.Complete(t.ws.Profile, task.Priority, t.ws.Rewards, progress.Rewards, now)

	task.Completed = true
	task.CompletedAt = &now
	task.XPAwarded = true

	err := t.apply(func() []writeback.Op {
		t.ws.Pending = slices.Delete(t.ws.Pending, i, i+1)
		t.ws.Completed = append(t.ws.Completed, task)
		t.ws.Profile = res.Profile
		t.ws.Rewards = append(t.ws.Rewards, res.NewRewards...)

		ops := []writeback.Op{
			writeback.Update(t.ws.UserID, task),
			writeback.SaveProfile(t.ws.UserID, res.Profile),
		}
		for _, r := range res.NewRewards {
			ops = append(ops, writeback.Create(t.ws.UserID, r))
		}
		return ops
	})
	if err != nil {
		t.log.Error("could not complete task", "task", id, "error", err)
		return
	}

	t.log.Info("task completed", "task", id, "xp", res.XPAwarded, "level", res.LevelAfter)
	t.emit(Event{Kind: EventTaskCompleted, Task: task, XP: res.XPAwarded, Level: res.LevelAfter})
	if res.LevelUp {
		t.emit(Event{Kind: EventLevelUp, Level: res.LevelAfter})
	}
	if len(res.NewRewards) > 0 {
		t.emit(Event{Kind: EventRewardsUnlocked, Rewards: res.NewRewards})
	}
}

// DeleteTask removes a pending or completed task. A task that is completing
// has its timer cancelled and receives no XP. The local removal stands even
// if the remote delete later fails.
func (t *Tracker) DeleteTask(ctx context.Context, id string) error {
	return t.do(ctx, func() error {
		pi := indexByID(t.ws.Pending, id)
		ci := indexByID(t.ws.Completed, id)
		if pi < 0 && ci < 0 {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		if t.life.Cancel(id) {
			t.log.Debug("completion cancelled by delete", "task", id)
		}
		return t.apply(func() []writeback.Op {
			if pi >= 0 {
				t.ws.Pending = slices.Delete(t.ws.Pending, pi, pi+1)
			} else {
				t.ws.Completed = slices.Delete(t.ws.Completed, ci, ci+1)
			}
			return []writeback.Op{writeback.Delete(t.ws.UserID, models.KindTask, id)}
		})
	})
}
