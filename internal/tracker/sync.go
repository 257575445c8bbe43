package tracker

import (
	"context"
	"slices"

	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/reconcile"
	"github.com/julianstephens/dayquest/internal/writeback"
)

// Authenticated switches the working set to userID and reconciles it with the
// remote store. Repeated calls for the user already signed in do nothing; the
// boolean reports whether a reconciliation ran.
func (t *Tracker) Authenticated(ctx context.Context, userID string) (bool, error) {
	var ran bool
	err := t.do(ctx, func() error {
		if userID == "" || userID == t.ws.UserID {
			return nil
		}
		t.ws.UserID = userID
		t.log.Info("signed in", "user", userID)
		if t.engine == nil {
			return nil
		}
		ran = true
		return t.reconcile(ctx, false)
	})
	return ran, err
}

// Unauthenticated drops the session. The working set and the cache are kept.
func (t *Tracker) Unauthenticated(ctx context.Context) error {
	return t.do(ctx, func() error {
		if t.ws.UserID != "" {
			t.log.Info("signed out", "user", t.ws.UserID)
		}
		t.ws.UserID = ""
		return nil
	})
}

// Sync runs a reconciliation for the signed-in user on demand.
func (t *Tracker) Sync(ctx context.Context) (reconcile.Result, error) {
	var res reconcile.Result
	err := t.do(ctx, func() error {
		if err := t.requireRemote(); err != nil {
			return err
		}
		t.queue.Flush()
		res = t.engine.Reconcile(ctx, t.ws.UserID, t.ws.snapshot())
		return t.adopt(res, true)
	})
	return res, err
}

// reconcile merges with the remote store. inSession is set when the signed-in
// user produced the local state, so remote copies that lag behind it are
// corrected instead of adopted.
func (t *Tracker) reconcile(ctx context.Context, inSession bool) error {
	return t.adopt(t.engine.Reconcile(ctx, t.ws.UserID, t.ws.snapshot()), inSession)
}

// adopt replaces the working set with a reconciliation result and persists it.
func (t *Tracker) adopt(res reconcile.Result, inSession bool) error {
	prev := t.ws.clone()
	err := t.apply(func() []writeback.Op {
		t.ws.replace(res.Snapshot)
		if !inSession {
			return nil
		}
		return t.keepProgress(prev)
	})
	if err != nil {
		return err
	}
	t.rebindCompleting(prev)
	t.emit(Event{Kind: EventReconciled, Sync: res})
	return nil
}

// keepProgress restores completions and profile totals from prev that the
// remote store has not caught up with, and returns the writes that bring it
// up to date. A remote write that failed earlier in the session would
// otherwise roll XP back and let the same task be completed twice.
func (t *Tracker) keepProgress(prev WorkingSet) []writeback.Op {
	var ops []writeback.Op
	for _, done := range prev.Completed {
		if !done.XPAwarded || indexByID(t.ws.Completed, done.ID) >= 0 {
			continue
		}
		i := indexByID(t.ws.Pending, done.ID)
		if i < 0 {
			key := done.DedupKey()
			i = slices.IndexFunc(t.ws.Pending, func(p models.Task) bool { return p.DedupKey() == key })
		}
		if i < 0 {
			continue
		}
		task := t.ws.Pending[i]
		task.Completed = true
		task.CompletedAt = done.CompletedAt
		task.ActualMin = done.ActualMin
		task.XPAwarded = true
		t.ws.Pending = slices.Delete(t.ws.Pending, i, i+1)
		t.ws.Completed = append(t.ws.Completed, task)
		ops = append(ops, writeback.Update(t.ws.UserID, task))
		t.log.Info("kept local completion over stale remote copy", "task", task.ID)
	}

	if profileBehind(t.ws.Profile, prev.Profile) {
		t.ws.Profile = prev.Profile
		ops = append(ops, writeback.SaveProfile(t.ws.UserID, prev.Profile))
		t.log.Info("kept local profile over stale remote copy", "xp", prev.Profile.TotalXP)
	}
	return ops
}

// profileBehind reports whether remote is missing progress that local has.
func profileBehind(remote, local models.Profile) bool {
	return remote.TotalXP < local.TotalXP ||
		remote.TotalTasksCompleted < local.TotalTasksCompleted ||
		remote.DaysUsed < local.DaysUsed
}

// rebindCompleting keeps completion timers attached to tasks that survived
// the merge under a different id. A timer whose task is gone is cancelled.
func (t *Tracker) rebindCompleting(prev WorkingSet) {
	for _, old := range prev.Pending {
		if !t.life.IsCompleting(old.ID) || indexByID(t.ws.Pending, old.ID) >= 0 {
			continue
		}
		t.life.Cancel(old.ID)

		key := old.DedupKey()
		i := slices.IndexFunc(t.ws.Pending, func(p models.Task) bool { return p.DedupKey() == key })
		if i < 0 {
			t.log.Warn("completion dropped, task no longer pending after sync", "task", old.ID)
			continue
		}
		t.life.Begin(t.ws.Pending[i].ID)
		t.log.Debug("completion moved to merged task", "from", old.ID, "to", t.ws.Pending[i].ID)
	}
}

// Backup returns the remote copy of the signed-in user's data, or the local
// working set when running local-only.
func (t *Tracker) Backup(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := t.do(ctx, func() error {
		if t.engine == nil || t.ws.UserID == "" {
			snap = t.ws.snapshot()
			return nil
		}
		t.queue.Flush()
		var err error
		snap, err = t.engine.Backup(ctx, t.ws.UserID)
		return err
	})
	return snap, err
}

// Restore uploads snap to the remote store, skipping records already present
// by dedup key, then reconciles the working set against the result.
func (t *Tracker) Restore(ctx context.Context, snap models.Snapshot) (reconcile.Result, error) {
	var res reconcile.Result
	err := t.do(ctx, func() error {
		if err := t.requireRemote(); err != nil {
			return err
		}
		t.queue.Flush()
		var err error
		res, err = t.engine.Restore(ctx, t.ws.UserID, snap)
		if err != nil {
			return err
		}
		// pick the uploads back up together with anything only held locally
		t.queue.Flush()
		return t.reconcile(ctx, true)
	})
	return res, err
}

func (t *Tracker) requireRemote() error {
	if t.engine == nil {
		return ErrNoRemote
	}
	if t.ws.UserID == "" {
		return ErrNoSession
	}
	return nil
}
