// Package reconcile merges the local cache snapshot with the remote store
// when a session authenticates and pushes what only exists locally.
package reconcile

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/remote"
	"github.com/julianstephens/dayquest/internal/writeback"
)

// Submitter accepts remote writes for background delivery.
type Submitter interface {
	Submit(op writeback.Op) error
}

type Result struct {
	Snapshot models.Snapshot
	// Pushed lists the local-only records handed to the writer as creates.
	Pushed []models.Record
	// ProfilePushed is set when the remote store had no profile and the
	// local one was sent up.
	ProfilePushed bool
	// Fallback is set when any remote read failed and Snapshot is the local
	// snapshot unchanged.
	Fallback bool
}

type Engine struct {
	store remote.Store
	out   Submitter
	log   *log.Logger
}

func New(store remote.Store, out Submitter) *Engine {
	return &Engine{store: store, out: out, log: logger.With("reconcile")}
}

// Reconcile runs one pass for userID. It never fails: an unreachable remote
// store degrades the whole pass to the local snapshot with nothing pushed.
// Pushes are delivered asynchronously and their failures do not affect the
// returned snapshot.
func (e *Engine) Reconcile(ctx context.Context, userID string, local models.Snapshot) Result {
	remoteSnap, err := e.fetch(ctx, userID)
	if err != nil {
		e.log.Warn("remote read failed, using local snapshot", "user", userID, "error", err)
		return Result{Snapshot: local.Clone(), Fallback: true}
	}

	merged, push := mergeSnapshots(remoteSnap, local)
	res := Result{Snapshot: merged, Pushed: push}

	for _, rec := range push {
		e.submit(writeback.Create(userID, rec))
	}
	if remoteSnap.Profile == nil && local.Profile != nil {
		e.submit(writeback.SaveProfile(userID, *local.Profile))
		res.ProfilePushed = true
	}

	e.log.Info("reconciled", "user", userID, "pushed", len(push),
		"tasks", len(merged.Tasks), "expenses", len(merged.Expenses), "appointments", len(merged.Appointments))
	return res
}

func (e *Engine) submit(op writeback.Op) {
	if err := e.out.Submit(op); err != nil {
		e.log.Warn("could not queue remote write", "op", op, "error", err)
	}
}

// Backup returns everything the remote store holds for userID.
func (e *Engine) Backup(ctx context.Context, userID string) (models.Snapshot, error) {
	return e.fetch(ctx, userID)
}

// Restore uploads snap through the same dedup check as Reconcile and replaces
// the remote profile with snap's. Unlike Reconcile, read failures are returned.
func (e *Engine) Restore(ctx context.Context, userID string, snap models.Snapshot) (Result, error) {
	remoteSnap, err := e.fetch(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("restore: %w", err)
	}

	merged, push := mergeSnapshots(remoteSnap, snap)
	for _, rec := range push {
		e.submit(writeback.Create(userID, rec))
	}

	res := Result{Snapshot: merged, Pushed: push}
	if snap.Profile != nil {
		p := *snap.Profile
		res.Snapshot.Profile = &p
		e.submit(writeback.SaveProfile(userID, p))
		res.ProfilePushed = true
	}
	return res, nil
}

// fetch reads the profile and all five collections concurrently. The first
// failure cancels the rest.
func (e *Engine) fetch(ctx context.Context, userID string) (models.Snapshot, error) {
	var snap models.Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := e.store.FetchProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		snap.Profile = p
		return nil
	})
	g.Go(func() (err error) {
		snap.Tasks, err = fetchKind[models.Task](ctx, e.store, userID, models.KindTask)
		return err
	})
	g.Go(func() (err error) {
		snap.Expenses, err = fetchKind[models.Expense](ctx, e.store, userID, models.KindExpense)
		return err
	})
	g.Go(func() (err error) {
		snap.Appointments, err = fetchKind[models.Appointment](ctx, e.store, userID, models.KindAppointment)
		return err
	})
	g.Go(func() (err error) {
		snap.Rewards, err = fetchKind[models.RewardUnlock](ctx, e.store, userID, models.KindReward)
		return err
	})
	g.Go(func() (err error) {
		snap.Trophies, err = fetchKind[models.TrophyUnlock](ctx, e.store, userID, models.KindTrophy)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

func fetchKind[T models.Record](ctx context.Context, store remote.Store, userID string, kind models.EntityKind) ([]T, error) {
	recs, err := store.FetchAll(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", kind, err)
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		v, ok := r.(T)
		if !ok {
			return nil, fmt.Errorf("fetch %s: unexpected record type %T", kind, r)
		}
		out = append(out, v)
	}
	return out, nil
}
