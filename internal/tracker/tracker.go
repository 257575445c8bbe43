// Package tracker owns the working set. A single goroutine applies every
// operation in order, persists the result to the local cache and, while a
// user is signed in, mirrors it to the remote store in the background.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/dayquest/internal/cache"
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/lifecycle"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/reconcile"
	"github.com/julianstephens/dayquest/internal/remote"
	"github.com/julianstephens/dayquest/internal/session"
	"github.com/julianstephens/dayquest/internal/writeback"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrNotPending     = errors.New("task is already completed")
	ErrRecordNotFound = errors.New("record not found")
	ErrClosed         = errors.New("tracker is closed")
	ErrNoSession      = errors.New("not signed in")
	ErrNoRemote       = errors.New("no remote store configured")
)

type Options struct {
	Cache cache.Cache
	// Store is optional. Without it the tracker is local-only and session
	// transitions only change UserID.
	Store           remote.Store
	CompletionDelay time.Duration
	Writeback       writeback.Options
	Now             func() time.Time
}

type request struct {
	fn    func() error
	reply chan error
}

type Tracker struct {
	cache  cache.Cache
	store  remote.Store
	queue  *writeback.Queue
	engine *reconcile.Engine
	life   *lifecycle.Controller
	now    func() time.Time
	log    *log.Logger

	// ws is only touched from the loop goroutine.
	ws WorkingSet

	reqs      chan request
	events    chan Event
	quit      chan struct{}
	done      chan struct{}
	closing   atomic.Bool
	closeOnce sync.Once
}

// Open loads the cached working set and starts the control loop. The first
// open on a device stamps the install date and creates the default profile.
func Open(ctx context.Context, opts Options) (*Tracker, error) {
	if opts.Cache == nil {
		return nil, errors.New("tracker: cache is required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CompletionDelay <= 0 {
		opts.CompletionDelay = constants.CompletionDelay
	}

	t := &Tracker{
		cache:  opts.Cache,
		store:  opts.Store,
		now:    opts.Now,
		log:    logger.With("tracker"),
		reqs:   make(chan request),
		events: make(chan Event, 64),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	if opts.Store != nil {
		t.queue = writeback.New(opts.Store, opts.Writeback)
		t.engine = reconcile.New(opts.Store, t.queue)
	}
	t.life = lifecycle.New(opts.CompletionDelay, t.expire)

	if err := t.load(ctx); err != nil {
		if t.queue != nil {
			t.queue.Close()
		}
		return nil, err
	}

	go t.loop()
	return t, nil
}

func (t *Tracker) load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	st, err := cache.Load(t.cache)
	if err != nil {
		return fmt.Errorf("load cache: %w", err)
	}

	now := t.now()
	first := st.InstallDate.IsZero() || st.Snapshot.Profile == nil
	if st.InstallDate.IsZero() {
		st.InstallDate = now
	}
	if st.Snapshot.Profile == nil {
		p := models.NewProfile("", now)
		st.Snapshot.Profile = &p
	}
	if st.Theme == "" {
		st.Theme = constants.DefaultTheme
	}

	t.ws.replace(st.Snapshot)
	t.ws.Theme = st.Theme
	t.ws.InstallDate = st.InstallDate

	if first {
		t.log.Info("first use, initialising cache", "install_date", st.InstallDate.Format(constants.DateFormat))
		return t.persist()
	}
	return nil
}

func (t *Tracker) loop() {
	defer close(t.done)
	for {
		select {
		case r := <-t.reqs:
			r.reply <- r.fn()
		case <-t.quit:
			return
		}
	}
}

// do runs fn on the loop goroutine and waits for it.
func (t *Tracker) do(ctx context.Context, fn func() error) error {
	if t.closing.Load() {
		return ErrClosed
	}
	return t.send(ctx, fn)
}

func (t *Tracker) send(ctx context.Context, fn func() error) error {
	r := request{fn: fn, reply: make(chan error, 1)}
	select {
	case t.reqs <- r:
	case <-t.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-r.reply
}

// expire is the completion timer callback. It bypasses the closing check so
// Close can wait for in-flight completions to land.
func (t *Tracker) expire(id string) {
	err := t.send(context.Background(), func() error {
		t.finishCompletion(id)
		return nil
	})
	if err != nil {
		t.log.Warn("completion dropped", "task", id, "error", err)
	}
}

// persist writes the whole working set to the cache. This is the durability
// boundary: a mutation that fails here is reported to the caller.
func (t *Tracker) persist() error {
	if err := cache.Save(t.cache, t.ws.state()); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// mirror hands op to the background writer when a user is signed in.
func (t *Tracker) mirror(op writeback.Op) {
	if t.queue == nil || t.ws.UserID == "" {
		return
	}
	if err := t.queue.Submit(op); err != nil {
		t.log.Warn("could not queue remote write", "op", op, "error", err)
	}
}

func (t *Tracker) emit(ev Event) {
	select {
	case t.events <- ev:
	default:
		t.log.Debug("event dropped, no reader", "event", ev.Kind)
	}
}

// Events delivers progression and sync notifications. Events are dropped
// when nobody reads them. The channel is closed by Close.
func (t *Tracker) Events() <-chan Event {
	return t.events
}

// Snapshot returns a copy of the working set.
func (t *Tracker) Snapshot(ctx context.Context) (WorkingSet, error) {
	var ws WorkingSet
	err := t.do(ctx, func() error {
		ws = t.ws.clone()
		ws.Completing = ws.Completing[:0]
		for _, task := range t.ws.Pending {
			if t.life.IsCompleting(task.ID) {
				ws.Completing = append(ws.Completing, task.ID)
			}
		}
		return nil
	})
	return ws, err
}

// Follow applies session events until events is closed or ctx is done.
func (t *Tracker) Follow(ctx context.Context, events <-chan session.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			var err error
			if ev.Authenticated {
				_, err = t.Authenticated(ctx, ev.UserID)
			} else {
				err = t.Unauthenticated(ctx)
			}
			if err != nil {
				return err
			}
		}
	}
}

// Flush blocks until every queued remote write has been attempted.
func (t *Tracker) Flush() {
	if t.queue != nil {
		t.queue.Flush()
	}
}

// Failures lists remote writes that gave up.
func (t *Tracker) Failures() []writeback.Failure {
	if t.queue == nil {
		return nil
	}
	return t.queue.Failures()
}

// Close waits for in-flight completions, stops the loop and drains the
// background writer. It is safe to call more than once.
func (t *Tracker) Close() error {
	t.closeOnce.Do(func() {
		t.closing.Store(true)
		t.life.Wait()
		close(t.quit)
		<-t.done
		if t.queue != nil {
			t.queue.Close()
		}
		close(t.events)
	})
	return nil
}
