// Package writeback mirrors local mutations to the remote store from a single
// background worker, in submission order.
package writeback

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"

	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/models"
	"github.com/julianstephens/dayquest/internal/remote"
)

var ErrClosed = errors.New("write-back queue is closed")

type OpKind int

const (
	OpCreate OpKind = iota
	OpUpdate
	OpDelete
	OpProfile
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpProfile:
		return "profile"
	default:
		return "unknown"
	}
}

// Op is one remote write. Create and Update carry Record, Delete carries
// Entity and ID, Profile carries Profile.
type Op struct {
	Kind    OpKind
	UserID  string
	Record  models.Record
	Entity  models.EntityKind
	ID      string
	Profile *models.Profile
}

func Create(userID string, rec models.Record) Op {
	return Op{Kind: OpCreate, UserID: userID, Record: rec}
}

func Update(userID string, rec models.Record) Op {
	return Op{Kind: OpUpdate, UserID: userID, Record: rec}
}

func Delete(userID string, kind models.EntityKind, id string) Op {
	return Op{Kind: OpDelete, UserID: userID, Entity: kind, ID: id}
}

func SaveProfile(userID string, p models.Profile) Op {
	return Op{Kind: OpProfile, UserID: userID, Profile: &p}
}

func (o Op) String() string {
	switch o.Kind {
	case OpCreate, OpUpdate:
		if o.Record == nil {
			return o.Kind.String()
		}
		return fmt.Sprintf("%s %s %s", o.Kind, o.Record.Kind(), o.Record.RecordID())
	case OpDelete:
		return fmt.Sprintf("delete %s %s", o.Entity, o.ID)
	default:
		return o.Kind.String()
	}
}

// Failure is an op that still failed after every attempt.
type Failure struct {
	Op       Op
	Err      error
	Attempts int
	At       time.Time
}

type Options struct {
	// MaxRetries is how many extra attempts a failed op gets. Zero means the
	// op is tried once. Waits between attempts double from Backoff.
	MaxRetries int
	Backoff    time.Duration
	// Timeout bounds a single attempt.
	Timeout   time.Duration
	OnFailure func(Failure)
}

// Queue owns a single worker goroutine. Submit never blocks on the network.
type Queue struct {
	store remote.Store
	opts  Options
	log   *log.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	pending  []Op
	busy     bool
	closed   bool
	applied  int
	failures []Failure

	done chan struct{}
}

func New(store remote.Store, opts Options) *Queue {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = constants.RetryBackoff
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	q := &Queue{
		store: store,
		opts:  opts,
		log:   logger.With("writeback"),
		done:  make(chan struct{}),
	}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Submit enqueues op behind every earlier submission.
func (q *Queue) Submit(op Op) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	q.pending = append(q.pending, op)
	q.cond.Broadcast()
	return nil
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		op := q.pending[0]
		q.pending = q.pending[1:]
		q.busy = true
		q.mu.Unlock()

		failure := q.process(op)

		q.mu.Lock()
		q.busy = false
		if failure != nil {
			q.failures = append(q.failures, *failure)
		} else {
			q.applied++
		}
		q.cond.Broadcast()
		q.mu.Unlock()

		if failure != nil && q.opts.OnFailure != nil {
			q.opts.OnFailure(*failure)
		}
	}
}

func (q *Queue) process(op Op) *Failure {
	b := retry.WithMaxRetries(uint64(q.opts.MaxRetries), retry.NewExponential(q.opts.Backoff))
	attempts := 0
	err := retry.Do(context.Background(), b, func(context.Context) error {
		attempts++
		if err := q.apply(op); err != nil {
			q.log.Debug("write attempt failed", "op", op, "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err == nil {
		q.log.Debug("write applied", "op", op, "attempts", attempts)
		return nil
	}
	q.log.Warn("remote write failed", "op", op, "attempts", attempts, "error", err)
	return &Failure{Op: op, Err: err, Attempts: attempts, At: time.Now()}
}

func (q *Queue) apply(op Op) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.opts.Timeout)
	defer cancel()

	switch op.Kind {
	case OpCreate:
		return q.store.Create(ctx, op.UserID, op.Record)
	case OpUpdate:
		return q.store.Update(ctx, op.UserID, op.Record)
	case OpDelete:
		return q.store.Delete(ctx, op.UserID, op.Entity, op.ID)
	case OpProfile:
		if op.Profile == nil {
			return errors.New("profile op without profile")
		}
		return q.store.SaveProfile(ctx, op.UserID, *op.Profile)
	default:
		return fmt.Errorf("unknown op kind %d", op.Kind)
	}
}

// Flush blocks until every op submitted so far has been attempted.
func (q *Queue) Flush() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.pending) > 0 || q.busy {
		q.cond.Wait()
	}
}

// Close drains the queue and stops the worker. Further submits fail.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
	<-q.done
}

// Failures returns every op that exhausted its attempts.
func (q *Queue) Failures() []Failure {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Failure, len(q.failures))
	copy(out, q.failures)
	return out
}

// Applied counts ops that reached the store successfully.
func (q *Queue) Applied() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.applied
}
