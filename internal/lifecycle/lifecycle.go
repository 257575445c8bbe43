// Package lifecycle tracks the transient completing state of tasks.
//
// A task moves Pending -> Completing -> Completed. Entering Completing arms a
// fixed-duration timer whose expiry is the only way to reach Completed.
// Deleted is reachable from Pending, Completing and Completed and is terminal.
package lifecycle

import (
	"sync"
	"time"
)

type State int

const (
	Pending State = iota
	Completing
	Completed
	Deleted
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Completing:
		return "completing"
	case Completed:
		return "completed"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to State) bool {
	switch to {
	case Completing:
		return from == Pending
	case Completed:
		return from == Completing
	case Deleted:
		return from == Pending || from == Completing || from == Completed
	default:
		return false
	}
}

// Controller owns one timer per completing task.
type Controller struct {
	delay    time.Duration
	onExpire func(id string)

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

// New returns a controller whose timers fire after delay and report the task id
// to onExpire. onExpire runs on the timer goroutine; it should hand the id to
// the owner's control loop and call Finish from there.
func New(delay time.Duration, onExpire func(id string)) *Controller {
	return &Controller{
		delay:    delay,
		onExpire: onExpire,
		timers:   make(map[string]*time.Timer),
	}
}

// Begin moves a task into Completing and arms its timer. A task that is already
// completing is left alone: the timer is not restarted and false is returned.
func (c *Controller) Begin(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.timers[id]; ok {
		return false
	}

	c.wg.Add(1)
	c.timers[id] = time.AfterFunc(c.delay, func() {
		defer c.wg.Done()
		if c.onExpire != nil {
			c.onExpire(id)
		}
	})
	return true
}

// Finish consumes the completing state after the timer fired. It returns false
// when the task was cancelled in the meantime, in which case the caller must not
// move the task or award XP.
func (c *Controller) Finish(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.timers[id]; !ok {
		return false
	}
	delete(c.timers, id)
	return true
}

// Cancel drops a completing task, stopping its timer when it has not fired yet.
func (c *Controller) Cancel(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.timers[id]
	if !ok {
		return false
	}
	delete(c.timers, id)
	if t.Stop() {
		c.wg.Done()
	}
	return true
}

func (c *Controller) IsCompleting(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.timers[id]
	return ok
}

// Pending returns how many tasks are currently completing.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Wait blocks until every armed timer has either fired and returned from
// onExpire or been cancelled.
func (c *Controller) Wait() {
	c.wg.Wait()
}
