package lifecycle

import (
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu  sync.Mutex
	ids []string
	ch  chan string
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan string, 16)}
}

func (r *recorder) expire(id string) {
	r.mu.Lock()
	r.ids = append(r.ids, id)
	r.mu.Unlock()
	r.ch <- id
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case id := <-ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
		return ""
	}
}

func TestBeginIsIdempotent(t *testing.T) {
	rec := newRecorder()
	c := New(20*time.Millisecond, rec.expire)

	if !c.Begin("t1") {
		t.Fatal("first Begin returned false")
	}
	if c.Begin("t1") {
		t.Error("second Begin returned true, want no-op")
	}
	if c.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", c.Pending())
	}

	if id := waitFor(t, rec.ch); id != "t1" {
		t.Fatalf("expired id = %q, want t1", id)
	}
	if !c.Finish("t1") {
		t.Error("Finish after expiry returned false")
	}
	if c.Finish("t1") {
		t.Error("second Finish returned true")
	}

	c.Wait()
	if rec.count() != 1 {
		t.Errorf("timer fired %d times, want 1", rec.count())
	}
}

func TestCancelSuppressesFinish(t *testing.T) {
	rec := newRecorder()
	c := New(time.Hour, rec.expire)

	c.Begin("t1")
	if !c.IsCompleting("t1") {
		t.Fatal("IsCompleting = false after Begin")
	}
	if !c.Cancel("t1") {
		t.Fatal("Cancel returned false")
	}
	if c.Finish("t1") {
		t.Error("Finish after Cancel returned true")
	}
	if c.Cancel("t1") {
		t.Error("second Cancel returned true")
	}

	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked after Cancel")
	}
	if rec.count() != 0 {
		t.Errorf("cancelled timer fired %d times", rec.count())
	}
}

func TestCancelAfterFire(t *testing.T) {
	rec := newRecorder()
	c := New(5*time.Millisecond, rec.expire)

	c.Begin("t1")
	waitFor(t, rec.ch)

	// deletion raced with expiry: the pending Finish must be rejected
	if !c.Cancel("t1") {
		t.Fatal("Cancel returned false while still completing")
	}
	if c.Finish("t1") {
		t.Error("Finish returned true after Cancel")
	}
	c.Wait()
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{Pending, Completing, true},
		{Completing, Completed, true},
		{Pending, Completed, false},
		{Completed, Completing, false},
		{Completing, Completing, false},
		{Pending, Deleted, true},
		{Completing, Deleted, true},
		{Completed, Deleted, true},
		{Deleted, Pending, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
