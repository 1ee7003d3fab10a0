// Package scheduler runs deferred actions that can be cancelled before they fire.
package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Handle cancels a scheduled action. Cancel is safe to call more than once and after the
// action has already run.
type Handle interface {
	Cancel()
}

type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Handle
}

// Timer schedules on the wall clock.
type Timer struct{}

func (Timer) AfterFunc(delay time.Duration, fn func()) Handle {
	return &timerHandle{timer: time.AfterFunc(delay, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

func (that *timerHandle) Cancel() {
	that.timer.Stop()
}

// Serialized wraps a scheduler so every action runs while holding locker. Owners of
// non thread-safe state pass the same lock they hold while handling requests.
func Serialized(inner Scheduler, locker sync.Locker) Scheduler {
	return &serialized{inner: inner, locker: locker}
}

type serialized struct {
	inner  Scheduler
	locker sync.Locker
}

func (that *serialized) AfterFunc(delay time.Duration, fn func()) Handle {
	return that.inner.AfterFunc(delay, func() {
		that.locker.Lock()
		defer that.locker.Unlock()

		fn()
	})
}

// Manual is a virtual clock. Actions fire only from Advance, on the caller's goroutine.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualAction
}

type manualAction struct {
	owner     *Manual
	due       time.Duration
	seq       int
	fn        func()
	cancelled bool
}

func NewManual() *Manual {
	return &Manual{}
}

func (that *Manual) AfterFunc(delay time.Duration, fn func()) Handle {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.seq++
	action := &manualAction{owner: that, due: that.now + delay, seq: that.seq, fn: fn}
	that.pending = append(that.pending, action)

	return action
}

// Advance moves the clock forward and runs every action that became due, in due order.
func (that *Manual) Advance(delta time.Duration) {
	that.mu.Lock()
	that.now += delta
	now := that.now

	var due, rest []*manualAction
	for _, action := range that.pending {
		switch {
		case action.cancelled:
		case action.due <= now:
			due = append(due, action)
		default:
			rest = append(rest, action)
		}
	}
	that.pending = rest
	that.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})

	for _, action := range due {
		if action.isCancelled() {
			continue
		}
		action.fn()
	}
}

// Pending returns the number of actions that have neither fired nor been cancelled.
func (that *Manual) Pending() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	n := 0
	for _, action := range that.pending {
		if !action.cancelled {
			n++
		}
	}

	return n
}

func (that *manualAction) Cancel() {
	that.owner.mu.Lock()
	defer that.owner.mu.Unlock()

	that.cancelled = true
}

func (that *manualAction) isCancelled() bool {
	that.owner.mu.Lock()
	defer that.owner.mu.Unlock()

	return that.cancelled
}
