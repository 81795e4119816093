package controller

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending deferred effect.
type Timer interface {
	// Stop cancels the effect. It reports whether the call prevented it from
	// running.
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// TimerScheduler schedules on the runtime timers.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// NopScheduler drops every effect. Request scoped controllers use it when the
// delayed effects are carried to the client instead (see Snapshot.ResetAfter).
type NopScheduler struct{}

func (NopScheduler) AfterFunc(time.Duration, func()) Timer { return nopTimer{} }

type nopTimer struct{}

func (nopTimer) Stop() bool { return false }

// ManualScheduler holds effects until Advance moves its clock past their due
// time.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	due     time.Duration
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
	owner   *ManualScheduler
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	task := &manualTask{due: s.now + d, seq: s.seq, fn: fn, owner: s}
	s.tasks = append(s.tasks, task)
	return task
}

// Advance moves the clock forward by d and runs every effect that became due,
// in due order. Effects scheduled by a running effect fire in the same call
// when they fall inside the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		task := s.nextDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// Pending returns the number of effects not yet run or stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.tasks {
		if !task.stopped && !task.fired {
			n++
		}
	}
	return n
}

// Now returns the scheduler clock.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.tasks[:0]
	for _, task := range s.tasks {
		if !task.stopped && !task.fired {
			live = append(live, task)
		}
	}
	s.tasks = live
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due == s.tasks[j].due {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].due < s.tasks[j].due
	})
	if len(s.tasks) == 0 || s.tasks[0].due > target {
		return nil
	}
	task := s.tasks[0]
	task.fired = true
	if task.due > s.now {
		s.now = task.due
	}
	return task
}

func (t *manualTask) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
