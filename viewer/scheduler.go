package viewer

import (
	"sort"
	"time"
)

// Scheduler runs deferred work on the owning event loop
type Scheduler interface {
	After(delay time.Duration, fn func()) Task
}

// Task is a scheduled piece of work that can be cancelled before it runs
type Task interface {
	Cancel()
}

// LoopScheduler queues deferred tasks and runs them when the event loop calls
// RunDue. Nothing runs on another goroutine.
type LoopScheduler struct {
	now     func() time.Time
	pending []*loopTask
	seq     uint64
	closed  bool
}

type loopTask struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

func (t *loopTask) Cancel() {
	t.cancelled = true
}

// NewLoopScheduler creates a scheduler reading time from now (time.Now if nil)
func NewLoopScheduler(now func() time.Time) *LoopScheduler {
	if now == nil {
		now = time.Now
	}
	return &LoopScheduler{now: now}
}

// After schedules fn to run once delay has elapsed. After Close it returns a
// task that never runs.
func (s *LoopScheduler) After(delay time.Duration, fn func()) Task {
	s.seq++
	t := &loopTask{due: s.now().Add(delay), seq: s.seq, fn: fn}
	if s.closed {
		t.cancelled = true
		return t
	}
	s.pending = append(s.pending, t)
	return t
}

// RunDue runs every task whose deadline has passed, oldest deadline first
func (s *LoopScheduler) RunDue() int {
	now := s.now()

	var due, rest []*loopTask
	for _, t := range s.pending {
		switch {
		case t.cancelled:
		case !t.due.After(now):
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.pending = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, t := range due {
		// an earlier task in this batch may have cancelled a later one
		if t.cancelled {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}

// Pending returns the number of tasks waiting to run
func (s *LoopScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Close cancels every pending task and rejects new ones
func (s *LoopScheduler) Close() {
	for _, t := range s.pending {
		t.cancelled = true
	}
	s.pending = nil
	s.closed = true
}
