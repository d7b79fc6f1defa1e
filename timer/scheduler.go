package timer

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

type task struct {
	handle Handle
	due    time.Duration
	seq    uint64
	fn     func()
	index  int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs single-shot callbacks against a frame-driven clock. Time only
// moves when Advance is called, and callbacks run on the caller's goroutine.
type Scheduler struct {
	now     time.Duration
	nextSeq uint64
	queue   taskQueue
	byID    map[Handle]*task
}

func New() *Scheduler {
	return &Scheduler{byID: make(map[Handle]*task)}
}

// Now returns the time accumulated through Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Schedule runs fn once, no earlier than delay after the current time.
// Negative delays are treated as zero.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) Handle {
	if fn == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}
	s.nextSeq++
	t := &task{
		handle: Handle(s.nextSeq),
		due:    s.now + delay,
		seq:    s.nextSeq,
		fn:     fn,
	}
	heap.Push(&s.queue, t)
	s.byID[t.handle] = t
	return t.handle
}

// Cancel removes a pending callback. It reports false when h already fired,
// was canceled, or was never issued.
func (s *Scheduler) Cancel(h Handle) bool {
	t, ok := s.byID[h]
	if !ok {
		return false
	}
	delete(s.byID, h)
	heap.Remove(&s.queue, t.index)
	return true
}

func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.byID[h]
	return ok
}

// Len returns the number of pending callbacks.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Advance moves the clock forward by dt and runs every callback that became
// due, in due order. Callbacks scheduled from inside a callback run in the
// same Advance if they are already due.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}

	fired := 0
	for len(s.queue) > 0 && s.queue[0].due <= s.now {
		t := heap.Pop(&s.queue).(*task)
		delete(s.byID, t.handle)
		fired++
		t.fn()
	}
	return fired
}
