package animator

import (
	"container/heap"
	"sync"
	"time"
)

// Scheduler runs recurring tasks. Each task runs again interval after its
// previous run completed, starting after an initial delay.
type Scheduler interface {
	Schedule(delay, interval time.Duration, task func()) Handle
}

// Handle deregisters a scheduled task. Cancel is safe to call from inside the
// task itself and more than once; the task never starts again afterwards.
type Handle interface {
	Cancel()
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// TickScheduler runs every task on a single goroutine, ordered by next run
// time.
type TickScheduler struct {
	mu      sync.Mutex
	entries entryHeap
	seq     uint64
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewTickScheduler creates a TickScheduler and starts its goroutine.
func NewTickScheduler() *TickScheduler {
	s := new(TickScheduler)
	s.wake = make(chan struct{}, 1)
	s.done = make(chan struct{})
	go s.run()
	return s
}

var (
	defaultScheduler     *TickScheduler
	defaultSchedulerOnce sync.Once
)

// DefaultScheduler returns the process-wide scheduler shared by animators that
// were not given one.
func DefaultScheduler() *TickScheduler {
	defaultSchedulerOnce.Do(func() {
		defaultScheduler = NewTickScheduler()
	})
	return defaultScheduler
}

// Schedule registers task to run after delay and then every interval.
func (s *TickScheduler) Schedule(delay, interval time.Duration, task func()) Handle {
	e := &entry{
		s:        s,
		task:     task,
		interval: interval,
		next:     time.Now().Add(delay),
		index:    -1,
	}

	s.mu.Lock()
	s.seq++
	e.seq = s.seq
	heap.Push(&s.entries, e)
	s.mu.Unlock()

	s.poke()
	return e
}

// Len returns the number of registered tasks.
func (s *TickScheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the scheduler goroutine. Registered tasks never run again.
func (s *TickScheduler) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *TickScheduler) poke() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *TickScheduler) run() {
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		s.mu.Lock()
		if len(s.entries) > 0 {
			e := s.entries[0]
			wait := time.Until(e.next)
			if wait <= 0 {
				heap.Pop(&s.entries)
				s.mu.Unlock()

				e.task()

				s.mu.Lock()
				if !e.cancelled {
					e.next = time.Now().Add(e.interval)
					heap.Push(&s.entries, e)
				}
				s.mu.Unlock()
				continue
			}
			s.mu.Unlock()
			timer.Reset(wait)
		} else {
			s.mu.Unlock()
		}

		select {
		case <-timer.C:
		case <-s.wake:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-s.done:
			timer.Stop()
			return
		}
	}
}

type entry struct {
	s         *TickScheduler
	task      func()
	interval  time.Duration
	next      time.Time
	seq       uint64
	index     int
	cancelled bool
}

func (e *entry) Cancel() {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	e.cancelled = true
	if e.index >= 0 {
		heap.Remove(&e.s.entries, e.index)
	}
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].next.Equal(h[j].next) {
		return h[i].seq < h[j].seq
	}
	return h[i].next.Before(h[j].next)
}

func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
