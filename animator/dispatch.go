package animator

import "sync"

// Dispatcher delivers callbacks onto the goroutine that owns the consumer's
// state. Callbacks passed to one Dispatcher must run one at a time, in the
// order they were dispatched.
type Dispatcher interface {
	Dispatch(fn func())
}

type inline struct{}

func (inline) Dispatch(fn func()) { fn() }

// Inline runs callbacks immediately on the dispatching goroutine. Updates then
// run on the scheduler goroutine, and callbacks triggered by control calls run
// on the caller's goroutine.
var Inline Dispatcher = inline{}

// Queue runs callbacks on its own goroutine in FIFO order. Dispatch never
// blocks, so callbacks may control animators that dispatch onto the same
// Queue.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewQueue creates a Queue with room for size callbacks before its backlog
// grows, and starts its goroutine.
func NewQueue(size int) *Queue {
	q := new(Queue)
	q.pending = make([]func(), 0, size)
	q.wake = make(chan struct{}, 1)
	q.done = make(chan struct{})
	go q.run()
	return q
}

var (
	defaultQueue     *Queue
	defaultQueueOnce sync.Once
)

// DefaultDispatcher returns the process-wide Queue used by animators that were
// not given a Dispatcher.
func DefaultDispatcher() *Queue {
	defaultQueueOnce.Do(func() {
		defaultQueue = NewQueue(64)
	})
	return defaultQueue
}

// Dispatch queues fn. It drops fn once the queue is closed.
func (q *Queue) Dispatch(fn func()) {
	select {
	case <-q.done:
		return
	default:
	}

	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Close stops the queue goroutine. Pending callbacks are discarded.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

func (q *Queue) run() {
	for {
		select {
		case <-q.wake:
		case <-q.done:
			return
		}

		for {
			q.mu.Lock()
			if len(q.pending) == 0 {
				q.mu.Unlock()
				break
			}
			fn := q.pending[0]
			q.pending[0] = nil
			q.pending = q.pending[1:]
			q.mu.Unlock()

			select {
			case <-q.done:
				return
			default:
			}
			fn()
		}
	}
}
