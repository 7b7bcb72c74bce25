package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrMissingID          = errors.New("scheduler: wakeup id is required")
	ErrEngineStopped      = errors.New("scheduler: engine stopped")
)

// Wakeup is a one-shot event delivered on C once TriggerAt has passed.
type Wakeup struct {
	ID        string
	Kind      string
	TriggerAt time.Time
}

type entry struct {
	wakeup Wakeup
	seq    uint64
	index  int
}

// wakeupQueue orders by trigger time, then by scheduling order.
type wakeupQueue []*entry

func (q wakeupQueue) Len() int { return len(q) }

func (q wakeupQueue) Less(i, j int) bool {
	a, b := q[i].wakeup.TriggerAt, q[j].wakeup.TriggerAt
	if a.Equal(b) {
		return q[i].seq < q[j].seq
	}
	return a.Before(b)
}

func (q wakeupQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *wakeupQueue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *wakeupQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

type Option func(*Engine)

// WithClock replaces time.Now as the engine's notion of the current time.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine delivers wakeups on a buffered channel. Pending wakeups are keyed by ID:
// scheduling an ID that is already pending moves it to the new trigger time.
type Engine struct {
	mu      sync.Mutex
	queue   wakeupQueue
	byID    map[string]*entry
	seq     uint64
	now     func() time.Time
	out     chan Wakeup
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int, opts ...Option) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	e := &Engine{
		byID:   make(map[string]*entry),
		now:    wallNow,
		out:    make(chan Wakeup, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// C is closed once the engine stops.
func (e *Engine) C() <-chan Wakeup {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule queues w, replacing any pending wakeup with the same ID.
func (e *Engine) Schedule(w Wakeup) error {
	if w.ID == "" {
		return ErrMissingID
	}
	if w.TriggerAt.IsZero() {
		return ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrEngineStopped
	}

	e.seq++
	if existing, ok := e.byID[w.ID]; ok {
		existing.wakeup = w
		existing.seq = e.seq
		heap.Fix(&e.queue, existing.index)
	} else {
		item := &entry{wakeup: w, seq: e.seq}
		heap.Push(&e.queue, item)
		e.byID[w.ID] = item
	}
	e.signalWakeup()
	return nil
}

// Cancel drops the pending wakeup with the given id and reports whether one existed.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&e.queue, item.index)
	delete(e.byID, id)
	e.signalWakeup()
	return true
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// Dropped counts wakeups discarded because the consumer fell behind the buffer.
func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, ok := e.peek()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := next.Sub(e.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, w := range e.popDue(e.now()) {
				select {
				case e.out <- w:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func wallNow() time.Time {
	return time.Now().Round(0)
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

// peek returns the earliest trigger time.
func (e *Engine) peek() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return time.Time{}, false
	}
	return e.queue[0].wakeup.TriggerAt, true
}

func (e *Engine) popDue(now time.Time) []Wakeup {
	e.mu.Lock()
	defer e.mu.Unlock()

	var due []Wakeup
	for len(e.queue) > 0 && !e.queue[0].wakeup.TriggerAt.After(now) {
		item := heap.Pop(&e.queue).(*entry)
		delete(e.byID, item.wakeup.ID)
		due = append(due, item.wakeup)
	}
	return due
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
