package event

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO with any number of producers and a single
// consumer. Send never blocks; Recv blocks until an event arrives, the
// context ends, or the queue is closed.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    []Event
	closed bool
}

// NewQueue constructs an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Send enqueues an event. Sending on a closed queue is a no-op so late
// watcher goroutines do not need shutdown coordination.
func (q *Queue) Send(evt Event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.buf = append(q.buf, evt)
	q.cond.Signal()
	q.mu.Unlock()
}

// Recv dequeues the oldest event. The bool result is false when the queue
// is closed and drained, or when ctx ended first.
func (q *Queue) Recv(ctx context.Context) (Event, bool) {
	cancelWait := make(chan struct{})
	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				// Taking the lock serializes this wakeup with the
				// consumer's check-then-wait, so cancellation between
				// the ctx.Err check and cond.Wait cannot be lost.
				q.mu.Lock()
				q.cond.Broadcast()
				q.mu.Unlock()
			case <-cancelWait:
			}
		}()
	}
	defer close(cancelWait)

	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		if len(q.buf) > 0 {
			evt := q.buf[0]
			q.buf = q.buf[1:]
			return evt, true
		}
		if q.closed {
			return Event{}, false
		}
		if ctx != nil && ctx.Err() != nil {
			return Event{}, false
		}
		q.cond.Wait()
	}
}

// TryRecv dequeues without blocking.
func (q *Queue) TryRecv() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return Event{}, false
	}
	evt := q.buf[0]
	q.buf = q.buf[1:]
	return evt, true
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Close stops the queue. Pending events remain receivable; subsequent
// sends are dropped.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.cond.Broadcast()
	q.mu.Unlock()
}
