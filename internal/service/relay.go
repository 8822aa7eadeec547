package service

import (
	"context"
	"sync"
	"time"
)

// PingRelay decouples the inbound stream pump from the outbound one: the
// receive side enqueues server ping ids without ever blocking, the send side
// drains them with a bounded wait so it can re-check shutdown while idle.
// A single shared loop for both directions would deadlock the stream, since
// a pending ping reply must never wait behind inbound message processing.
//
// The queue is unbounded. Server pings arrive at keepalive cadence, so depth
// stays tiny in practice, but correctness must not depend on that.
type PingRelay struct {
	mu      sync.Mutex
	pending []int32

	// signal wakes a parked consumer; capacity one because wake-ups
	// coalesce and the consumer re-checks the queue in a loop.
	signal chan struct{}
}

func NewPingRelay() *PingRelay {
	return &PingRelay{signal: make(chan struct{}, 1)}
}

// Enqueue appends a ping id. It never blocks and never fails.
func (r *PingRelay) Enqueue(id int32) {
	r.mu.Lock()
	r.pending = append(r.pending, id)
	r.mu.Unlock()

	select {
	case r.signal <- struct{}{}:
	default:
	}
}

// Dequeue pops the oldest pending id, waiting up to timeout for one to
// arrive. It returns false on timeout or context cancellation.
func (r *PingRelay) Dequeue(ctx context.Context, timeout time.Duration) (int32, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if id, ok := r.pop(); ok {
			return id, true
		}
		select {
		case <-ctx.Done():
			return 0, false
		case <-timer.C:
			return 0, false
		case <-r.signal:
		}
	}
}

// Len reports the number of pending ids.
func (r *PingRelay) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *PingRelay) pop() (int32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return 0, false
	}
	id := r.pending[0]
	r.pending = r.pending[1:]
	return id, true
}
