// Package packetqueue provides the unbounded FIFO that decouples the
// producer of compressed frames from the decode worker.
package packetqueue

import "sync"

// Queue is an unbounded FIFO of encoded packets. It is safe for one producer
// goroutine pushing and one consumer goroutine popping concurrently. Pushing
// never blocks and never fails; there is no backpressure to the producer.
type Queue struct {
	mu      sync.Mutex
	packets [][]byte
	notify  chan struct{}
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{
		notify: make(chan struct{}, 1),
	}
}

// Push appends a packet to the tail and wakes the consumer if it is waiting.
// The queue takes ownership of pkt.
func (q *Queue) Push(pkt []byte) {
	q.mu.Lock()
	q.packets = append(q.packets, pkt)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// TryPop removes and returns the head packet. An empty queue is not an
// error; it reports false.
func (q *Queue) TryPop() ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.packets) == 0 {
		return nil, false
	}

	pkt := q.packets[0]
	q.packets[0] = nil
	q.packets = q.packets[1:]
	return pkt, true
}

// Wait returns a channel that receives after a Push. Signals are coalesced,
// so after a receive the consumer must drain with TryPop until it reports
// false.
func (q *Queue) Wait() <-chan struct{} {
	return q.notify
}

// Len returns the number of queued packets.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.packets)
}
