// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"sync/atomic"

	"code.hybscloud.com/lfq"
)

// segmentCapacity is the bounded capacity of each lfq segment.
// A power of two; 64 keeps a segment's ring small while amortizing the
// allocation of a new segment over many items.
const segmentCapacity = 64

// segment is one bounded SPSC ring in the queue's linked list.
// next is published by the producer only after the ring has filled,
// and the producer never enqueues into a segment once next is set.
type segment[T any] struct {
	ring lfq.SPSC[T]
	next atomic.Pointer[segment[T]]
}

func newSegment[T any]() *segment[T] {
	s := &segment[T]{}
	s.ring.Init(segmentCapacity)
	return s
}

// queue is an unbounded single-producer single-consumer FIFO built from
// linked lfq.SPSC segments. The producer owns tail, the consumer owns head.
type queue[T any] struct {
	head *segment[T]
	tail *segment[T]
}

func (q *queue[T]) init() {
	s := newSegment[T]()
	q.head = s
	q.tail = s
}

// enqueue appends v. It never blocks.
func (q *queue[T]) enqueue(v T) {
	if err := q.tail.ring.Enqueue(&v); err == nil {
		return
	}
	s := newSegment[T]()
	_ = s.ring.Enqueue(&v)
	q.tail.next.Store(s)
	q.tail = s
}

// dequeue removes the oldest item. It reports false when the queue is empty.
func (q *queue[T]) dequeue() (T, bool) {
	for {
		v, err := q.head.ring.Dequeue()
		if err == nil {
			return v, true
		}
		next := q.head.next.Load()
		if next == nil {
			var zero T
			return zero, false
		}
		// Enqueues into head happened before next was published; drain
		// anything that raced the first Dequeue before moving on.
		if v, err := q.head.ring.Dequeue(); err == nil {
			return v, true
		}
		q.head = next
	}
}
