// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"log/slog"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Single buffers pushed items in an unbounded FIFO for exactly one consumer.
//
// The first call to Cursor attaches the consumer. Every later call returns a
// cursor whose Advance fails with [ErrAlreadyAttached]; attaching itself
// never fails. Items pushed before the consumer attaches are buffered and
// delivered in order.
//
// Push calls never suspend. They are silently dropped after termination or
// after the consumer disposes its cursor.
type Single[T any] struct {
	q        queue[T]
	rv       rendezvous
	term     atomic.Pointer[terminal]
	attached atomix.Uint32
	disposed atomix.Uint32
	log      *slog.Logger
	serial   Serial
}

// NewSingle creates a single-consumer hub.
func NewSingle[T any](opts ...Option) *Single[T] {
	o := buildOptions(opts)
	h := &Single[T]{log: o.log, serial: nextSerial()}
	h.q.init()
	h.rv.init()
	return h
}

// Serial returns the hub's identity.
func (h *Single[T]) Serial() Serial {
	return h.serial
}

// Cursor attaches the consumer, or returns a rejected cursor if one is
// already attached.
func (h *Single[T]) Cursor() Cursor[T] {
	if !h.attached.CompareAndSwap(0, 1) {
		r := rejectedCursor[T]{serial: nextSerial()}
		h.log.Debug("Single hub rejected second consumer", "hub", h.serial, "cursor", r.serial)
		return r
	}
	return &singleCursor[T]{hub: h, serial: nextSerial()}
}

func (h *Single[T]) closed() bool {
	return h.term.Load() != nil || h.disposed.Load() != 0
}

// Next enqueues v.
func (h *Single[T]) Next(v T) {
	if h.closed() {
		return
	}
	h.q.enqueue(v)
	h.rv.signal()
}

// Error terminates the hub with err. Only the first terminal call has an effect.
// Error panics if err is nil.
func (h *Single[T]) Error(err error) {
	if err == nil {
		panic("hub: Error called with nil error")
	}
	h.terminate(&terminal{err: err})
}

// Complete terminates the hub. Only the first terminal call has an effect.
func (h *Single[T]) Complete() {
	h.terminate(completed)
}

func (h *Single[T]) terminate(t *terminal) {
	if h.disposed.Load() != 0 || !h.term.CompareAndSwap(nil, t) {
		return
	}
	h.log.Debug("Single hub terminated", "hub", h.serial, "err", t.err)
	h.rv.signal()
}

// singleCursor is the consumer side of the queue. busy is held while a
// goroutine dequeues, so the consumer end of the SPSC queue has one owner
// even when Dispose races an Advance.
type singleCursor[T any] struct {
	hub     *Single[T]
	busy    atomix.Uint32
	current T
	serial  Serial
}

func (c *singleCursor[T]) Advance() (bool, error) {
	return c.advance(true)
}

func (c *singleCursor[T]) TryAdvance() (bool, error) {
	return c.advance(false)
}

func (c *singleCursor[T]) advance(block bool) (bool, error) {
	if !c.busy.CompareAndSwap(0, 1) {
		// Held for good once the queue was released after Dispose.
		return false, nil
	}
	ok, err := c.pull(block)
	c.busy.Store(0)
	if c.hub.disposed.Load() != 0 {
		c.release()
	}
	return ok, err
}

func (c *singleCursor[T]) pull(block bool) (bool, error) {
	h := c.hub
	for {
		if h.disposed.Load() != 0 {
			return false, nil
		}
		// The terminal is loaded before dequeuing: items enqueued before it
		// was recorded are then visible to the dequeue.
		t := h.term.Load()
		if v, ok := h.q.dequeue(); ok {
			c.current = v
			return true, nil
		}
		if t != nil {
			return t.result()
		}
		if block {
			h.rv.wait()
		} else if !h.rv.try() {
			return false, iox.ErrWouldBlock
		}
		h.rv.reset()
	}
}

// release drops the items still buffered after Dispose. Whichever of Dispose
// or a returning Advance claims busy first does the work.
func (c *singleCursor[T]) release() {
	if !c.busy.CompareAndSwap(0, 1) {
		return
	}
	h := c.hub
	dropped := 0
	for {
		if _, ok := h.q.dequeue(); !ok {
			break
		}
		dropped++
	}
	if dropped > 0 {
		h.log.Debug("Single cursor dropped buffered items", "hub", h.serial, "cursor", c.serial, "dropped", dropped)
	}
}

func (c *singleCursor[T]) Current() T {
	return c.current
}

// Dispose detaches the consumer permanently and drops the buffered items.
// Later push calls are no-ops.
func (c *singleCursor[T]) Dispose() {
	h := c.hub
	if !h.disposed.CompareAndSwap(0, 1) {
		return
	}
	h.rv.signal()
	c.release()
	h.log.Debug("Single cursor disposed", "hub", h.serial, "cursor", c.serial)
}

func (c *singleCursor[T]) Serial() Serial {
	return c.serial
}

// rejectedCursor is handed to every consumer after the first.
type rejectedCursor[T any] struct {
	serial Serial
}

func (rejectedCursor[T]) Advance() (bool, error) {
	return false, ErrAlreadyAttached
}

func (rejectedCursor[T]) TryAdvance() (bool, error) {
	return false, ErrAlreadyAttached
}

func (rejectedCursor[T]) Current() T {
	var zero T
	return zero
}

func (rejectedCursor[T]) Dispose() {}

func (r rejectedCursor[T]) Serial() Serial {
	return r.serial
}
