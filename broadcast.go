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

// Broadcast fans each item out to every attached cursor.
//
// Delivery is a handshake per cursor, in attach order: the producer waits
// until the cursor has consumed its previous item, hands over the new one and
// moves on. A cursor that stops advancing without disposing therefore stalls
// the producer and every cursor after it.
//
// Cursors see only items pushed after they attach. A cursor attached after
// termination reports the terminal outcome at once.
type Broadcast[T any] struct {
	subs   registry[*broadcastCursor[T]]
	term   atomic.Pointer[terminal]
	log    *slog.Logger
	serial Serial
}

// NewBroadcast creates a broadcast hub.
func NewBroadcast[T any](opts ...Option) *Broadcast[T] {
	o := buildOptions(opts)
	h := &Broadcast[T]{log: o.log, serial: nextSerial()}
	h.subs.init()
	return h
}

// Serial returns the hub's identity.
func (h *Broadcast[T]) Serial() Serial {
	return h.serial
}

// Subscribers returns the number of attached cursors.
func (h *Broadcast[T]) Subscribers() int {
	return h.subs.len()
}

// Cursor attaches a new cursor.
func (h *Broadcast[T]) Cursor() Cursor[T] {
	c := &broadcastCursor[T]{hub: h, serial: nextSerial()}
	c.ready.init()
	c.consumed.init()
	c.consumed.signal()
	if !h.subs.add(c) {
		// The registry is frozen only after the terminal is recorded.
		c.done = h.term.Load()
	}
	return c
}

// Next delivers v to every attached cursor. It suspends on each cursor
// until that cursor is ready to take v.
// Next is a no-op after termination.
func (h *Broadcast[T]) Next(v T) {
	if h.term.Load() != nil {
		return
	}
	for _, c := range h.subs.snapshot() {
		h.deliver(c, v, nil)
	}
}

// Error terminates the hub with err. Only the first terminal call has an effect.
// Error panics if err is nil.
func (h *Broadcast[T]) Error(err error) {
	if err == nil {
		panic("hub: Error called with nil error")
	}
	h.terminate(&terminal{err: err})
}

// Complete terminates the hub. Only the first terminal call has an effect.
func (h *Broadcast[T]) Complete() {
	h.terminate(completed)
}

func (h *Broadcast[T]) terminate(t *terminal) {
	if !h.term.CompareAndSwap(nil, t) {
		return
	}
	subs := h.subs.freeze()
	h.log.Debug("Broadcast hub terminated", "hub", h.serial, "subscribers", len(subs), "err", t.err)
	var zero T
	for _, c := range subs {
		h.deliver(c, zero, t)
	}
}

// deliver runs one handshake with c. A disposed cursor is skipped, including
// one disposed while deliver is waiting on it.
func (h *Broadcast[T]) deliver(c *broadcastCursor[T], v T, t *terminal) {
	if c.disposed.Load() != 0 {
		return
	}
	c.consumed.wait()
	c.consumed.reset()
	if c.disposed.Load() != 0 {
		return
	}
	if t != nil {
		c.term = t
	} else {
		c.slot = v
	}
	c.ready.signal()
}

func (h *Broadcast[T]) pushSuspends() {}

// broadcastCursor alternates between awaiting a value (ready) and
// letting the producer hand over the next one (consumed).
type broadcastCursor[T any] struct {
	hub      *Broadcast[T]
	ready    rendezvous
	consumed rendezvous
	slot     T
	term     *terminal
	current  T
	done     *terminal
	disposed atomix.Uint32
	serial   Serial
}

func (c *broadcastCursor[T]) Advance() (bool, error) {
	return c.advance(true)
}

func (c *broadcastCursor[T]) TryAdvance() (bool, error) {
	return c.advance(false)
}

func (c *broadcastCursor[T]) advance(block bool) (bool, error) {
	if c.disposed.Load() != 0 {
		return false, nil
	}
	if c.done != nil {
		return c.done.result()
	}
	if block {
		c.ready.wait()
	} else if !c.ready.try() {
		return false, iox.ErrWouldBlock
	}
	c.ready.reset()
	if c.disposed.Load() != 0 {
		return false, nil
	}
	if c.term != nil {
		c.done = c.term
		return c.done.result()
	}
	c.current = c.slot
	var zero T
	c.slot = zero
	c.consumed.signal()
	return true, nil
}

func (c *broadcastCursor[T]) Current() T {
	return c.current
}

// Dispose removes c from future fan-out and releases a producer blocked
// delivering to it, as well as an Advance suspended on another goroutine.
func (c *broadcastCursor[T]) Dispose() {
	if !c.disposed.CompareAndSwap(0, 1) {
		return
	}
	c.hub.subs.remove(c)
	c.consumed.signal()
	c.ready.signal()
	c.hub.log.Debug("Broadcast cursor disposed", "hub", c.hub.serial, "cursor", c.serial)
}

func (c *broadcastCursor[T]) Serial() Serial {
	return c.serial
}
