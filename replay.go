// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"log/slog"
	"sync/atomic"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Replay retains pushed items and the terminal signal, and lets every cursor
// read the retained history from the start at its own pace.
//
// Producer calls never suspend. Retention is unbounded unless the hub was
// created with [NewReplaySize], [NewReplayAge] or [NewReplaySizeAge]. With a
// bound, items are evicted from the front on each push, and an age bound also
// hides items that expire while nothing is pushed. A cursor that has not yet
// read an evicted item fails with a [*LaggedError], which ends its sequence.
type Replay[T any] struct {
	win    atomic.Pointer[window[T]]
	subs   registry[*replayCursor[T]]
	keep   retention
	now    func() time.Time
	log    *slog.Logger
	serial Serial
}

// NewReplay creates a replay hub that retains every item for its lifetime.
func NewReplay[T any](opts ...Option) *Replay[T] {
	return newReplay[T](retention{}, opts)
}

// NewReplaySize creates a replay hub that retains the newest n items.
// NewReplaySize panics if n is not positive.
func NewReplaySize[T any](n int, opts ...Option) *Replay[T] {
	if n <= 0 {
		panic("hub: replay size must be positive")
	}
	return newReplay[T](retention{maxItems: n}, opts)
}

// NewReplayAge creates a replay hub that retains items pushed within the
// last d, as measured by the clock set with [WithClock].
// NewReplayAge panics if d is not positive.
func NewReplayAge[T any](d time.Duration, opts ...Option) *Replay[T] {
	if d <= 0 {
		panic("hub: replay age must be positive")
	}
	return newReplay[T](retention{maxAge: d}, opts)
}

// NewReplaySizeAge creates a replay hub that retains at most n items, none
// older than d. It panics if n or d is not positive.
func NewReplaySizeAge[T any](n int, d time.Duration, opts ...Option) *Replay[T] {
	if n <= 0 {
		panic("hub: replay size must be positive")
	}
	if d <= 0 {
		panic("hub: replay age must be positive")
	}
	return newReplay[T](retention{maxItems: n, maxAge: d}, opts)
}

func newReplay[T any](keep retention, opts []Option) *Replay[T] {
	o := buildOptions(opts)
	h := &Replay[T]{keep: keep, now: o.now, log: o.log, serial: nextSerial()}
	h.win.Store(&window[T]{})
	h.subs.init()
	return h
}

// Serial returns the hub's identity.
func (h *Replay[T]) Serial() Serial {
	return h.serial
}

// Len returns the number of retained items that have not expired.
func (h *Replay[T]) Len() int {
	w := h.win.Load()
	return int(w.end() - h.floor(w))
}

// floor returns the absolute index of the oldest item of w that is still
// readable. For age-capped hubs it moves with the clock, also after
// termination.
func (h *Replay[T]) floor(w *window[T]) uint64 {
	if !h.keep.aged() {
		return w.base
	}
	return w.base + uint64(expired(w.items, h.keep, h.now()))
}

// Cursor attaches a cursor positioned at the oldest retained item that has
// not expired.
func (h *Replay[T]) Cursor() Cursor[T] {
	c := &replayCursor[T]{hub: h, serial: nextSerial()}
	c.rv.init()
	c.next = h.floor(h.win.Load())
	// A frozen registry means the terminal is already visible to the cursor.
	h.subs.add(c)
	return c
}

// Next appends v and wakes attached cursors. It never suspends.
// Next is a no-op after termination.
func (h *Replay[T]) Next(v T) {
	w := h.win.Load()
	if w.term != nil {
		return
	}
	e := entry[T]{value: v}
	if h.keep.aged() {
		e.at = h.now()
	}
	next := appended(w, e, h.keep)
	h.win.Store(next)
	if next.base != w.base {
		h.log.Debug("Replay hub evicted items", "hub", h.serial, "evicted", next.base-w.base, "retained", len(next.items))
	}
	for _, c := range h.subs.snapshot() {
		c.rv.signal()
	}
}

// Error terminates the hub with err. Only the first terminal call has an effect.
// Error panics if err is nil.
func (h *Replay[T]) Error(err error) {
	if err == nil {
		panic("hub: Error called with nil error")
	}
	h.terminate(&terminal{err: err})
}

// Complete terminates the hub. Only the first terminal call has an effect.
func (h *Replay[T]) Complete() {
	h.terminate(completed)
}

func (h *Replay[T]) terminate(t *terminal) {
	w := h.win.Load()
	if w.term != nil {
		return
	}
	var now time.Time
	if h.keep.aged() {
		now = h.now()
	}
	h.win.Store(terminated(w, t, h.keep, now))
	subs := h.subs.freeze()
	h.log.Debug("Replay hub terminated", "hub", h.serial, "subscribers", len(subs), "err", t.err)
	for _, c := range subs {
		c.rv.signal()
	}
}

// replayCursor reads the shared window at its own absolute position.
// Its rendezvous slot doubles as the pending-signal count collapsed to one
// bit: every read re-checks the published window, so one pending wakeup
// covers any number of pushes.
type replayCursor[T any] struct {
	hub      *Replay[T]
	rv       rendezvous
	next     uint64
	current  T
	lagged   *LaggedError
	disposed atomix.Uint32
	serial   Serial
}

func (c *replayCursor[T]) Advance() (bool, error) {
	return c.advance(true)
}

func (c *replayCursor[T]) TryAdvance() (bool, error) {
	return c.advance(false)
}

func (c *replayCursor[T]) advance(block bool) (bool, error) {
	for {
		if c.disposed.Load() != 0 {
			return false, nil
		}
		if c.lagged != nil {
			return false, c.lagged
		}
		w := c.hub.win.Load()
		if floor := c.hub.floor(w); c.next < floor {
			c.lagged = &LaggedError{Missed: floor - c.next}
			c.hub.subs.remove(c)
			c.hub.log.Debug("Replay cursor lagged", "hub", c.hub.serial, "cursor", c.serial, "missed", c.lagged.Missed)
			return false, c.lagged
		}
		if c.next < w.end() {
			c.current = w.at(c.next)
			c.next++
			return true, nil
		}
		if w.term != nil {
			return w.term.result()
		}
		if block {
			c.rv.wait()
		} else if !c.rv.try() {
			return false, iox.ErrWouldBlock
		}
		c.rv.reset()
	}
}

func (c *replayCursor[T]) Current() T {
	return c.current
}

// Dispose detaches c and wakes an Advance suspended on another goroutine.
func (c *replayCursor[T]) Dispose() {
	if !c.disposed.CompareAndSwap(0, 1) {
		return
	}
	c.hub.subs.remove(c)
	c.rv.signal()
	c.hub.log.Debug("Replay cursor disposed", "hub", c.hub.serial, "cursor", c.serial)
}

func (c *replayCursor[T]) Serial() Serial {
	return c.serial
}
