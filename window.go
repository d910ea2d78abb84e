// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import "time"

// entry is one retained item. at is zero unless retention is age-capped.
type entry[T any] struct {
	value T
	at    time.Time
}

// window is an immutable view of a replay buffer.
//
// items[i] holds the item with absolute index base+i. Successive windows may
// share a backing array: the producer only ever writes past the end of the
// newest published window, so slots visible through any published window are
// never written again.
type window[T any] struct {
	items []entry[T]
	base  uint64
	term  *terminal
}

// end returns the absolute index one past the newest retained item.
func (w *window[T]) end() uint64 {
	return w.base + uint64(len(w.items))
}

// at returns the item with absolute index i. i must be in [base, end).
func (w *window[T]) at(i uint64) T {
	return w.items[i-w.base].value
}

// retention bounds a replay buffer. Zero fields mean no bound.
type retention struct {
	maxItems int
	maxAge   time.Duration
}

func (r retention) aged() bool {
	return r.maxAge > 0
}

// appended returns the window that follows w after pushing e.
func appended[T any](w *window[T], e entry[T], r retention) *window[T] {
	items := w.items
	if len(items) == cap(items) {
		grown := make([]entry[T], len(items), max(2*len(items), 8))
		copy(grown, items)
		items = grown
	}
	items = append(items, e)
	items, base := trimmed(items, w.base, r, e.at)
	return &window[T]{items: items, base: base}
}

// terminated returns w sealed with t, trimmed as of now.
func terminated[T any](w *window[T], t *terminal, r retention, now time.Time) *window[T] {
	items, base := trimmed(w.items, w.base, r, now)
	return &window[T]{items: items, base: base, term: t}
}

// trimmed drops entries from the front of items until they satisfy r.
// An entry exactly maxAge old is retained.
func trimmed[T any](items []entry[T], base uint64, r retention, now time.Time) ([]entry[T], uint64) {
	drop := 0
	if r.maxItems > 0 && len(items) > r.maxItems {
		drop = len(items) - r.maxItems
	}
	if r.aged() {
		drop += expired(items[drop:], r, now)
	}
	return items[drop:], base + uint64(drop)
}

// expired counts the leading entries of items older than r.maxAge at now.
func expired[T any](items []entry[T], r retention, now time.Time) int {
	cutoff := now.Add(-r.maxAge)
	n := 0
	for n < len(items) && items[n].at.Before(cutoff) {
		n++
	}
	return n
}
