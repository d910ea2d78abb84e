// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"slices"
	"sync/atomic"

	"code.hybscloud.com/iox"
)

// snapshot is an immutable view of the attached cursors.
type snapshot[S comparable] struct {
	items  []S
	frozen bool
}

// registry is a lock-free copy-on-write set of attached cursors.
//
// Every mutation builds a new snapshot and publishes it with compare-and-swap,
// retrying with adaptive backoff on contention. Readers load one snapshot and
// iterate it without synchronization. An item added while a fan-out is
// iterating an older snapshot may or may not observe that fan-out.
type registry[S comparable] struct {
	p atomic.Pointer[snapshot[S]]
}

func (r *registry[S]) init() {
	r.p.Store(&snapshot[S]{})
}

// add publishes a snapshot containing s.
// It returns false once the registry is frozen.
func (r *registry[S]) add(s S) bool {
	var bo iox.Backoff
	for {
		cur := r.p.Load()
		if cur.frozen {
			return false
		}
		items := make([]S, len(cur.items), len(cur.items)+1)
		copy(items, cur.items)
		items = append(items, s)
		if r.p.CompareAndSwap(cur, &snapshot[S]{items: items}) {
			return true
		}
		bo.Wait()
	}
}

// remove publishes a snapshot without s. Removing an absent item is a no-op.
func (r *registry[S]) remove(s S) {
	var bo iox.Backoff
	for {
		cur := r.p.Load()
		i := slices.Index(cur.items, s)
		if i < 0 {
			return
		}
		var next *snapshot[S]
		if len(cur.items) == 1 {
			next = &snapshot[S]{}
		} else {
			items := make([]S, 0, len(cur.items)-1)
			items = append(items, cur.items[:i]...)
			items = append(items, cur.items[i+1:]...)
			next = &snapshot[S]{items: items}
		}
		if r.p.CompareAndSwap(cur, next) {
			return
		}
		bo.Wait()
	}
}

// freeze seals the registry and returns the items attached at that moment.
// Only the first call observes them; later calls return nil.
func (r *registry[S]) freeze() []S {
	prev := r.p.Swap(&snapshot[S]{frozen: true})
	if prev.frozen {
		return nil
	}
	return prev.items
}

// snapshot returns the currently attached items. The slice must not be modified.
func (r *registry[S]) snapshot() []S {
	return r.p.Load().items
}

// len returns the number of attached items.
func (r *registry[S]) len() int {
	return len(r.p.Load().items)
}
