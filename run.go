// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// suspendingSink is implemented by sinks whose push calls wait on consumers.
type suspendingSink interface {
	pushSuspends()
}

// Run attaches a cursor to h, then runs producer against h's push side and
// consumer against the cursor. Both protocols are interleaved on the calling
// goroutine, using adaptive backoff (iox.Backoff) when neither side can make
// progress. The cursor is disposed before Run returns.
//
// The push side of h must never suspend: Run panics for a [Broadcast], whose
// Next would wait on a consumer running on the same goroutine.
func Run[T, A, B any](h Hub[T], producer kont.Eff[A], consumer kont.Eff[B]) (A, B) {
	if _, ok := h.(suspendingSink); ok {
		panic("hub: Run requires a hub whose push side never suspends")
	}
	cur := h.Cursor()
	defer cur.Dispose()
	pp := NewPort[T](h, nil)
	cp := NewPort[T](nil, cur)

	resultA, suspA := Step(producer)
	resultB, suspB := Step(consumer)
	var bo iox.Backoff
	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(pp, suspA)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(cp, suspB)
			if err == nil {
				progress = true
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return resultA, resultB
}
