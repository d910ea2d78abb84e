// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import "code.hybscloud.com/atomix"

const (
	rvFresh uint32 = iota
	rvSignaled
)

// rendezvous is a single-slot resettable one-shot signal.
//
// signal either resumes a suspended wait or leaves the slot satisfied so the
// next wait returns at once. Between two resets the slot is satisfied at most
// once: the state transition fresh→signaled admits exactly one token into ch,
// and later signals are dropped until the waiter calls reset.
//
// Only the waiting side calls wait, try and reset, and it calls reset only
// after consuming the token.
type rendezvous struct {
	state atomix.Uint32
	ch    chan struct{}
}

func (r *rendezvous) init() {
	r.ch = make(chan struct{}, 1)
}

// signal satisfies the slot. It never blocks.
func (r *rendezvous) signal() {
	if r.state.CompareAndSwap(rvFresh, rvSignaled) {
		r.ch <- struct{}{}
	}
}

// wait suspends until the slot is satisfied and consumes the token.
func (r *rendezvous) wait() {
	<-r.ch
}

// try consumes the token if the slot is satisfied.
func (r *rendezvous) try() bool {
	select {
	case <-r.ch:
		return true
	default:
		return false
	}
}

// reset re-arms the slot after its token was consumed.
func (r *rendezvous) reset() {
	r.state.Store(rvFresh)
}
