// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"code.hybscloud.com/kont"
)

// terminator is the non-generic part of a [Sink].
type terminator interface {
	Error(err error)
	Complete()
}

// portContext holds the hub sides a port dispatches effects to.
// sink holds a Sink[T] and cursor a Cursor[T] for the port's T.
type portContext struct {
	sink   any
	term   terminator
	cursor any
}

// portDispatcher is the structural interface for hub effect operations.
// With block false, DispatchPort does not suspend on the pull side and
// returns iox.ErrWouldBlock when no outcome is ready.
type portDispatcher interface {
	DispatchPort(ctx *portContext, block bool) (kont.Resumed, error)
}

// portHandler implements kont.Handler for hub effects with blocking dispatch.
// Value type: passed on the stack, avoiding heap allocation.
type portHandler[R any] struct {
	ctx *portContext
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h portHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	pop, ok := op.(portDispatcher)
	if !ok {
		panic("hub: unhandled effect in portHandler")
	}
	v, _ := pop.DispatchPort(h.ctx, true)
	return v, true
}

// Port binds a sink, a cursor, or both, as the target of hub effects.
// Push effects ([Emit], [Fail], [Finish]) go to the sink and [Take] to the cursor.
type Port struct {
	ctx    portContext
	serial Serial
}

// NewPort binds sink and cur. Either may be nil for a push-only or
// pull-only port; dispatching to a missing side panics.
func NewPort[T any](sink Sink[T], cur Cursor[T]) *Port {
	p := &Port{serial: nextSerial()}
	if sink != nil {
		p.ctx.sink = sink
		p.ctx.term = sink
	}
	if cur != nil {
		p.ctx.cursor = cur
	}
	return p
}

// Serial returns the port's identity.
func (p *Port) Serial() Serial {
	return p.serial
}

func sinkOf[T any](ctx *portContext) Sink[T] {
	s, ok := ctx.sink.(Sink[T])
	if !ok {
		panic("hub: port has no sink for this element type")
	}
	return s
}

func terminatorOf(ctx *portContext) terminator {
	if ctx.term == nil {
		panic("hub: port has no sink")
	}
	return ctx.term
}

func cursorOf[T any](ctx *portContext) Cursor[T] {
	c, ok := ctx.cursor.(Cursor[T])
	if !ok {
		panic("hub: port has no cursor for this element type")
	}
	return c
}
