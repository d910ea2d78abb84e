// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Emit is the effect operation for pushing a value of type T.
// Perform(Emit[T]{Value: v}) calls Next(v) on the port's sink.
type Emit[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// DispatchPort handles Emit on the port's sink.
// Emit suspends only if the sink does ([Broadcast]).
func (e Emit[T]) DispatchPort(ctx *portContext, _ bool) (kont.Resumed, error) {
	sinkOf[T](ctx).Next(e.Value)
	return struct{}{}, nil
}

// Fail is the effect operation for terminating the sink with an error.
type Fail struct {
	kont.Phantom[struct{}]
	Err error
}

// DispatchPort handles Fail on the port's sink.
func (f Fail) DispatchPort(ctx *portContext, _ bool) (kont.Resumed, error) {
	terminatorOf(ctx).Error(f.Err)
	return struct{}{}, nil
}

// Finish is the effect operation for completing the sink.
type Finish struct {
	kont.Phantom[struct{}]
}

// DispatchPort handles Finish on the port's sink.
func (Finish) DispatchPort(ctx *portContext, _ bool) (kont.Resumed, error) {
	terminatorOf(ctx).Complete()
	return struct{}{}, nil
}

// Take is the effect operation for pulling the next outcome of type T.
// Perform(Take[T]{}) resumes with an [Outcome] from the port's cursor.
type Take[T any] struct {
	kont.Phantom[Outcome[T]]
}

// DispatchPort handles Take on the port's cursor.
// Non-blocking dispatch returns iox.ErrWouldBlock when no outcome is ready.
func (Take[T]) DispatchPort(ctx *portContext, block bool) (kont.Resumed, error) {
	c := cursorOf[T](ctx)
	var (
		ok  bool
		err error
	)
	if block {
		ok, err = c.Advance()
	} else {
		ok, err = c.TryAdvance()
		if iox.IsWouldBlock(err) {
			return nil, err
		}
	}
	return outcomeOf(c, ok, err), nil
}

