// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"code.hybscloud.com/kont"
)

// EmitThen pushes v and then continues with next.
// Fuses Perform(Emit[T]{Value: v}) + Then.
func EmitThen[T, B any](v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Emit[T]{Value: v}), next)
}

// TakeBind pulls the next outcome and passes it to f.
// Fuses Perform(Take[T]{}) + Bind.
func TakeBind[T, B any](f func(Outcome[T]) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Take[T]{}), f)
}

// FailDone terminates the sink with err and returns a.
// Fuses Perform(Fail{Err: err}) + Then + Pure.
func FailDone[A any](err error, a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Fail{Err: err}), kont.Pure(a))
}

// FinishDone completes the sink and returns a.
// Fuses Perform(Finish{}) + Then + Pure.
func FinishDone[A any](a A) kont.Eff[A] {
	return kont.Then(kont.Perform(Finish{}), kont.Pure(a))
}
