// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive hub protocol.
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if s, ok := e.GetLeft(); ok {
			return Loop(s, step)
		}
		a, _ := e.GetRight()
		return kont.Pure(a)
	})
}

// EmitAll pushes every value of vs in order, then completes the sink.
func EmitAll[T any](vs []T) kont.Eff[struct{}] {
	return Loop(vs, func(rest []T) kont.Eff[kont.Either[[]T, struct{}]] {
		if len(rest) == 0 {
			return FinishDone(kont.Right[[]T](struct{}{}))
		}
		return EmitThen(rest[0], kont.Pure(kont.Left[[]T, struct{}](rest[1:])))
	})
}

// Collect pulls until the end of the sequence.
// It returns Right(items) on completion and Left(err) on a fault;
// items received before a fault are discarded.
func Collect[T any]() kont.Eff[kont.Either[error, []T]] {
	return Loop([]T(nil), func(acc []T) kont.Eff[kont.Either[[]T, kont.Either[error, []T]]] {
		return TakeBind(func(o Outcome[T]) kont.Eff[kont.Either[[]T, kont.Either[error, []T]]] {
			switch o.Kind {
			case KindItem:
				return kont.Pure(kont.Left[[]T, kont.Either[error, []T]](append(acc, o.Value)))
			case KindFault:
				return kont.Pure(kont.Right[[]T](kont.Left[error, []T](o.Err)))
			}
			return kont.Pure(kont.Right[[]T](kont.Right[error](acc)))
		})
	})
}
