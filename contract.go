// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

// Cursor is one consumer's attachment to a [Source].
//
// A cursor is owned by a single consumer goroutine; Advance, TryAdvance and
// Current must not be called concurrently with each other. Dispose may be
// called from any goroutine, any number of times.
type Cursor[T any] interface {
	// Advance suspends until the next outcome is available.
	// It returns (true, nil) when Current holds a new item,
	// (false, nil) at the end of the sequence and (false, err) on a fault.
	Advance() (bool, error)

	// TryAdvance is the non-blocking form of Advance.
	// It returns iox.ErrWouldBlock when no outcome is ready yet.
	TryAdvance() (bool, error)

	// Current returns the item captured by the last successful Advance.
	Current() T

	// Dispose detaches the cursor. Advance reports the end of the sequence
	// afterwards.
	Dispose()

	// Serial returns the cursor's identity.
	Serial() Serial
}

// Source is the pull side of a hub.
type Source[T any] interface {
	Cursor() Cursor[T]
}

// Sink is the push side of a hub.
//
// Calls follow the grammar Next* (Error | Complete)? and must not overlap:
// each call returns before the next one is issued.
type Sink[T any] interface {
	Next(v T)
	Error(err error)
	Complete()
}

// Hub is both a [Sink] and a [Source].
type Hub[T any] interface {
	Source[T]
	Sink[T]
}

// Kind tags an [Outcome].
type Kind uint8

const (
	// KindItem carries a value.
	KindItem Kind = iota
	// KindFault carries the fault that ended the sequence for this cursor.
	KindFault
	// KindEnd marks the end of the sequence.
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindFault:
		return "fault"
	case KindEnd:
		return "end"
	}
	return "unknown"
}

// Outcome is one result of advancing a cursor.
type Outcome[T any] struct {
	Value T
	Err   error
	Kind  Kind
}

// IsItem reports whether o carries a value.
func (o Outcome[T]) IsItem() bool { return o.Kind == KindItem }

// IsFault reports whether o carries a fault.
func (o Outcome[T]) IsFault() bool { return o.Kind == KindFault }

// IsEnd reports whether o marks the end of the sequence.
func (o Outcome[T]) IsEnd() bool { return o.Kind == KindEnd }

// Receive advances c and returns the result as an [Outcome].
func Receive[T any](c Cursor[T]) Outcome[T] {
	ok, err := c.Advance()
	return outcomeOf(c, ok, err)
}

func outcomeOf[T any](c Cursor[T], ok bool, err error) Outcome[T] {
	switch {
	case err != nil:
		return Outcome[T]{Err: err, Kind: KindFault}
	case ok:
		return Outcome[T]{Value: c.Current(), Kind: KindItem}
	}
	return Outcome[T]{Kind: KindEnd}
}

// terminal is the recorded end of a sequence.
// A nil err means completion.
type terminal struct {
	err error
}

var completed = &terminal{}

// result converts t into the values returned by Advance.
func (t *terminal) result() (bool, error) {
	return false, t.err
}
