// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub_test

import (
	"testing"
	"time"

	"code.hybscloud.com/hub"
	"github.com/neilotoole/slogt"
)

// soon bounds every wait for something that must happen.
const soon = 5 * time.Second

// settle is how long a test waits before concluding that a goroutine is blocked.
const settle = 50 * time.Millisecond

// drain advances c until the end of the sequence or a fault.
func drain[T any](c hub.Cursor[T]) ([]T, error) {
	var out []T
	for {
		ok, err := c.Advance()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, c.Current())
	}
}

type drained[T any] struct {
	items []T
	err   error
}

// drainAsync drains c on a new goroutine.
func drainAsync[T any](c hub.Cursor[T]) <-chan drained[T] {
	ch := make(chan drained[T], 1)
	go func() {
		items, err := drain(c)
		ch <- drained[T]{items: items, err: err}
	}()
	return ch
}

func receiveSoon[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(soon):
		t.Fatal("timed out waiting for receive")
	}
	panic("unreachable")
}

// notDone fails t if ch delivers within settle.
func notDone[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("expected goroutine to be blocked, got %v", v)
	case <-time.After(settle):
	}
}

// goDone runs fn on a new goroutine and returns a channel closed when it returns.
func goDone(fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	return done
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func logOpt(t *testing.T) hub.Option {
	return hub.WithLogger(slogt.New(t))
}
