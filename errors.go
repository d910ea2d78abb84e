// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"errors"
	"strconv"
)

// ErrAlreadyAttached is returned by every Advance of a cursor that was
// rejected by a [Single] hub because another consumer attached first.
var ErrAlreadyAttached = errors.New("hub: single-consumer hub already has a consumer")

// ErrLagged matches any [*LaggedError] via errors.Is.
var ErrLagged = errors.New("hub: cursor fell behind the retention window")

// LaggedError is returned by a bounded [Replay] cursor whose next item was
// evicted or expired before it was read. The lag ends the cursor's sequence:
// every later Advance returns the same error.
type LaggedError struct {
	Missed uint64
}

func (e *LaggedError) Error() string {
	return "hub: cursor fell behind the retention window by " + strconv.FormatUint(e.Missed, 10) + " items"
}

// Is reports whether target is [ErrLagged].
func (e *LaggedError) Is(target error) bool {
	return target == ErrLagged
}
