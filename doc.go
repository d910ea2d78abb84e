// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package hub provides in-process streaming hubs that bridge push-style
// producers to pull-style consumers with explicit backpressure and
// terminal-signal semantics.
//
// A hub is a [Sink] on the producer side and a [Source] on the consumer side.
// Producers call Next* followed by at most one of Error or Complete.
// Consumers attach a [Cursor] and call Advance until it reports the end
// of the sequence or a fault.
//
// # Architecture
//
//   - Broadcast: [Broadcast] hands each item to every attached cursor in turn.
//     The producer waits on each cursor's handshake, so a slow consumer stalls the rest.
//   - Replay: [Replay] retains items and the terminal signal. Every cursor replays the
//     retained history at its own pace. Retention is unbounded, size-capped, age-capped or both.
//   - Single: [Single] buffers into an unbounded lock-free FIFO for exactly one consumer.
//     A second attach fails on its first Advance with [ErrAlreadyAttached].
//   - Registry: attached cursors live in a copy-on-write snapshot mutated by compare-and-swap,
//     so fan-out never blocks on attach or dispose.
//
// # Outcomes
//
// Advance reports exactly one of three outcomes: an item (true, nil),
// the end of the sequence (false, nil) or a fault (false, err).
// [Receive] folds the pair into an [Outcome]. A producer-supplied fault is
// delivered verbatim to every cursor that reaches it, once per cursor.
//
// # Integration
//
//   - Non-blocking: [Cursor.TryAdvance] returns [code.hybscloud.com/iox.ErrWouldBlock]
//     instead of suspending, so cursors can be polled from a proactor loop.
//   - Effects: [Emit], [Fail], [Finish] and [Take] expose hubs as [code.hybscloud.com/kont]
//     effects. Bind them to a [Port] and evaluate with [Exec], or step with [Step] and [Advance].
//   - [Run] interleaves a producer and a consumer protocol on the calling goroutine.
//
// # Example
//
//	h := hub.NewReplay[int]()
//	h.Next(1)
//	h.Next(2)
//	h.Complete()
//
//	c := h.Cursor()
//	defer c.Dispose()
//	for {
//		ok, err := c.Advance()
//		if err != nil || !ok {
//			break
//		}
//		fmt.Println(c.Current())
//	}
package hub
