// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub_test

import (
	"testing"

	"code.hybscloud.com/hub"
)

// BenchmarkReplayNextAdvance measures one push and one read on a replay hub.
func BenchmarkReplayNextAdvance(b *testing.B) {
	h := hub.NewReplaySize[int](1024)
	c := h.Cursor()
	defer c.Dispose()
	b.ReportAllocs()
	for b.Loop() {
		h.Next(1)
		c.Advance()
	}
}

// BenchmarkSingleNextAdvance measures one push and one read on a single-consumer hub.
func BenchmarkSingleNextAdvance(b *testing.B) {
	h := hub.NewSingle[int]()
	c := h.Cursor()
	defer c.Dispose()
	b.ReportAllocs()
	for b.Loop() {
		h.Next(1)
		c.Advance()
	}
}

// BenchmarkBroadcastHandshake measures one push and one read through the
// broadcast handshake on a single goroutine.
func BenchmarkBroadcastHandshake(b *testing.B) {
	h := hub.NewBroadcast[int]()
	c := h.Cursor()
	defer c.Dispose()
	b.ReportAllocs()
	for b.Loop() {
		h.Next(1)
		c.Advance()
	}
}

// BenchmarkRunEmitCollect measures a 64-item effect pipeline through a replay hub.
func BenchmarkRunEmitCollect(b *testing.B) {
	payload := seq(1, 64)
	b.ReportAllocs()
	for b.Loop() {
		hub.Run(hub.NewReplay[int](), hub.EmitAll(payload), hub.Collect[int]())
	}
}
