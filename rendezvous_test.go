// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"testing"
	"time"
)

func TestRendezvousSignalBeforeWait(t *testing.T) {
	var r rendezvous
	r.init()
	r.signal()

	done := make(chan struct{})
	go func() {
		r.wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("wait did not observe earlier signal")
	}
}

func TestRendezvousWaitBeforeSignal(t *testing.T) {
	var r rendezvous
	r.init()

	done := make(chan struct{})
	go func() {
		r.wait()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("wait returned before signal")
	case <-time.After(50 * time.Millisecond):
	}
	r.signal()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("signal did not resume waiter")
	}
}

func TestRendezvousSingleSatisfaction(t *testing.T) {
	var r rendezvous
	r.init()
	r.signal()
	r.signal()

	if !r.try() {
		t.Fatal("expected satisfied slot")
	}
	if r.try() {
		t.Fatal("slot satisfied twice without reset")
	}
	// Signals before reset are dropped.
	r.signal()
	if r.try() {
		t.Fatal("signal before reset satisfied the slot")
	}
	r.reset()
	if r.try() {
		t.Fatal("reset left the slot satisfied")
	}
	r.signal()
	if !r.try() {
		t.Fatal("signal after reset was lost")
	}
}

// TestRendezvousPingPong alternates two slots between goroutines so that
// signals race ahead of and behind the matching waits.
func TestRendezvousPingPong(t *testing.T) {
	const rounds = 20000
	var ping, pong rendezvous
	ping.init()
	pong.init()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range rounds {
			ping.wait()
			ping.reset()
			pong.signal()
		}
	}()
	for range rounds {
		ping.signal()
		pong.wait()
		pong.reset()
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ping-pong lost a signal")
	}
}
