// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"slices"
	"sync"
	"testing"
)

func TestRegistryAddRemove(t *testing.T) {
	var r registry[*int]
	r.init()
	a, b, c := new(int), new(int), new(int)

	for _, p := range []*int{a, b, c} {
		if !r.add(p) {
			t.Fatal("add on open registry failed")
		}
	}
	before := r.snapshot()
	r.remove(b)
	if got := r.snapshot(); !slices.Equal(got, []*int{a, c}) {
		t.Fatalf("after remove got %v", got)
	}
	if !slices.Equal(before, []*int{a, b, c}) {
		t.Fatal("published snapshot was mutated")
	}
	r.remove(b)
	if r.len() != 2 {
		t.Fatalf("removing an absent item changed len to %d", r.len())
	}
	r.remove(a)
	r.remove(c)
	r.remove(c)
	if r.len() != 0 {
		t.Fatalf("len = %d, want 0", r.len())
	}
}

func TestRegistryFreeze(t *testing.T) {
	var r registry[*int]
	r.init()
	a, b := new(int), new(int)
	r.add(a)
	r.add(b)

	prior := r.freeze()
	if !slices.Equal(prior, []*int{a, b}) {
		t.Fatalf("freeze returned %v", prior)
	}
	if r.add(new(int)) {
		t.Fatal("add succeeded after freeze")
	}
	if r.freeze() != nil {
		t.Fatal("second freeze returned items")
	}
	r.remove(a)
	if r.len() != 0 {
		t.Fatal("frozen registry is not empty")
	}
}

func TestRegistryConcurrentAddRemove(t *testing.T) {
	const n = 64
	var r registry[*int]
	r.init()
	keep := make([]*int, n)
	drop := make([]*int, n)
	for i := range n {
		keep[i], drop[i] = new(int), new(int)
	}

	var wg sync.WaitGroup
	for i := range n {
		wg.Go(func() {
			r.add(keep[i])
			r.add(drop[i])
			r.remove(drop[i])
		})
	}
	wg.Wait()

	got := r.snapshot()
	if len(got) != n {
		t.Fatalf("len = %d, want %d", len(got), n)
	}
	for _, p := range keep {
		if !slices.Contains(got, p) {
			t.Fatal("lost a concurrent add")
		}
	}
}
