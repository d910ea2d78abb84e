// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"testing"
	"time"
)

func values[T any](w *window[T]) []T {
	out := make([]T, 0, len(w.items))
	for i := w.base; i < w.end(); i++ {
		out = append(out, w.at(i))
	}
	return out
}

func TestWindowAppendKeepsPublishedViews(t *testing.T) {
	w := &window[int]{}
	var views []*window[int]
	for i := range 20 {
		w = appended(w, entry[int]{value: i}, retention{})
		views = append(views, w)
	}
	for i, v := range views {
		if v.base != 0 || len(v.items) != i+1 {
			t.Fatalf("view %d: base %d len %d", i, v.base, len(v.items))
		}
		for j := range i + 1 {
			if v.at(uint64(j)) != j {
				t.Fatalf("view %d slot %d overwritten: %d", i, j, v.at(uint64(j)))
			}
		}
	}
}

func TestWindowSizeTrim(t *testing.T) {
	w := &window[int]{}
	for i := range 10 {
		w = appended(w, entry[int]{value: i}, retention{maxItems: 4})
	}
	if w.base != 6 || w.end() != 10 {
		t.Fatalf("base %d end %d, want 6 10", w.base, w.end())
	}
	got := values(w)
	for i, v := range got {
		if v != 6+i {
			t.Fatalf("got %v", got)
		}
	}
}

func TestWindowAgeTrim(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	r := retention{maxAge: 10 * time.Second}
	w := &window[string]{}
	w = appended(w, entry[string]{value: "a", at: t0}, r)
	w = appended(w, entry[string]{value: "b", at: t0.Add(5 * time.Second)}, r)
	// a is exactly maxAge old at t0+10s and stays.
	w = appended(w, entry[string]{value: "c", at: t0.Add(10 * time.Second)}, r)
	if w.base != 0 || len(w.items) != 3 {
		t.Fatalf("base %d len %d, want 0 3", w.base, len(w.items))
	}
	w = appended(w, entry[string]{value: "d", at: t0.Add(16 * time.Second)}, r)
	if w.base != 2 {
		t.Fatalf("base %d, want 2", w.base)
	}
	if got := values(w); len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Fatalf("got %v", got)
	}

	sealed := terminated(w, completed, r, t0.Add(time.Minute))
	if sealed.term != completed || len(sealed.items) != 0 || sealed.base != 4 {
		t.Fatalf("sealed base %d len %d", sealed.base, len(sealed.items))
	}
}
