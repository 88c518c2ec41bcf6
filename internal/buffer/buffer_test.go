// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package buffer_test

import (
	"math/bits"
	"testing"

	"github.com/creachadair/jsontree/internal/buffer"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestBuffer(t *testing.T) {
	var b buffer.Buffer[int]
	if b.Len() != 0 || b.Cap() != 0 {
		t.Errorf("Empty buffer: len=%d cap=%d, want 0, 0", b.Len(), b.Cap())
	}

	var want []int
	prev := 0
	for i := 1; i <= 1000; i++ {
		b.Append(i)
		want = append(want, i)

		if b.Len() != i {
			t.Fatalf("After %d appends: len=%d", i, b.Len())
		}
		if c := b.Cap(); c < i {
			t.Fatalf("After %d appends: cap=%d < len", i, c)
		} else if c < prev {
			t.Fatalf("After %d appends: cap shrank from %d to %d", i, prev, c)
		} else {
			prev = c
		}

		// The smallest power of two strictly greater than i.
		if exp := 1 << bits.Len(uint(i)); b.Cap() != exp {
			t.Errorf("After %d appends: cap=%d, want %d", i, b.Cap(), exp)
		}
	}
	if diff := cmp.Diff(want, b.Items()); diff != "" {
		t.Errorf("Items (-want, +got):\n%s", diff)
	}
	if got := b.At(499); got != 500 {
		t.Errorf("At(499): got %d, want 500", got)
	}

	b.Reset()
	if b.Len() != 0 || b.Cap() != 0 {
		t.Errorf("After reset: len=%d cap=%d, want 0, 0", b.Len(), b.Cap())
	}
	mtest.MustPanic(t, func() { b.At(0) })
}

func TestItemsView(t *testing.T) {
	var b buffer.Buffer[string]
	b.Append("a")
	b.Append("b")

	// Appending to the view must not clobber the buffer's storage.
	view := b.Items()
	_ = append(view, "x")
	b.Append("c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, b.Items()); diff != "" {
		t.Errorf("Items (-want, +got):\n%s", diff)
	}
}
