// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package buffer implements an append-only growable array.
package buffer

// A Buffer is an append-only sequence of values of type T. Its capacity grows
// by doubling, so that after n appends the capacity is the smallest power of
// two strictly greater than n. A zero Buffer is empty and ready for use.
type Buffer[T any] struct {
	items []T
}

// Append adds v to the end of b.
func (b *Buffer[T]) Append(v T) {
	if n := len(b.items) + 1; n >= cap(b.items) {
		b.grow(max(2, 2*cap(b.items)))
	}
	b.items = append(b.items, v)
}

func (b *Buffer[T]) grow(size int) {
	next := make([]T, len(b.items), size)
	copy(next, b.items)
	b.items = next
}

// Len reports the number of values in b.
func (b *Buffer[T]) Len() int { return len(b.items) }

// Cap reports the current capacity of b.
func (b *Buffer[T]) Cap() int { return cap(b.items) }

// At returns the value at offset i of b. It panics if i is out of range.
func (b *Buffer[T]) At(i int) T { return b.items[i] }

// Items returns a view of the contents of b. The slice is only valid until
// the next call to Append or Reset, and the caller must not modify it.
func (b *Buffer[T]) Items() []T { return b.items[:len(b.items):len(b.items)] }

// Reset discards the contents of b and releases its storage.
func (b *Buffer[T]) Reset() {
	clear(b.items)
	b.items = nil
}
