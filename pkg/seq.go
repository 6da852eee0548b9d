// Package pkg is a package that provides utilities for tagsweep.
package pkg

import (
	"errors"
	"io"
)

// Iter is a generic pull-based iterator. Next returns io.EOF once the
// sequence is exhausted; any other error is fatal for the sequence.
// Iterators are finite and not restartable.
type Iter[T any] interface {
	Next() (T, error)
}

// IterFunc adapts a function to the Iter interface.
type IterFunc[T any] func() (T, error)

// Next implements Iter.
func (f IterFunc[T]) Next() (T, error) { return f() }

// FromSlice returns an iterator over the items of a slice.
func FromSlice[T any](items []T) Iter[T] {
	i := 0

	return IterFunc[T](func() (T, error) {
		if i >= len(items) {
			var zero T
			return zero, io.EOF
		}

		item := items[i]
		i++

		return item, nil
	})
}

// Filter yields only the items of it for which keep returns true.
func Filter[T any](it Iter[T], keep func(T) bool) Iter[T] {
	return IterFunc[T](func() (T, error) {
		for {
			item, err := it.Next()
			if err != nil {
				var zero T
				return zero, err
			}

			if keep(item) {
				return item, nil
			}
		}
	})
}

// Concat chains iterators back to back, preserving order.
func Concat[T any](its ...Iter[T]) Iter[T] {
	i := 0

	return IterFunc[T](func() (T, error) {
		for i < len(its) {
			item, err := its[i].Next()
			if errors.Is(err, io.EOF) {
				i++
				continue
			}

			return item, err
		}

		var zero T
		return zero, io.EOF
	})
}

// Collect drains an iterator into a slice. A fatal iterator error is
// returned together with the items pulled before it.
func Collect[T any](it Iter[T]) ([]T, error) {
	var items []T

	for {
		item, err := it.Next()
		if errors.Is(err, io.EOF) {
			return items, nil
		}

		if err != nil {
			return items, err
		}

		items = append(items, item)
	}
}
