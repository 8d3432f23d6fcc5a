package storage

import (
	"fmt"
	"sync"

	"github.com/arloliu/fixfmt/errs"
)

// ReadFunc reads the value stored at index.
type ReadFunc[T any] func(index int) (T, error)

// WriteFunc stores value at index.
type WriteFunc[T any] func(index int, value T) error

// Adapter is a uniform pair of read/write closures over one backend.
type Adapter[T any] struct {
	Read  ReadFunc[T]
	Write WriteFunc[T]
}

// NewSliceAdapter returns an adapter over s. Writes go to s itself; indexes
// outside [0, len(s)) fail with errs.ErrIndexOutOfRange.
func NewSliceAdapter[T any](s []T) Adapter[T] {
	return Adapter[T]{
		Read: func(index int) (T, error) {
			if index < 0 || index >= len(s) {
				var zero T
				return zero, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrIndexOutOfRange, index, len(s))
			}

			return s[index], nil
		},
		Write: func(index int, value T) error {
			if index < 0 || index >= len(s) {
				return fmt.Errorf("%w: %d not in [0, %d)", errs.ErrIndexOutOfRange, index, len(s))
			}
			s[index] = value

			return nil
		},
	}
}

// NewMapAdapter returns a sparse adapter backed by a map. Reading an index
// that was never written fails with errs.ErrNotFound. It is safe for
// concurrent use.
func NewMapAdapter[T any]() Adapter[T] {
	var mu sync.RWMutex
	m := make(map[int]T)

	return Adapter[T]{
		Read: func(index int) (T, error) {
			mu.RLock()
			v, ok := m[index]
			mu.RUnlock()
			if !ok {
				var zero T
				return zero, fmt.Errorf("%w: index %d", errs.ErrNotFound, index)
			}

			return v, nil
		},
		Write: func(index int, value T) error {
			if index < 0 {
				return fmt.Errorf("%w: %d is negative", errs.ErrIndexOutOfRange, index)
			}
			mu.Lock()
			m[index] = value
			mu.Unlock()

			return nil
		},
	}
}

// Map views an adapter of T as an adapter of U. decode converts on read and
// encode on write; either may fail, and its error is returned as-is.
func Map[T, U any](a Adapter[T], decode func(T) (U, error), encode func(U) (T, error)) Adapter[U] {
	return Adapter[U]{
		Read: func(index int) (U, error) {
			v, err := a.Read(index)
			if err != nil {
				var zero U
				return zero, err
			}

			return decode(v)
		},
		Write: func(index int, value U) error {
			v, err := encode(value)
			if err != nil {
				return err
			}

			return a.Write(index, v)
		},
	}
}

// Copy copies indexes [0, n) from src to dst.
func Copy[T any](dst, src Adapter[T], n int) error {
	for i := range n {
		v, err := src.Read(i)
		if err != nil {
			return fmt.Errorf("read %d: %w", i, err)
		}
		if err := dst.Write(i, v); err != nil {
			return fmt.Errorf("write %d: %w", i, err)
		}
	}

	return nil
}
