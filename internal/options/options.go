// Package options implements the generic functional options shared by the
// fixfmt configuration structs.
package options

import (
	"errors"
	"fmt"

	"github.com/arloliu/fixfmt/errs"
)

// Option represents a functional option for configuring any type T.
type Option[T any] interface {
	apply(T) error
}

// Func is a generic functional option that wraps a function.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface. A nil *Func or one without a
// function is a no-op, matching how Apply skips nil options.
func (f *Func[T]) apply(target T) error {
	if f == nil || f.applyFunc == nil {
		return nil
	}

	return f.applyFunc(target)
}

// New creates a new functional option from a function that may reject its input.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates a functional option from a function that can't fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies options in order and stops at the first failure. Nil options,
// including typed nil *Func values, are skipped.
//
// Errors that do not already wrap errs.ErrInvalidOption are wrapped with it,
// so callers can match any configuration problem with a single errors.Is.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			if errors.Is(err, errs.ErrInvalidOption) {
				return err
			}

			return fmt.Errorf("%w: option %d: %w", errs.ErrInvalidOption, i, err)
		}
	}

	return nil
}

// Build copies defaults, applies opts to the copy and returns it.
//
// The defaults value is never modified, which lets packages keep a single
// package-level default configuration.
func Build[T any](defaults T, opts ...Option[*T]) (T, error) {
	cfg := defaults
	if err := Apply(&cfg, opts...); err != nil {
		var zero T
		return zero, err
	}

	return cfg, nil
}
