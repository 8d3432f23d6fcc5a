// Package bind binds runtime values to fixed-point formats that are only known
// at runtime.
//
// Formats are a closed tagged union: every descriptor up to
// format.MaxMagnitudeBits maps to one of eight storage layouts (8, 16, 32 or
// 64-bit words, signed or not), picked from a dispatch table when the format's
// Kind is synthesized. No code is generated at runtime. Kinds are cached in an
// injectable Registry.
//
// Typical flow:
//
//	desc, _ := infer.Infer(samples, 1e-3)
//	binder, _ := bind.NewBinder()
//	v, err := binder.Bind(desc, 1.3125)
//	if err != nil {
//	    return err
//	}
//	back := binder.Unbind(v) // 1.3125
package bind

import (
	"fmt"

	"github.com/arloliu/fixfmt/errs"
	"github.com/arloliu/fixfmt/format"
	"github.com/arloliu/fixfmt/internal/options"
)

// Binder binds, unbinds and reformats values. It is safe for concurrent use.
type Binder struct {
	registry *Registry
}

// NewBinder creates a binder. Without WithRegistry it gets a fresh, private registry.
func NewBinder(opts ...Option) (*Binder, error) {
	cfg, err := options.Build(Config{}, opts...)
	if err != nil {
		return nil, err
	}

	if cfg.registry == nil {
		cfg.registry = NewRegistry(cfg.logger)
	}

	return &Binder{registry: cfg.registry}, nil
}

// Registry returns the binder's synthesis cache.
func (b *Binder) Registry() *Registry {
	return b.registry
}

// Kind returns the synthesized handle of d.
func (b *Binder) Kind(d format.Descriptor) (*Kind, error) {
	return b.registry.Kind(d)
}

// Bind produces a value typed at exactly d.
//
// Parameters:
//   - d: Target format
//   - v: Value to bind, rounded half away from zero to d's fractional width
//
// Returns:
//   - Value: The bound value
//   - error: errs.ErrSynthesisFailure for unsupported formats,
//     errs.ErrValueOutOfRange when v does not fit d
func (b *Binder) Bind(d format.Descriptor, v float64) (Value, error) {
	k, err := b.registry.Kind(d)
	if err != nil {
		return Value{}, err
	}

	return k.FromFloat(v)
}

// BindAll binds every value of vs to d and stops at the first failure.
func (b *Binder) BindAll(d format.Descriptor, vs []float64) ([]Value, error) {
	k, err := b.registry.Kind(d)
	if err != nil {
		return nil, err
	}

	out := make([]Value, len(vs))
	for i, v := range vs {
		if out[i], err = k.FromFloat(v); err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}

	return out, nil
}

// Unbind recovers the real value of v. The result differs from the value
// originally bound by at most half of v's format step.
func (b *Binder) Unbind(v Value) float64 {
	return v.Float64()
}

// Reformat converts v to format d.
//
// Returns errs.ErrValueOutOfRange when v does not fit d, errs.ErrFormatMismatch
// for an unbound v, and errs.ErrSynthesisFailure for unsupported formats.
func (b *Binder) Reformat(v Value, d format.Descriptor) (Value, error) {
	if !v.IsBound() {
		return Value{}, fmt.Errorf("%w: unbound value", errs.ErrFormatMismatch)
	}

	k, err := b.registry.Kind(d)
	if err != nil {
		return Value{}, err
	}

	return k.Convert(v)
}
