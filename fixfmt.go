// Package fixfmt infers minimal fixed-point formats from sample data and binds
// values to those formats at runtime.
//
// The format of a fixed-point number (sign, integer width, fractional width) is
// usually fixed when code is written. fixfmt instead derives it from data:
//
//  1. infer.Infer scans samples for a tolerance and returns the smallest
//     format.Descriptor that represents every sample within it.
//  2. bind.Binder binds values to that descriptor, producing bind.Value, and
//     converts them back or into other formats.
//  3. storage packs bound values into columns and exposes them through uniform
//     read/write closures.
//
// # Basic Usage
//
//	samples := []float64{1.125, 2.25, 1.3125, 2.75}
//
//	c, err := fixfmt.NewConstant(nil, samples, 0.001)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(c.Descriptor) // UQ2.4
//	fmt.Println(c.Floats())   // [1.125 2.25 1.3125 2.75]
//
// # Package Structure
//
// The top-level functions are thin wrappers that use a process-wide default
// binder. Use the infer, bind and storage packages directly to control the
// synthesis cache, logging and storage layout.
package fixfmt

import (
	"fmt"
	"sync"

	"github.com/arloliu/fixfmt/bind"
	"github.com/arloliu/fixfmt/errs"
	"github.com/arloliu/fixfmt/format"
	"github.com/arloliu/fixfmt/infer"
	"github.com/arloliu/fixfmt/storage"
)

var defaultBinder = sync.OnceValue(func() *bind.Binder {
	b, err := bind.NewBinder()
	if err != nil {
		// No options are passed, so construction cannot fail.
		panic(err)
	}

	return b
})

// DefaultBinder returns the process-wide binder used by the top-level functions.
// Its registry starts empty and only grows.
func DefaultBinder() *bind.Binder {
	return defaultBinder()
}

// Infer returns the minimal format for samples at tolerance epsilon.
// See infer.Infer.
func Infer(samples []float64, epsilon float64, opts ...infer.Option) (format.Descriptor, error) {
	return infer.Infer(samples, epsilon, opts...)
}

// Bind binds v to d with the default binder.
func Bind(d format.Descriptor, v float64) (bind.Value, error) {
	return DefaultBinder().Bind(d, v)
}

// Unbind returns the real value of v.
func Unbind(v bind.Value) float64 {
	return DefaultBinder().Unbind(v)
}

// Reformat converts v to d with the default binder.
func Reformat(v bind.Value, d format.Descriptor) (bind.Value, error) {
	return DefaultBinder().Reformat(v, d)
}

// Constant is a literal sample set bound to its inferred format, ready to be
// emitted as a constant node by a graph builder.
type Constant struct {
	Descriptor format.Descriptor
	Values     []bind.Value
}

// NewConstant infers the format of samples and binds every sample to it.
//
// Parameters:
//   - binder: Binder to bind with; nil uses DefaultBinder
//   - samples: Literal values
//   - epsilon: Tolerance for inference
//   - opts: Inference options
//
// Returns:
//   - *Constant: The bound constant
//   - error: Any inference or binding error
func NewConstant(binder *bind.Binder, samples []float64, epsilon float64, opts ...infer.Option) (*Constant, error) {
	if binder == nil {
		binder = DefaultBinder()
	}

	desc, err := infer.Infer(samples, epsilon, opts...)
	if err != nil {
		return nil, err
	}

	values, err := binder.BindAll(desc, samples)
	if err != nil {
		return nil, err
	}

	return &Constant{Descriptor: desc, Values: values}, nil
}

// Len returns the number of values.
func (c *Constant) Len() int {
	return len(c.Values)
}

// Floats returns the bound values as float64.
func (c *Constant) Floats() []float64 {
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		out[i] = v.Float64()
	}

	return out
}

// Column packs the constant into a storage column. The caller owns the column
// and should Release it when done.
func (c *Constant) Column(opts ...storage.ColumnOption) (*storage.Column, error) {
	if len(c.Values) == 0 {
		return nil, fmt.Errorf("%w: empty constant", errs.ErrEmptyInput)
	}

	col, err := storage.NewColumn(c.Values[0].Kind(), 0, opts...)
	if err != nil {
		return nil, err
	}

	for _, v := range c.Values {
		if err := col.Append(v); err != nil {
			col.Release()
			return nil, err
		}
	}

	return col, nil
}
