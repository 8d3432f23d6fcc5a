package bind

import (
	"cmp"
	"fmt"
	"math"
	"math/bits"
	"strconv"

	"github.com/arloliu/fixfmt/errs"
	"github.com/arloliu/fixfmt/format"
)

// Value is a number bound to exactly one fixed-point format.
//
// It stores the scaled integer raw = round(v * 2^FractionalBits) next to the
// shared, immutable Kind of its format. Values are plain data and are copied by
// value; the zero Value is unbound and rejected by every operation that needs
// a format.
type Value struct {
	kind *Kind
	raw  int64
}

// Kind returns the format handle, or nil for the zero Value.
func (v Value) Kind() *Kind {
	return v.kind
}

// IsBound reports whether v carries a format.
func (v Value) IsBound() bool {
	return v.kind != nil
}

// Descriptor returns the value's format, or the zero descriptor when unbound.
func (v Value) Descriptor() format.Descriptor {
	if v.kind == nil {
		return format.Descriptor{}
	}

	return v.kind.desc
}

// Raw returns the scaled integer representation.
func (v Value) Raw() int64 {
	return v.raw
}

// Float64 returns the real value raw * 2^-FractionalBits.
func (v Value) Float64() float64 {
	if v.kind == nil {
		return 0
	}

	return math.Ldexp(float64(v.raw), -v.kind.desc.FractionalBits)
}

// IsZero reports whether the value is zero.
func (v Value) IsZero() bool {
	return v.raw == 0
}

func (v Value) String() string {
	if v.kind == nil {
		return "<unbound>"
	}

	return strconv.FormatFloat(v.Float64(), 'g', -1, 64) + " " + v.kind.desc.String()
}

func (v Value) sameFormat(o Value) error {
	if v.kind == nil || o.kind == nil {
		return fmt.Errorf("%w: unbound value", errs.ErrFormatMismatch)
	}
	if v.kind.desc != o.kind.desc {
		return fmt.Errorf("%w: %s and %s", errs.ErrFormatMismatch, v.kind.desc, o.kind.desc)
	}

	return nil
}

// Add returns v + o. Both values must share a format.
func (v Value) Add(o Value) (Value, error) {
	if err := v.sameFormat(o); err != nil {
		return Value{}, err
	}

	sum := v.raw + o.raw
	if (o.raw > 0 && sum < v.raw) || (o.raw < 0 && sum > v.raw) {
		return Value{}, fmt.Errorf("%w: %s + %s overflows", errs.ErrValueOutOfRange, v, o)
	}

	return v.kind.FromRaw(sum)
}

// Sub returns v - o. Both values must share a format.
func (v Value) Sub(o Value) (Value, error) {
	if err := v.sameFormat(o); err != nil {
		return Value{}, err
	}

	// Raws are bounded by 2^62, so negation cannot overflow.
	return v.Add(Value{kind: o.kind, raw: -o.raw})
}

// Neg returns -v. Negating a non-zero unsigned value is out of range.
func (v Value) Neg() (Value, error) {
	if v.kind == nil {
		return Value{}, fmt.Errorf("%w: unbound value", errs.ErrFormatMismatch)
	}

	return v.kind.FromRaw(-v.raw)
}

// Mul returns v * o rounded half away from zero to the shared fractional width.
func (v Value) Mul(o Value) (Value, error) {
	if err := v.sameFormat(o); err != nil {
		return Value{}, err
	}

	neg := (v.raw < 0) != (o.raw < 0)
	hi, lo := bits.Mul64(absRaw(v.raw), absRaw(o.raw))

	f := uint(v.kind.desc.FractionalBits)
	if f > 0 {
		var carry uint64
		lo, carry = bits.Add64(lo, uint64(1)<<(f-1), 0)
		hi += carry
		if hi>>f != 0 {
			return Value{}, fmt.Errorf("%w: %s * %s overflows", errs.ErrValueOutOfRange, v, o)
		}
		lo = hi<<(64-f) | lo>>f
	} else if hi != 0 {
		return Value{}, fmt.Errorf("%w: %s * %s overflows", errs.ErrValueOutOfRange, v, o)
	}

	if lo > uint64(v.kind.maxRaw) {
		return Value{}, fmt.Errorf("%w: %s * %s overflows", errs.ErrValueOutOfRange, v, o)
	}

	raw := int64(lo)
	if neg {
		raw = -raw
	}

	return v.kind.FromRaw(raw)
}

// Cmp compares v and o, returning -1, 0 or +1.
func (v Value) Cmp(o Value) (int, error) {
	if err := v.sameFormat(o); err != nil {
		return 0, err
	}

	return cmp.Compare(v.raw, o.raw), nil
}

func absRaw(raw int64) uint64 {
	if raw < 0 {
		return uint64(-raw)
	}

	return uint64(raw)
}
