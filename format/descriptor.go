// Package format defines the fixed-point format descriptor and the small
// enumerations shared by the fixfmt packages.
//
// A Descriptor is the triple (Signed, IntegerBits, FractionalBits). It is a
// comparable value type: two descriptors describe the same format exactly when
// they are ==, so a Descriptor can be used directly as a map key. Key returns a
// stable string form and ID its xxHash64, both suitable for cache lookups.
//
// Range rule: the representable magnitude includes 2^IntegerBits itself, so a
// raw integer r = round(v * 2^FractionalBits) is valid when
//
//	signed:   -2^(i+f) <= r <= 2^(i+f)
//	unsigned:        0 <= r <= 2^(i+f)
//
// This keeps every sample that produced the descriptor representable, including
// exact powers of two.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/fixfmt/internal/hash"
)

// MaxMagnitudeBits is the widest IntegerBits+FractionalBits a bound value can use.
// Raws are held in an int64, and the inclusive magnitude bound needs one extra bit.
const MaxMagnitudeBits = 62

// Descriptor fully characterizes one fixed-point format.
type Descriptor struct {
	Signed         bool
	IntegerBits    int
	FractionalBits int
}

// New creates a descriptor.
func New(signed bool, integerBits, fractionalBits int) Descriptor {
	return Descriptor{Signed: signed, IntegerBits: integerBits, FractionalBits: fractionalBits}
}

// Validate reports whether the descriptor is well formed: both widths are
// non-negative and neither exceeds MaxMagnitudeBits on its own, so
// MagnitudeBits cannot overflow. A valid descriptor may still be too wide
// to bind.
func (d Descriptor) Validate() error {
	if d.IntegerBits < 0 {
		return fmt.Errorf("negative integer bits: %d", d.IntegerBits)
	}
	if d.FractionalBits < 0 {
		return fmt.Errorf("negative fractional bits: %d", d.FractionalBits)
	}
	if d.IntegerBits > MaxMagnitudeBits {
		return fmt.Errorf("integer bits %d exceed %d", d.IntegerBits, MaxMagnitudeBits)
	}
	if d.FractionalBits > MaxMagnitudeBits {
		return fmt.Errorf("fractional bits %d exceed %d", d.FractionalBits, MaxMagnitudeBits)
	}

	return nil
}

// MagnitudeBits returns IntegerBits + FractionalBits.
func (d Descriptor) MagnitudeBits() int {
	return d.IntegerBits + d.FractionalBits
}

// StorageBits returns the number of bits needed to hold any raw of this format,
// including the sign bit for signed formats.
func (d Descriptor) StorageBits() int {
	bits := d.MagnitudeBits() + 1
	if d.Signed {
		bits++
	}

	return bits
}

// WordSize returns the smallest storage word for the format.
// It returns false when the format does not fit in 64 bits.
func (d Descriptor) WordSize() (WordSize, bool) {
	if d.IntegerBits < 0 || d.FractionalBits < 0 || d.IntegerBits > 64 || d.FractionalBits > 64 {
		return 0, false
	}

	return WordSizeFor(d.StorageBits())
}

// Step returns the value of one unit in the last place, 2^-FractionalBits.
func (d Descriptor) Step() float64 {
	return math.Ldexp(1, -d.FractionalBits)
}

// MaxValue returns the largest representable value, 2^IntegerBits.
func (d Descriptor) MaxValue() float64 {
	return math.Ldexp(1, d.IntegerBits)
}

// MinValue returns the smallest representable value.
func (d Descriptor) MinValue() float64 {
	if !d.Signed {
		return 0
	}

	return -math.Ldexp(1, d.IntegerBits)
}

// Contains reports whether v lies inside the representable range, before rounding.
func (d Descriptor) Contains(v float64) bool {
	return v >= d.MinValue() && v <= d.MaxValue()
}

// Key returns the stable key form, e.g. "s3.4" or "u2.4".
func (d Descriptor) Key() string {
	var sb strings.Builder
	sb.Grow(12)
	if d.Signed {
		sb.WriteByte('s')
	} else {
		sb.WriteByte('u')
	}
	sb.WriteString(strconv.Itoa(d.IntegerBits))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(d.FractionalBits))

	return sb.String()
}

// ID returns the xxHash64 of Key.
func (d Descriptor) ID() uint64 {
	return hash.ID(d.Key())
}

// String returns the Q-notation form, e.g. "Q3.4" for signed or "UQ2.4" for unsigned.
func (d Descriptor) String() string {
	if d.Signed {
		return fmt.Sprintf("Q%d.%d", d.IntegerBits, d.FractionalBits)
	}

	return fmt.Sprintf("UQ%d.%d", d.IntegerBits, d.FractionalBits)
}

// ParseDescriptor parses the Key form of a descriptor.
func ParseDescriptor(key string) (Descriptor, error) {
	if len(key) < 4 {
		return Descriptor{}, fmt.Errorf("invalid descriptor key %q", key)
	}

	var d Descriptor
	switch key[0] {
	case 's':
		d.Signed = true
	case 'u':
		d.Signed = false
	default:
		return Descriptor{}, fmt.Errorf("invalid descriptor key %q: unknown sign prefix", key)
	}

	intPart, fracPart, ok := strings.Cut(key[1:], ".")
	if !ok {
		return Descriptor{}, fmt.Errorf("invalid descriptor key %q: missing separator", key)
	}

	var err error
	if d.IntegerBits, err = strconv.Atoi(intPart); err != nil {
		return Descriptor{}, fmt.Errorf("invalid descriptor key %q: %w", key, err)
	}
	if d.FractionalBits, err = strconv.Atoi(fracPart); err != nil {
		return Descriptor{}, fmt.Errorf("invalid descriptor key %q: %w", key, err)
	}
	if err = d.Validate(); err != nil {
		return Descriptor{}, fmt.Errorf("invalid descriptor key %q: %w", key, err)
	}

	return d, nil
}
