package infer

import (
	"fmt"
	"math"

	"github.com/x448/float16"

	"github.com/arloliu/fixfmt/format"
)

// Report describes an inferred format and how the same samples would fare in
// the floating-point storage formats it competes with.
type Report struct {
	// Descriptor is the inferred format.
	Descriptor format.Descriptor

	// Tolerance is the epsilon the format was inferred for.
	Tolerance float64

	// MaxError is the largest rounding error of any sample in Descriptor.
	MaxError float64

	// StorageBits is the number of bits one value needs, sign included.
	StorageBits int

	// WordSize is the storage word a packed column uses; zero when the
	// format is wider than 64 bits.
	WordSize format.WordSize

	// Float16MaxError is the largest error of storing the samples as IEEE half precision.
	Float16MaxError float64

	// Float32MaxError is the largest error of storing the samples as float32.
	Float32MaxError float64
}

// Float16Fits reports whether half precision would also meet the tolerance.
func (r *Report) Float16Fits() bool {
	return r.Float16MaxError < r.Tolerance
}

// BitsSaved returns the bits saved per value against the smallest float format
// that meets the tolerance. Negative values mean the fixed-point format is wider.
func (r *Report) BitsSaved() int {
	switch {
	case r.Float16Fits():
		return 16 - r.StorageBits
	case r.Float32MaxError < r.Tolerance:
		return 32 - r.StorageBits
	default:
		return 64 - r.StorageBits
	}
}

func (r *Report) String() string {
	return fmt.Sprintf("Report{Format: %s, Bits: %d, MaxError: %g, Float16MaxError: %g, Float32MaxError: %g}",
		r.Descriptor, r.StorageBits, r.MaxError, r.Float16MaxError, r.Float32MaxError)
}

// Analyze infers the format of samples and reports its precision trade-offs.
//
// Parameters:
//   - samples: Non-empty set of finite values
//   - epsilon: Maximum absolute rounding error per sample
//   - opts: Optional search configuration
//
// Returns:
//   - *Report: Inferred format with error figures
//   - error: Any error Infer returns
func Analyze(samples []float64, epsilon float64, opts ...Option) (*Report, error) {
	desc, err := Infer(samples, epsilon, opts...)
	if err != nil {
		return nil, err
	}

	word, _ := desc.WordSize()

	return &Report{
		Descriptor:      desc,
		Tolerance:       epsilon,
		MaxError:        MaxError(samples, desc.FractionalBits),
		StorageBits:     desc.StorageBits(),
		WordSize:        word,
		Float16MaxError: float16MaxError(samples),
		Float32MaxError: float32MaxError(samples),
	}, nil
}

func float16MaxError(samples []float64) float64 {
	maxErr := 0.0
	for _, x := range samples {
		h := float16.Fromfloat32(float32(x))
		if h.IsInf(0) || h.IsNaN() {
			return math.Inf(1)
		}
		if e := math.Abs(float64(h.Float32()) - x); e > maxErr {
			maxErr = e
		}
	}

	return maxErr
}

func float32MaxError(samples []float64) float64 {
	maxErr := 0.0
	for _, x := range samples {
		f := float32(x)
		if math.IsInf(float64(f), 0) {
			return math.Inf(1)
		}
		if e := math.Abs(float64(f) - x); e > maxErr {
			maxErr = e
		}
	}

	return maxErr
}
