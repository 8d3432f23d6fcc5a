// Package infer computes the minimal fixed-point format able to represent a
// sample set within an absolute error tolerance.
//
// The result is a format.Descriptor:
//
//   - Signed is true when at least one sample is negative.
//   - IntegerBits is ceil(max width(x)) with a floor of zero, where
//     width(x) = log2(x) for x > 0 and log2(1-x) otherwise.
//   - FractionalBits is the first f in 0, 1, 2, ... for which every sample
//     rounded to f fractional bits is strictly within the tolerance.
//
// The search is bounded. When no fractional width up to the bound works, or
// when the tolerance is at or below half the finest step of a float64
// significand (2^-53), Infer returns errs.ErrToleranceUnreachable instead of
// searching further. Lowering the bound with WithMaxFractionalBits only
// shortens the search.
//
// Infer is a pure function and safe for concurrent use.
package infer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/fixfmt/errs"
	"github.com/arloliu/fixfmt/format"
	"github.com/arloliu/fixfmt/internal/options"
)

// resolutionFloor is half the finest step a float64 significand resolves.
// Tolerances at or below it cannot be checked, whatever the search bound.
var resolutionFloor = math.Ldexp(1, -(DefaultMaxFractionalBits + 1))

// Infer returns the minimal fixed-point format for samples at tolerance epsilon.
//
// Parameters:
//   - samples: Non-empty set of finite values (not modified)
//   - epsilon: Maximum absolute rounding error per sample, must be > 0
//   - opts: Optional search configuration
//
// Returns:
//   - format.Descriptor: The inferred format
//   - error: errs.ErrEmptyInput, errs.ErrInvalidTolerance, errs.ErrInvalidSample,
//     errs.ErrToleranceUnreachable or errs.ErrInvalidOption
//
// Example:
//
//	desc, err := infer.Infer([]float64{1.125, 2.25, 1.3125, 2.75}, 0.001)
//	// desc == format.Descriptor{Signed: false, IntegerBits: 2, FractionalBits: 4}
func Infer(samples []float64, epsilon float64, opts ...Option) (format.Descriptor, error) {
	cfg, err := options.Build(defaultConfig, opts...)
	if err != nil {
		return format.Descriptor{}, err
	}

	if err := validate(samples, epsilon); err != nil {
		return format.Descriptor{}, err
	}

	if epsilon <= resolutionFloor {
		return format.Descriptor{}, fmt.Errorf("%w: tolerance %g is not above the float64 resolution floor %g",
			errs.ErrToleranceUnreachable, epsilon, resolutionFloor)
	}

	fracBits, ok := searchFractionalBits(samples, epsilon, cfg.MaxFractionalBits)
	if !ok {
		return format.Descriptor{}, fmt.Errorf("%w: tolerance %g needs more than %d fractional bits",
			errs.ErrToleranceUnreachable, epsilon, cfg.MaxFractionalBits)
	}

	return format.Descriptor{
		Signed:         isSigned(samples),
		IntegerBits:    integerBits(samples),
		FractionalBits: fracBits,
	}, nil
}

func validate(samples []float64, epsilon float64) error {
	if len(samples) == 0 {
		return errs.ErrEmptyInput
	}

	if !(epsilon > 0) || math.IsInf(epsilon, 1) {
		return fmt.Errorf("%w: %g", errs.ErrInvalidTolerance, epsilon)
	}

	if floats.HasNaN(samples) {
		return fmt.Errorf("%w: NaN", errs.ErrInvalidSample)
	}
	for i, x := range samples {
		if math.IsInf(x, 0) {
			return fmt.Errorf("%w: sample %d is %g", errs.ErrInvalidSample, i, x)
		}
	}

	return nil
}

func isSigned(samples []float64) bool {
	for _, x := range samples {
		if x < 0 {
			return true
		}
	}

	return false
}

// width returns the number of integer bits a single sample asks for.
// Zero falls into the non-positive branch, giving log2(1) = 0.
func width(x float64) float64 {
	if x > 0 {
		return math.Log2(x)
	}

	return math.Log2(-x + 1)
}

func integerBits(samples []float64) int {
	widths := make([]float64, len(samples))
	for i, x := range samples {
		widths[i] = width(x)
	}

	bits := math.Ceil(floats.Max(widths))
	if bits < 0 {
		return 0
	}

	return int(bits)
}

// roundingError returns |round(x * 2^f) / 2^f - x| with half-away-from-zero rounding.
func roundingError(x float64, f int) float64 {
	return math.Abs(math.Ldexp(math.Round(math.Ldexp(x, f)), -f) - x)
}

// searchFractionalBits returns the first f in [0, maxBits] for which every
// sample rounds within epsilon. All samples are re-checked at each candidate;
// the error is not assumed to shrink monotonically with f.
func searchFractionalBits(samples []float64, epsilon float64, maxBits int) (int, bool) {
	for f := 0; f <= maxBits; f++ {
		if fits(samples, epsilon, f) {
			return f, true
		}
	}

	return 0, false
}

func fits(samples []float64, epsilon float64, f int) bool {
	for _, x := range samples {
		if !(roundingError(x, f) < epsilon) {
			return false
		}
	}

	return true
}

// MaxError returns the largest rounding error of samples at f fractional bits.
func MaxError(samples []float64, f int) float64 {
	maxErr := 0.0
	for _, x := range samples {
		if e := roundingError(x, f); e > maxErr {
			maxErr = e
		}
	}

	return maxErr
}
