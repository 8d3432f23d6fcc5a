package infer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fixfmt/errs"
	"github.com/arloliu/fixfmt/format"
)

func TestInfer_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		epsilon float64
		want    format.Descriptor
	}{
		{
			name:    "unsigned sixteenths",
			samples: []float64{1.125, 2.25, 1.3125, 2.75},
			epsilon: 0.001,
			want:    format.New(false, 2, 4),
		},
		{
			name:    "signed halves",
			samples: []float64{-1.0, 0.5},
			epsilon: 0.01,
			want:    format.New(true, 1, 1),
		},
		{
			name:    "single zero",
			samples: []float64{0.0},
			epsilon: 0.5,
			want:    format.New(false, 0, 0),
		},
		{
			name:    "fractions below one",
			samples: []float64{0.25, 0.5, 0.75},
			epsilon: 1e-9,
			want:    format.New(false, 0, 2),
		},
		{
			name:    "integers",
			samples: []float64{3, 100, 7},
			epsilon: 0.5,
			want:    format.New(false, 7, 0),
		},
		{
			name:    "exact power of two",
			samples: []float64{4},
			epsilon: 0.1,
			want:    format.New(false, 2, 0),
		},
		{
			name:    "loose tolerance stops early",
			samples: []float64{0.1, 0.2, 0.3},
			epsilon: 0.1,
			want:    format.New(false, 0, 3),
		},
		{
			name:    "negative width",
			samples: []float64{-3},
			epsilon: 0.5,
			want:    format.New(true, 2, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Infer(tt.samples, tt.epsilon)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestInfer_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := Infer(nil, 0.01)
		require.ErrorIs(t, err, errs.ErrEmptyInput)

		_, err = Infer([]float64{}, 0.01)
		require.ErrorIs(t, err, errs.ErrEmptyInput)
	})

	t.Run("invalid tolerance", func(t *testing.T) {
		for _, eps := range []float64{-0.1, 0, math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := Infer([]float64{1.0}, eps)
			require.ErrorIs(t, err, errs.ErrInvalidTolerance, "epsilon %v", eps)
		}
	})

	t.Run("invalid sample", func(t *testing.T) {
		_, err := Infer([]float64{1.0, math.NaN()}, 0.1)
		require.ErrorIs(t, err, errs.ErrInvalidSample)

		_, err = Infer([]float64{math.Inf(-1)}, 0.1)
		require.ErrorIs(t, err, errs.ErrInvalidSample)
	})

	t.Run("tolerance below resolution floor", func(t *testing.T) {
		_, err := Infer([]float64{1.0, 2.0}, 1e-30)
		require.ErrorIs(t, err, errs.ErrToleranceUnreachable)
	})

	t.Run("search bound exceeded", func(t *testing.T) {
		_, err := Infer([]float64{0.1}, 1e-6, WithMaxFractionalBits(8))
		require.ErrorIs(t, err, errs.ErrToleranceUnreachable)
	})

	t.Run("tolerance below floor with lowered bound", func(t *testing.T) {
		_, err := Infer([]float64{1.0, 2.0}, 1e-30, WithMaxFractionalBits(4))
		require.ErrorIs(t, err, errs.ErrToleranceUnreachable)
	})

	t.Run("invalid option", func(t *testing.T) {
		_, err := Infer([]float64{1.0}, 0.1, WithMaxFractionalBits(53))
		require.ErrorIs(t, err, errs.ErrInvalidOption)

		_, err = Infer([]float64{1.0}, 0.1, WithMaxFractionalBits(-1))
		require.ErrorIs(t, err, errs.ErrInvalidOption)
	})
}

func TestInfer_LoweredBoundAcceptsReachableTolerance(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		epsilon float64
		maxBits int
		want    format.Descriptor
	}{
		{"integers at f=0", []float64{1, 2, 3}, 0.4, 0, format.New(false, 2, 0)},
		{"exact at f=1", []float64{1.5}, 0.01, 4, format.New(false, 1, 1)},
		{"exact at the bound", []float64{-0.0625}, 1e-9, 4, format.New(true, 1, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Infer(tt.samples, tt.epsilon, WithMaxFractionalBits(tt.maxBits))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestInfer_DoesNotMutateSamples(t *testing.T) {
	samples := []float64{-2.5, 0.125, 3.75}
	orig := append([]float64(nil), samples...)

	_, err := Infer(samples, 1e-3)
	require.NoError(t, err)
	require.Equal(t, orig, samples)
}

func TestInfer_ToleranceHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 200 {
		n := 1 + rng.Intn(20)
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = (rng.Float64() - 0.3) * math.Ldexp(1, rng.Intn(12))
		}
		epsilon := math.Ldexp(1, -rng.Intn(30)) * (0.5 + rng.Float64())

		desc, err := Infer(samples, epsilon)
		require.NoError(t, err)

		for _, x := range samples {
			require.Less(t, roundingError(x, desc.FractionalBits), epsilon)
		}

		// The previous width must have failed for at least one sample.
		if desc.FractionalBits > 0 {
			require.GreaterOrEqual(t, MaxError(samples, desc.FractionalBits-1), epsilon)
		}

		hasNegative := false
		for _, x := range samples {
			if x < 0 {
				hasNegative = true
			}
			require.True(t, desc.Contains(x), "sample %v outside %s", x, desc)
		}
		require.Equal(t, hasNegative, desc.Signed)
	}
}

func TestInfer_IntegerBitsMonotone(t *testing.T) {
	prev := -1
	for _, m := range []float64{0.5, 1, 1.5, 2, 3, 4, 7.9, 8, 100, 1e6, 1e12} {
		desc, err := Infer([]float64{0.25, m}, 0.5)
		require.NoError(t, err)
		require.GreaterOrEqual(t, desc.IntegerBits, prev, "max magnitude %v", m)
		prev = desc.IntegerBits
	}
}

func TestWidth(t *testing.T) {
	require.Equal(t, 0.0, width(0))
	require.Equal(t, 0.0, width(1))
	require.Equal(t, -1.0, width(0.5))
	require.Equal(t, 1.0, width(-1))
	require.Equal(t, 2.0, width(-3))
	require.InDelta(t, 1.4594, width(2.75), 1e-4)
}

func TestMaxError(t *testing.T) {
	samples := []float64{1.125, 2.25, 1.3125, 2.75}

	require.Equal(t, 0.0, MaxError(samples, 4))
	require.Equal(t, 0.0625, MaxError(samples, 3))
	require.Equal(t, 0.3125, MaxError(samples, 0))
}

func BenchmarkInfer(b *testing.B) {
	rng := rand.New(rand.NewSource(7))
	samples := make([]float64, 1024)
	for i := range samples {
		samples[i] = rng.NormFloat64() * 100
	}

	b.ResetTimer()
	for b.Loop() {
		_, _ = Infer(samples, 1e-4)
	}
}
