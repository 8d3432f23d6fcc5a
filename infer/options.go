package infer

import (
	"fmt"

	"github.com/arloliu/fixfmt/internal/options"
)

// DefaultMaxFractionalBits is the default upper bound of the fractional width
// search: the number of explicit significand bits of a float64.
const DefaultMaxFractionalBits = 52

// Config holds the inference parameters.
type Config struct {
	// MaxFractionalBits bounds the fractional width search (inclusive).
	MaxFractionalBits int
}

var defaultConfig = Config{
	MaxFractionalBits: DefaultMaxFractionalBits,
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithMaxFractionalBits lowers the fractional width search bound.
//
// The bound must be in [0, DefaultMaxFractionalBits]; beyond the float64
// significand the rounding error of a sample can no longer be measured.
func WithMaxFractionalBits(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 0 || n > DefaultMaxFractionalBits {
			return fmt.Errorf("max fractional bits %d outside [0, %d]", n, DefaultMaxFractionalBits)
		}
		cfg.MaxFractionalBits = n

		return nil
	})
}
