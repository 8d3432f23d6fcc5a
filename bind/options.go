package bind

import (
	"errors"
	"log/slog"

	"github.com/arloliu/fixfmt/internal/options"
)

// Config holds the binder configuration.
type Config struct {
	registry *Registry
	logger   *slog.Logger
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// WithRegistry makes the binder use r as its synthesis cache. Binders sharing
// a registry share synthesized formats.
func WithRegistry(r *Registry) Option {
	return options.New(func(cfg *Config) error {
		if r == nil {
			return errors.New("nil registry")
		}
		cfg.registry = r

		return nil
	})
}

// WithLogger sets the logger of the registry the binder creates. It has no
// effect together with WithRegistry.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(cfg *Config) {
		cfg.logger = logger
	})
}
