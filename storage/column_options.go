package storage

import (
	"fmt"

	"github.com/arloliu/fixfmt/endian"
	"github.com/arloliu/fixfmt/format"
	"github.com/arloliu/fixfmt/internal/options"
)

// ColumnConfig holds the column packing configuration.
type ColumnConfig struct {
	engine      endian.EndianEngine
	compression format.CompressionType
}

func defaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
}

// ColumnOption is a functional option for ColumnConfig.
type ColumnOption = options.Option[*ColumnConfig]

// WithLittleEndian packs raws little-endian (default).
func WithLittleEndian() ColumnOption {
	return options.NoError(func(cfg *ColumnConfig) {
		cfg.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian packs raws big-endian.
func WithBigEndian() ColumnOption {
	return options.NoError(func(cfg *ColumnConfig) {
		cfg.engine = endian.GetBigEndianEngine()
	})
}

// WithCompression sets the payload compression used by Encode.
func WithCompression(comp format.CompressionType) ColumnOption {
	return options.New(func(cfg *ColumnConfig) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.compression = comp
			return nil
		default:
			return fmt.Errorf("invalid column compression: %v", comp)
		}
	})
}
