package compress

import (
	"fmt"
	"time"

	"github.com/arloliu/fixfmt/format"
)

// maxPayloadSize bounds the decompressed size of one column payload, so a
// corrupted size header cannot force a huge allocation.
const maxPayloadSize = 128 * 1024 * 1024

// Compressor compresses a packed column payload.
//
// The returned slice is owned by the caller. The input slice is not modified,
// except by NoOpCompressor which returns it as-is.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// Implementations return an error when the input is corrupted or was produced
// by another algorithm. They must be safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in codec of a compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Stats describes one compression of a payload.
type Stats struct {
	Algorithm         format.CompressionType
	OriginalSize      int
	CompressedSize    int
	CompressionTimeNs int64
}

// Ratio returns compressed size / original size, or 0 for an empty payload.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space in percent.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// Measure compresses data with the built-in codec of compressionType and
// reports sizes and timing. The compressed bytes are returned alongside.
func Measure(compressionType format.CompressionType, data []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, Stats{}, err
	}

	start := time.Now()
	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression failed: %w", compressionType, err)
	}

	return out, Stats{
		Algorithm:         compressionType,
		OriginalSize:      len(data),
		CompressedSize:    len(out),
		CompressionTimeNs: time.Since(start).Nanoseconds(),
	}, nil
}
