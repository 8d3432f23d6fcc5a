// Package compress provides the codecs applied to packed fixed-point column
// payloads.
//
// A column is first packed at its format's word size, then compressed as a
// whole. Narrow formats leave many constant high bits in each word, which
// general-purpose compressors remove well.
//
// Supported algorithms:
//   - format.CompressionNone: payload stored as-is
//   - format.CompressionZstd: best ratio, pooled encoders and decoders
//     (valyala/gozstd when built with cgo, klauspost/compress otherwise)
//   - format.CompressionS2: balanced speed and ratio (klauspost/compress/s2)
//   - format.CompressionLZ4: fastest decompression (pierrec/lz4)
//
// Usage:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
// All built-in codecs are stateless values and safe for concurrent use.
package compress
