package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/s2"
)

const (
	s2ModeStored byte = 0x0
	s2ModeBlock  byte = 0x1
)

// S2Compressor compresses with S2, a faster Snappy extension.
//
// Frames start with a mode byte. Payloads S2 cannot shrink, such as columns
// of uncorrelated raws, are stored verbatim, so a frame is never more than
// one byte larger than its payload.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bound := s2.MaxEncodedLen(len(data))
	if bound < 0 {
		return nil, fmt.Errorf("s2: payload of %d bytes is too large", len(data))
	}

	dst := make([]byte, 1+bound)
	encoded := s2.Encode(dst[1:], data)
	if len(encoded) >= len(data) {
		dst[0] = s2ModeStored
		n := copy(dst[1:], data)

		return dst[:1+n], nil
	}
	dst[0] = s2ModeBlock

	return dst[:1+len(encoded)], nil
}

// Decompress decompresses data.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	mode, body := data[0], data[1:]
	switch mode {
	case s2ModeStored:
		if len(body) > maxPayloadSize {
			return nil, fmt.Errorf("s2: stored size %d exceeds limit", len(body))
		}

		return append([]byte(nil), body...), nil
	case s2ModeBlock:
		if len(body) == 0 {
			return nil, errors.New("s2: empty block")
		}
		size, err := s2.DecodedLen(body)
		if err != nil {
			return nil, fmt.Errorf("s2: invalid block header: %w", err)
		}
		if size > maxPayloadSize {
			return nil, fmt.Errorf("s2: declared size %d exceeds limit", size)
		}

		return s2.Decode(nil, body)
	default:
		return nil, fmt.Errorf("s2: unknown frame mode 0x%02x", mode)
	}
}
