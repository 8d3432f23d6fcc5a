package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

const (
	lz4ModeStored byte = 0x0
	lz4ModeBlock  byte = 0x1
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a reusable hash table.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 block compression.
//
// Frames start with the uvarint original size and a mode byte. Payloads LZ4
// cannot shrink are stored verbatim, so every payload round-trips.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	header := binary.AppendUvarint(nil, uint64(len(data)))
	dst := make([]byte, len(header)+1+lz4.CompressBlockBound(len(data)))
	copy(dst, header)
	body := dst[len(header)+1:]

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, body)
	if err != nil {
		return nil, err
	}

	if n == 0 || n >= len(data) {
		dst[len(header)] = lz4ModeStored
		n = copy(body, data)
	} else {
		dst[len(header)] = lz4ModeBlock
	}

	return dst[:len(header)+1+n], nil
}

// Decompress decompresses data.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, n := binary.Uvarint(data)
	if n <= 0 || n >= len(data) {
		return nil, errors.New("lz4: invalid frame header")
	}
	if size > maxPayloadSize {
		return nil, fmt.Errorf("lz4: declared size %d exceeds limit", size)
	}

	mode, body := data[n], data[n+1:]
	switch mode {
	case lz4ModeStored:
		if uint64(len(body)) != size {
			return nil, fmt.Errorf("lz4: stored size mismatch: expected %d, got %d", size, len(body))
		}

		return append([]byte(nil), body...), nil
	case lz4ModeBlock:
		out := make([]byte, size)
		m, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, err
		}
		if uint64(m) != size {
			return nil, fmt.Errorf("lz4: decompressed size mismatch: expected %d, got %d", size, m)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("lz4: unknown frame mode 0x%02x", mode)
	}
}
