package format

type (
	WordSize        uint8
	CompressionType uint8
)

const (
	Word8  WordSize = 1 // Word8 stores raws in 1 byte.
	Word16 WordSize = 2 // Word16 stores raws in 2 bytes.
	Word32 WordSize = 4 // Word32 stores raws in 4 bytes.
	Word64 WordSize = 8 // Word64 stores raws in 8 bytes.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// WordSizeFor returns the smallest storage word holding n bits.
// It returns false when n exceeds 64 bits.
func WordSizeFor(bits int) (WordSize, bool) {
	switch {
	case bits <= 8:
		return Word8, true
	case bits <= 16:
		return Word16, true
	case bits <= 32:
		return Word32, true
	case bits <= 64:
		return Word64, true
	default:
		return 0, false
	}
}

// Bytes returns the word size in bytes.
func (w WordSize) Bytes() int {
	return int(w)
}

// Bits returns the word size in bits.
func (w WordSize) Bits() int {
	return int(w) * 8
}

func (w WordSize) String() string {
	switch w {
	case Word8:
		return "Word8"
	case Word16:
		return "Word16"
	case Word32:
		return "Word32"
	case Word64:
		return "Word64"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
