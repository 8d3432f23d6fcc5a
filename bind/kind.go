package bind

import (
	"fmt"
	"math"

	"github.com/arloliu/fixfmt/endian"
	"github.com/arloliu/fixfmt/errs"
	"github.com/arloliu/fixfmt/format"
)

// Kind is the synthesized handle of one fixed-point format.
//
// A Kind is immutable once built and is shared by every Value bound to its
// format. It holds the precomputed raw bounds and the word operations used to
// pack raws into storage.
type Kind struct {
	desc   format.Descriptor
	word   format.WordSize
	ops    wordOps
	maxRaw int64
	minRaw int64
}

// wordOps packs and unpacks a raw at one storage word size.
type wordOps struct {
	put func(engine endian.EndianEngine, dst []byte, raw int64)
	get func(engine endian.EndianEngine, src []byte) int64
}

type wordTag struct {
	word   format.WordSize
	signed bool
}

// wordTable is the dispatch table of the closed set of storage layouts.
// Signed layouts sign-extend on read.
var wordTable = map[wordTag]wordOps{
	{format.Word8, false}: {
		put: func(_ endian.EndianEngine, dst []byte, raw int64) { dst[0] = uint8(raw) },
		get: func(_ endian.EndianEngine, src []byte) int64 { return int64(src[0]) },
	},
	{format.Word8, true}: {
		put: func(_ endian.EndianEngine, dst []byte, raw int64) { dst[0] = uint8(int8(raw)) },
		get: func(_ endian.EndianEngine, src []byte) int64 { return int64(int8(src[0])) },
	},
	{format.Word16, false}: {
		put: func(e endian.EndianEngine, dst []byte, raw int64) { e.PutUint16(dst, uint16(raw)) },
		get: func(e endian.EndianEngine, src []byte) int64 { return int64(e.Uint16(src)) },
	},
	{format.Word16, true}: {
		put: func(e endian.EndianEngine, dst []byte, raw int64) { e.PutUint16(dst, uint16(int16(raw))) },
		get: func(e endian.EndianEngine, src []byte) int64 { return int64(int16(e.Uint16(src))) },
	},
	{format.Word32, false}: {
		put: func(e endian.EndianEngine, dst []byte, raw int64) { e.PutUint32(dst, uint32(raw)) },
		get: func(e endian.EndianEngine, src []byte) int64 { return int64(e.Uint32(src)) },
	},
	{format.Word32, true}: {
		put: func(e endian.EndianEngine, dst []byte, raw int64) { e.PutUint32(dst, uint32(int32(raw))) },
		get: func(e endian.EndianEngine, src []byte) int64 { return int64(int32(e.Uint32(src))) },
	},
	{format.Word64, false}: {
		put: func(e endian.EndianEngine, dst []byte, raw int64) { e.PutUint64(dst, uint64(raw)) },
		get: func(e endian.EndianEngine, src []byte) int64 { return int64(e.Uint64(src)) },
	},
	{format.Word64, true}: {
		put: func(e endian.EndianEngine, dst []byte, raw int64) { e.PutUint64(dst, uint64(raw)) },
		get: func(e endian.EndianEngine, src []byte) int64 { return int64(e.Uint64(src)) },
	},
}

// synthesize builds the Kind of a descriptor.
//
// Formats wider than format.MaxMagnitudeBits are outside the closed set of
// supported layouts and fail with errs.ErrSynthesisFailure.
func synthesize(d format.Descriptor) (*Kind, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrSynthesisFailure, d.Key(), err)
	}

	if d.MagnitudeBits() > format.MaxMagnitudeBits {
		return nil, fmt.Errorf("%w: %s needs %d magnitude bits, max %d",
			errs.ErrSynthesisFailure, d, d.MagnitudeBits(), format.MaxMagnitudeBits)
	}

	word, ok := d.WordSize()
	if !ok {
		return nil, fmt.Errorf("%w: %s needs %d storage bits", errs.ErrSynthesisFailure, d, d.StorageBits())
	}

	ops, ok := wordTable[wordTag{word: word, signed: d.Signed}]
	if !ok {
		return nil, fmt.Errorf("%w: no layout for %s", errs.ErrSynthesisFailure, word)
	}

	k := &Kind{
		desc:   d,
		word:   word,
		ops:    ops,
		maxRaw: int64(1) << d.MagnitudeBits(),
	}
	if d.Signed {
		k.minRaw = -k.maxRaw
	}

	return k, nil
}

// Descriptor returns the format of the kind.
func (k *Kind) Descriptor() format.Descriptor {
	return k.desc
}

// WordSize returns the storage word size of the kind.
func (k *Kind) WordSize() format.WordSize {
	return k.word
}

// RawRange returns the inclusive bounds of valid raws.
func (k *Kind) RawRange() (minRaw, maxRaw int64) {
	return k.minRaw, k.maxRaw
}

func (k *Kind) String() string {
	return fmt.Sprintf("Kind{%s, %s}", k.desc, k.word)
}

// FromFloat rounds v to the kind's fractional width, half away from zero.
//
// Returns errs.ErrValueOutOfRange when v is NaN, infinite, or its rounded
// raw lies outside the format's range.
func (k *Kind) FromFloat(v float64) (Value, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}, fmt.Errorf("%w: %g is not finite", errs.ErrValueOutOfRange, v)
	}

	r := math.Round(math.Ldexp(v, k.desc.FractionalBits))
	if r > float64(k.maxRaw) || r < float64(k.minRaw) {
		return Value{}, fmt.Errorf("%w: %g does not fit %s", errs.ErrValueOutOfRange, v, k.desc)
	}

	return Value{kind: k, raw: int64(r)}, nil
}

// FromRaw wraps an already scaled raw integer.
func (k *Kind) FromRaw(raw int64) (Value, error) {
	if raw > k.maxRaw || raw < k.minRaw {
		return Value{}, fmt.Errorf("%w: raw %d does not fit %s", errs.ErrValueOutOfRange, raw, k.desc)
	}

	return Value{kind: k, raw: raw}, nil
}

// Convert re-scales v into this kind.
//
// Widening the fractional part is exact. Narrowing rounds half away from
// zero, so precision lost in a narrowing step is not recovered by widening
// back.
func (k *Kind) Convert(v Value) (Value, error) {
	if v.kind == nil {
		return Value{}, fmt.Errorf("%w: unbound value", errs.ErrFormatMismatch)
	}
	if v.kind.desc == k.desc {
		return Value{kind: k, raw: v.raw}, nil
	}

	neg := v.raw < 0
	mag := uint64(v.raw)
	if neg {
		mag = uint64(-v.raw)
	}

	shift := k.desc.FractionalBits - v.kind.desc.FractionalBits
	switch {
	case shift > 0:
		if mag > uint64(k.maxRaw)>>uint(shift) {
			return Value{}, fmt.Errorf("%w: %g does not fit %s", errs.ErrValueOutOfRange, v.Float64(), k.desc)
		}
		mag <<= uint(shift)
	case shift < 0:
		s := uint(-shift)
		mag = (mag + uint64(1)<<(s-1)) >> s
	}

	if mag > uint64(k.maxRaw) || (neg && mag != 0 && !k.desc.Signed) {
		return Value{}, fmt.Errorf("%w: %g does not fit %s", errs.ErrValueOutOfRange, v.Float64(), k.desc)
	}

	raw := int64(mag)
	if neg {
		raw = -raw
	}

	return Value{kind: k, raw: raw}, nil
}

// Put writes v into dst at the kind's word size.
// dst must hold at least WordSize().Bytes() bytes and v must belong to this kind.
func (k *Kind) Put(engine endian.EndianEngine, dst []byte, v Value) error {
	if v.kind == nil || v.kind.desc != k.desc {
		return fmt.Errorf("%w: cannot store %s value in %s", errs.ErrFormatMismatch, v.Descriptor(), k.desc)
	}
	k.ops.put(engine, dst, v.raw)

	return nil
}

// Get reads a value of this kind from src.
func (k *Kind) Get(engine endian.EndianEngine, src []byte) (Value, error) {
	return k.FromRaw(k.ops.get(engine, src))
}
