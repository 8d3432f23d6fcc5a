package storage

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/arloliu/fixfmt/bind"
	"github.com/arloliu/fixfmt/compress"
	"github.com/arloliu/fixfmt/endian"
	"github.com/arloliu/fixfmt/errs"
	"github.com/arloliu/fixfmt/format"
	"github.com/arloliu/fixfmt/internal/hash"
	"github.com/arloliu/fixfmt/internal/options"
	"github.com/arloliu/fixfmt/internal/pool"
)

const (
	columnMagic      = "FXC1"
	columnHeaderSize = 21

	flagSigned    byte = 0x1
	flagBigEndian byte = 0x2
)

// Column stores values of one fixed-point format packed at the format's word
// size, so a UQ2.4 column costs one byte per value.
//
// A Column is not safe for concurrent writes. After Release the column must
// not be used.
type Column struct {
	kind   *bind.Kind
	cfg    ColumnConfig
	buf    *pool.ByteBuffer
	stride int
	count  int
}

// NewColumn creates a column of n zero values of kind.
//
// Parameters:
//   - kind: Format handle, obtained from bind.Binder.Kind
//   - n: Initial number of values
//   - opts: Byte order and compression options
//
// Returns:
//   - *Column: The new column
//   - error: errs.ErrInvalidOption for bad options
func NewColumn(kind *bind.Kind, n int, opts ...ColumnOption) (*Column, error) {
	if kind == nil {
		return nil, fmt.Errorf("%w: nil kind", errs.ErrInvalidOption)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative column length %d", errs.ErrInvalidOption, n)
	}

	cfg, err := options.Build(defaultColumnConfig(), opts...)
	if err != nil {
		return nil, err
	}

	c := &Column{
		kind:   kind,
		cfg:    cfg,
		buf:    pool.GetColumnBuffer(),
		stride: kind.WordSize().Bytes(),
	}
	c.buf.Extend(n * c.stride)
	c.count = n

	return c, nil
}

// Kind returns the column's format handle.
func (c *Column) Kind() *bind.Kind {
	return c.kind
}

// Descriptor returns the column's format.
func (c *Column) Descriptor() format.Descriptor {
	return c.kind.Descriptor()
}

// Len returns the number of values.
func (c *Column) Len() int {
	return c.count
}

// Size returns the packed payload size in bytes.
func (c *Column) Size() int {
	c.mustLive()
	return c.buf.Len()
}

func (c *Column) mustLive() {
	if c.buf == nil {
		panic("column already released")
	}
}

func (c *Column) slot(index int) ([]byte, error) {
	c.mustLive()
	if index < 0 || index >= c.count {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrIndexOutOfRange, index, c.count)
	}
	start := index * c.stride

	return c.buf.B[start : start+c.stride], nil
}

// At returns the value at index.
func (c *Column) At(index int) (bind.Value, error) {
	slot, err := c.slot(index)
	if err != nil {
		return bind.Value{}, err
	}

	return c.kind.Get(c.cfg.engine, slot)
}

// Set stores v at index. v must have the column's format.
func (c *Column) Set(index int, v bind.Value) error {
	slot, err := c.slot(index)
	if err != nil {
		return err
	}

	return c.kind.Put(c.cfg.engine, slot, v)
}

// Append adds v at the end of the column.
func (c *Column) Append(v bind.Value) error {
	c.mustLive()
	if v.Descriptor() != c.kind.Descriptor() || !v.IsBound() {
		return fmt.Errorf("%w: cannot append %s value to %s column",
			errs.ErrFormatMismatch, v.Descriptor(), c.kind.Descriptor())
	}

	slot := c.buf.Extend(c.stride)
	c.count++

	return c.kind.Put(c.cfg.engine, slot, v)
}

// All yields every index and value in order. Iteration stops early on a
// corrupt raw, which cannot happen for columns filled through Set and Append.
func (c *Column) All() iter.Seq2[int, bind.Value] {
	return func(yield func(int, bind.Value) bool) {
		for i := range c.count {
			v, err := c.At(i)
			if err != nil || !yield(i, v) {
				return
			}
		}
	}
}

// Adapter returns read/write closures over the column.
func (c *Column) Adapter() Adapter[bind.Value] {
	return Adapter[bind.Value]{
		Read:  c.At,
		Write: c.Set,
	}
}

// Encode serializes the column with its configured compression.
func (c *Column) Encode() ([]byte, error) {
	c.mustLive()

	payload := c.buf.Bytes()
	codec, err := compress.GetCodec(c.cfg.compression)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to compress column payload: %w", err)
	}

	desc := c.kind.Descriptor()
	var flags byte
	if desc.Signed {
		flags |= flagSigned
	}
	if endian.Flag(c.cfg.engine) == endian.FlagBig {
		flags |= flagBigEndian
	}

	out := make([]byte, 0, columnHeaderSize+len(compressed))
	out = append(out, columnMagic...)
	out = append(out, flags)
	out = binary.LittleEndian.AppendUint16(out, uint16(desc.IntegerBits))
	out = append(out, uint8(desc.FractionalBits))
	out = append(out, byte(c.cfg.compression))
	out = binary.LittleEndian.AppendUint32(out, uint32(c.count))
	out = binary.LittleEndian.AppendUint64(out, hash.Sum(payload))
	out = append(out, compressed...)

	return out, nil
}

// Release returns the column's buffer to the pool.
func (c *Column) Release() {
	if c.buf != nil {
		pool.PutColumnBuffer(c.buf)
		c.buf = nil
	}
	c.count = 0
}

// DecodeColumn restores a column produced by Column.Encode. The column's
// format is synthesized through binder.
//
// Returns errs.ErrInvalidColumn for malformed data, errs.ErrChecksumMismatch
// when the payload does not match its checksum, and errs.ErrValueOutOfRange
// when a stored raw does not fit the declared format.
func DecodeColumn(binder *bind.Binder, data []byte) (*Column, error) {
	if len(data) < columnHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidColumn, len(data))
	}
	if string(data[:4]) != columnMagic {
		return nil, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidColumn, data[:4])
	}

	flags := data[4]
	desc := format.Descriptor{
		Signed:         flags&flagSigned != 0,
		IntegerBits:    int(binary.LittleEndian.Uint16(data[5:7])),
		FractionalBits: int(data[7]),
	}
	comp := format.CompressionType(data[8])
	count := int(binary.LittleEndian.Uint32(data[9:13]))
	checksum := binary.LittleEndian.Uint64(data[13:21])

	kind, err := binder.Kind(desc)
	if err != nil {
		return nil, err
	}

	opts := []ColumnOption{WithCompression(comp), WithLittleEndian()}
	if flags&flagBigEndian != 0 {
		opts[1] = WithBigEndian()
	}
	cfg, err := options.Build(defaultColumnConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidColumn, err)
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidColumn, err)
	}
	payload, err := codec.Decompress(data[columnHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decompress payload: %w", errs.ErrInvalidColumn, err)
	}

	stride := kind.WordSize().Bytes()
	if len(payload) != count*stride {
		return nil, fmt.Errorf("%w: payload size mismatch: expected %d, got %d",
			errs.ErrInvalidColumn, count*stride, len(payload))
	}
	if hash.Sum(payload) != checksum {
		return nil, errs.ErrChecksumMismatch
	}

	c := &Column{
		kind:   kind,
		cfg:    cfg,
		buf:    pool.GetColumnBuffer(),
		stride: stride,
	}
	copy(c.buf.Extend(len(payload)), payload)
	c.count = count

	for i := range count {
		if _, err := c.At(i); err != nil {
			c.Release()
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
	}

	return c, nil
}
