package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.B = append(bb.B, 1, 2, 3)

	bb.Grow(4)
	require.Equal(t, 8, bb.Cap(), "enough room, no growth")

	bb.Grow(10)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 10)
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())
}

func TestByteBuffer_GrowLarge(t *testing.T) {
	bb := NewByteBuffer(8 * ColumnBufferDefaultSize)
	bb.B = bb.B[:cap(bb.B)]

	bb.Grow(1)
	require.Equal(t, 8*ColumnBufferDefaultSize+2*ColumnBufferDefaultSize, bb.Cap())
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.B = append(bb.B, 0xff, 0xff)

	tail := bb.Extend(3)
	require.Len(t, tail, 3)
	require.Equal(t, []byte{0, 0, 0}, tail)
	require.Equal(t, 5, bb.Len())

	tail[1] = 0x7
	require.Equal(t, []byte{0xff, 0xff, 0, 0x7, 0}, bb.Bytes())
}

func TestByteBuffer_ExtendClearsReusedMemory(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.B = append(bb.B, 9, 9, 9, 9)
	bb.Reset()

	require.Equal(t, []byte{0, 0}, bb.Extend(2))
}

func TestByteBufferPool(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	bb.B = append(bb.B, 1, 2, 3)
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len())

	big := NewByteBuffer(128)
	p.Put(big) // dropped, over threshold
	p.Put(nil)
}

func TestColumnPool(t *testing.T) {
	bb := GetColumnBuffer()
	require.NotNil(t, bb)
	require.GreaterOrEqual(t, bb.Cap(), 0)
	bb.Extend(16)
	PutColumnBuffer(bb)
}
