package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

func TestIsBigEndian(t *testing.T) {
	require.False(t, IsBigEndian(GetLittleEndianEngine()))
	require.True(t, IsBigEndian(GetBigEndianEngine()))
}

func TestNativeEngine(t *testing.T) {
	engine := GetNativeEngine()
	require.Equal(t, IsNativeBigEndian(), IsBigEndian(engine))

	var buf [4]byte
	engine.PutUint32(buf[:], 0xdeadbeef)
	require.Equal(t, uint32(0xdeadbeef), binary.NativeEndian.Uint32(buf[:]))
}

func TestFlagRoundTrip(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		back, err := FromFlag(Flag(engine))
		require.NoError(t, err)
		require.Equal(t, engine, back)
	}

	require.Equal(t, FlagLittle, Flag(GetLittleEndianEngine()))
	require.Equal(t, FlagBig, Flag(GetBigEndianEngine()))

	_, err := FromFlag(0x7)
	require.Error(t, err)
}

func TestEngineAppend(t *testing.T) {
	tests := []struct {
		name   string
		engine EndianEngine
		want   []byte
	}{
		{"little", GetLittleEndianEngine(), []byte{0x34, 0x12}},
		{"big", GetBigEndianEngine(), []byte{0x12, 0x34}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.engine.AppendUint16(nil, 0x1234)
			require.Equal(t, tt.want, got)
			require.Equal(t, uint16(0x1234), tt.engine.Uint16(got))
		})
	}
}
