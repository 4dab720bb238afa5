package sha256

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLength_Overflow(t *testing.T) {
	t.Parallel()
	require.NoError(t, checkLength(0))
	require.NoError(t, checkLength(math.MaxUint64/8))

	err := checkLength(math.MaxUint64/8 + 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestPad_Empty(t *testing.T) {
	t.Parallel()
	padded, err := Pad(nil)
	require.NoError(t, err)
	require.Len(t, padded, BlockSize, "Empty message should pad to exactly one block")

	assert.Equal(t, byte(0x80), padded[0])
	for i := 1; i < BlockSize; i++ {
		assert.Zero(t, padded[i], "byte %d should be zero", i)
	}
}

func TestPad_BlockBoundaries(t *testing.T) {
	t.Parallel()
	tests := []struct {
		length int
		blocks int
	}{
		{0, 1},
		{1, 1},
		{55, 1},
		{56, 2},
		{63, 2},
		{64, 2},
		{119, 2},
		{120, 3},
		{128, 3},
	}
	for _, tt := range tests {
		msg := make([]byte, tt.length)
		padded, err := Pad(msg)
		require.NoError(t, err)
		assert.Equal(t, tt.blocks*BlockSize, len(padded), "length %d", tt.length)
		assert.Equal(t, tt.blocks, BlockCount(tt.length), "BlockCount(%d)", tt.length)
	}
}

func TestPad_Structure(t *testing.T) {
	t.Parallel()
	for n := 0; n <= 300; n++ {
		msg := make([]byte, n)
		for i := range msg {
			msg[i] = byte(i*7 + 1)
		}

		padded, err := Pad(msg)
		require.NoError(t, err)
		require.Zero(t, len(padded)%BlockSize, "length %d: padded length not a multiple of 64", n)
		require.Greater(t, len(padded), n, "padding must never be a no-op")

		assert.Equal(t, msg, padded[:n], "length %d: message prefix altered", n)
		assert.Equal(t, byte(0x80), padded[n], "length %d: missing marker byte", n)
		for i := n + 1; i < len(padded)-8; i++ {
			require.Zero(t, padded[i], "length %d: non-zero fill byte at %d", n, i)
		}
		assert.Equal(t, uint64(n)*8, binary.BigEndian.Uint64(padded[len(padded)-8:]), "length %d: wrong length field", n)
	}
}

func TestPad_DoesNotAliasInput(t *testing.T) {
	t.Parallel()
	msg := make([]byte, 3, 64)
	copy(msg, "abc")

	padded, err := Pad(msg)
	require.NoError(t, err)
	padded[0] = 'z'
	assert.Equal(t, "abc", string(msg))
	assert.Equal(t, byte(0), msg[:4][3], "Pad must not write into spare capacity of the input")
}
