package sha256

import (
	"encoding/binary"
	"fmt"
	"math"
)

// checkLength reports whether a message of n bytes can be padded, i.e.
// whether n*8 fits in the 64-bit length field.
func checkLength(n uint64) error {
	if n > math.MaxUint64/8 {
		return fmt.Errorf("message of %d bytes: %w", n, ErrOverflow)
	}
	return nil
}

// BlockCount returns the number of 64-byte blocks a message of n bytes pads to.
func BlockCount(n int) int {
	// One 0x80 marker byte and the 8-byte length always follow the message.
	return (n + 1 + 8 + BlockSize - 1) / BlockSize
}

// Pad returns a new slice holding msg followed by the 0x80 marker, zero
// bytes up to 448 mod 512 bits, and the original bit length as a 64-bit
// big-endian integer. The result length is a multiple of BlockSize and is
// never equal to len(msg).
func Pad(msg []byte) ([]byte, error) {
	if err := checkLength(uint64(len(msg))); err != nil {
		return nil, err
	}

	padded := make([]byte, BlockCount(len(msg))*BlockSize)
	copy(padded, msg)
	padded[len(msg)] = 0x80
	binary.BigEndian.PutUint64(padded[len(padded)-8:], uint64(len(msg))*8)
	return padded, nil
}
