package sha256

import (
	"encoding/binary"
	"math/bits"
)

// Schedule is the 64-word message schedule derived from one block.
type Schedule [64]uint32

// _K holds the round constants: the first 32 bits of the fractional parts of
// the cube roots of the first 64 primes. Never written after initialization.
var _K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func rotr(x uint32, n int) uint32 {
	return bits.RotateLeft32(x, -n)
}

// Expand derives the 64-word message schedule for block.
func Expand(block *[BlockSize]byte) Schedule {
	var w Schedule
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		v1 := w[i-2]
		s1 := rotr(v1, 17) ^ rotr(v1, 19) ^ (v1 >> 10)
		v2 := w[i-15]
		s0 := rotr(v2, 7) ^ rotr(v2, 18) ^ (v2 >> 3)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}
	return w
}

// Compress runs the 64 rounds over schedule w starting from s and returns
// the new state. Word arithmetic wraps modulo 2^32.
func Compress(w *Schedule, s State) State {
	a, b, c, d, e, f, g, h := s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7]

	for i := 0; i < 64; i++ {
		S1 := rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
		ch := (e & f) ^ (^e & g)
		t1 := h + S1 + ch + _K[i] + w[i]

		S0 := rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := S0 + maj

		h = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	return State{
		s[0] + a, s[1] + b, s[2] + c, s[3] + d,
		s[4] + e, s[5] + f, s[6] + g, s[7] + h,
	}
}
