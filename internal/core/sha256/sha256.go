// Package sha256 implements the SHA-256 hash function as defined in FIPS 180-4,
// built from the padding, message schedule and compression steps directly.
//
// The package hashes one complete in-memory message per call. It keeps no
// mutable package state, so independent messages may be hashed concurrently.
package sha256

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Size is the size of a SHA-256 digest in bytes.
const Size = 32

// BlockSize is the size of one padded message block in bytes.
const BlockSize = 64

var (
	// ErrOverflow is returned when the message bit length does not fit in
	// the 64-bit length field appended during padding.
	ErrOverflow = errors.New("sha256: message length overflows 64-bit bit count")

	// ErrInvalidInput is returned when text input is not valid UTF-8.
	ErrInvalidInput = errors.New("sha256: input is not valid UTF-8")
)

// State is the running hash value, eight 32-bit words.
type State [8]uint32

// iv is the initialization vector: the first 32 bits of the fractional parts
// of the square roots of the first 8 primes.
var iv = State{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// InitialState returns a copy of the initialization vector.
func InitialState() State {
	return iv
}

// Sum returns the SHA-256 digest of msg.
func Sum(msg []byte) ([Size]byte, error) {
	var out [Size]byte

	padded, err := Pad(msg)
	if err != nil {
		return out, err
	}

	s := InitialState()
	// Each block's output state is the next block's input; order matters.
	for len(padded) >= BlockSize {
		w := Expand((*[BlockSize]byte)(padded[:BlockSize]))
		s = Compress(&w, s)
		padded = padded[BlockSize:]
	}

	for i, v := range s {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out, nil
}

// Digest returns the SHA-256 digest of msg as 64 lowercase hex characters.
func Digest(msg []byte) (string, error) {
	sum, err := Sum(msg)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum[:]), nil
}

// SumString returns the digest of the UTF-8 bytes of s. It fails with
// ErrInvalidInput before any hashing if s is not valid UTF-8.
func SumString(s string) ([Size]byte, error) {
	if !utf8.ValidString(s) {
		return [Size]byte{}, fmt.Errorf("digest string of %d bytes: %w", len(s), ErrInvalidInput)
	}
	return Sum([]byte(s))
}

// DigestString is SumString rendered as lowercase hex.
func DigestString(s string) (string, error) {
	sum, err := SumString(s)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum[:]), nil
}
