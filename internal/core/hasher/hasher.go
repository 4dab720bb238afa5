// Package hasher renders SHA-256 digests in the forms dgst prints and records.
package hasher

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"

	"github.com/nightconcept/dgst/internal/core/sha256"
)

// Prefix marks the algorithm in prefixed digests.
const Prefix = "sha256:"

// OutputFormat selects how a digest is rendered.
type OutputFormat string

const (
	// FormatHex is the bare 64 character lowercase hex digest.
	FormatHex OutputFormat = "hex"
	// FormatPrefixed is "sha256:<hex>", the manifest form.
	FormatPrefixed OutputFormat = "prefixed"
	// FormatMultihash is the sha2-256 multihash encoded as base32 multibase text.
	FormatMultihash OutputFormat = "multihash"
)

// ParseFormat converts a flag or config value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHex, FormatPrefixed, FormatMultihash:
		return f, nil
	case "":
		return FormatPrefixed, nil
	default:
		return "", fmt.Errorf("unknown output format '%s' (expected hex, prefixed or multihash)", s)
	}
}

// CalculateSHA256 computes the SHA256 hash of the given content
// and returns it in the format "sha256:<hex_hash>".
func CalculateSHA256(content []byte) (string, error) {
	return Format(content, FormatPrefixed)
}

// Format hashes content and renders the digest in the requested format.
func Format(content []byte, f OutputFormat) (string, error) {
	sum, err := sha256.Sum(content)
	if err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}
	return Render(sum, f)
}

// FormatString hashes the UTF-8 text s and renders the digest. Text that is
// not valid UTF-8 is rejected with sha256.ErrInvalidInput.
func FormatString(s string, f OutputFormat) (string, error) {
	sum, err := sha256.SumString(s)
	if err != nil {
		return "", err
	}
	return Render(sum, f)
}

// Render formats an already computed digest.
func Render(sum [sha256.Size]byte, f OutputFormat) (string, error) {
	switch f {
	case FormatHex:
		return hex.EncodeToString(sum[:]), nil
	case FormatPrefixed, "":
		return Prefix + hex.EncodeToString(sum[:]), nil
	case FormatMultihash:
		mh, err := multihash.Encode(sum[:], multihash.SHA2_256)
		if err != nil {
			return "", fmt.Errorf("failed to encode multihash: %w", err)
		}
		s, err := multibase.Encode(multibase.Base32, mh)
		if err != nil {
			return "", fmt.Errorf("failed to encode multibase: %w", err)
		}
		return s, nil
	default:
		return "", fmt.Errorf("unknown output format '%s'", f)
	}
}

// Decode parses a digest in any supported format back into its raw bytes.
func Decode(s string) ([sha256.Size]byte, error) {
	var sum [sha256.Size]byte
	s = strings.TrimSpace(s)

	var raw []byte
	switch {
	case strings.HasPrefix(s, Prefix):
		b, err := hex.DecodeString(strings.TrimPrefix(s, Prefix))
		if err != nil {
			return sum, fmt.Errorf("invalid hex in digest '%s': %w", s, err)
		}
		raw = b
	case len(s) == hex.EncodedLen(sha256.Size):
		b, err := hex.DecodeString(s)
		if err != nil {
			return sum, fmt.Errorf("invalid hex digest '%s': %w", s, err)
		}
		raw = b
	default:
		_, data, err := multibase.Decode(s)
		if err != nil {
			return sum, fmt.Errorf("unrecognised digest '%s': %w", s, err)
		}
		dm, err := multihash.Decode(data)
		if err != nil {
			return sum, fmt.Errorf("invalid multihash in '%s': %w", s, err)
		}
		if dm.Code != multihash.SHA2_256 {
			return sum, fmt.Errorf("digest '%s' uses %s, not sha2-256", s, dm.Name)
		}
		raw = dm.Digest
	}

	if len(raw) != sha256.Size {
		return sum, fmt.Errorf("digest '%s' has %d bytes, expected %d", s, len(raw), sha256.Size)
	}
	copy(sum[:], raw)
	return sum, nil
}

// Verify reports whether content hashes to expected, which may be in any
// supported format.
func Verify(content []byte, expected string) (bool, error) {
	want, err := Decode(expected)
	if err != nil {
		return false, err
	}
	got, err := sha256.Sum(content)
	if err != nil {
		return false, fmt.Errorf("failed to hash content: %w", err)
	}
	return got == want, nil
}
