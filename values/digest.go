package values

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/zeebo/blake3"
)

// Supported digest algorithms.
const (
	AlgorithmSHA256 = "sha256"
	AlgorithmSHA512 = "sha512"
	AlgorithmBLAKE3 = "blake3"
)

// Digest represents a content hash with algorithm.
type Digest struct {
	algorithm string
	value     string // hex-encoded hash
}

// CheckAlgorithm reports whether algorithm is a supported digest algorithm.
func CheckAlgorithm(algorithm string) error {
	switch algorithm {
	case AlgorithmSHA256, AlgorithmSHA512, AlgorithmBLAKE3:
		return nil
	}
	return fmt.Errorf("unsupported digest algorithm: %s", algorithm)
}

// NewDigest creates a digest from algorithm and hex value.
func NewDigest(algorithm, hexValue string) (Digest, error) {
	if err := CheckAlgorithm(algorithm); err != nil {
		return Digest{}, err
	}

	return Digest{
		algorithm: algorithm,
		value:     hexValue,
	}, nil
}

// ParseDigest parses a digest string (e.g., "sha256:abc123...").
func ParseDigest(s string) (Digest, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Digest{}, fmt.Errorf("invalid digest format: %s", s)
	}
	return NewDigest(parts[0], parts[1])
}

// ComputeDigest hashes data with the named algorithm.
func ComputeDigest(algorithm string, data []byte) (Digest, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return Digest{}, err
	}
	_, _ = h.Write(data)
	return Digest{algorithm: algorithm, value: hex.EncodeToString(h.Sum(nil))}, nil
}

// ComputeDigestReader hashes the reader contents with the named algorithm.
func ComputeDigestReader(algorithm string, r io.Reader) (Digest, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return Digest{}, err
	}
	if _, err := io.Copy(h, r); err != nil {
		return Digest{}, err
	}
	return Digest{algorithm: algorithm, value: hex.EncodeToString(h.Sum(nil))}, nil
}

func newHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmSHA512:
		return sha512.New(), nil
	case AlgorithmBLAKE3:
		return blake3.New(), nil
	default:
		return nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
	}
}

// String returns the canonical digest string.
func (d Digest) String() string {
	if d.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s:%s", d.algorithm, d.value)
}

// Algorithm returns the hash algorithm.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns the hex-encoded hash value.
func (d Digest) Value() string {
	return d.value
}

// IsEmpty returns true if this is the zero value
func (d Digest) IsEmpty() bool {
	return d.value == ""
}

// Equals checks equality with another digest.
func (d Digest) Equals(other Digest) bool {
	return d.algorithm == other.algorithm && d.value == other.value
}

// Verify validates data matches this digest.
func (d Digest) Verify(data []byte) error {
	computed, err := ComputeDigest(d.algorithm, data)
	if err != nil {
		return err
	}

	if !d.Equals(computed) {
		return fmt.Errorf("digest mismatch: expected %s, got %s", d.String(), computed.String())
	}

	return nil
}
