package entities

import (
	"fmt"
	"time"

	"github.com/reglet-dev/reglet-entities/values"
)

// LockVersion is the current extraction lock layout version.
const LockVersion = 1

// ExtractionLock pins the digest of a written document so later runs can
// detect drift without diffing the document itself.
//
// Invariants:
// - Digest must be set and parse as "<algorithm>:<hex>"
// - Generated timestamp must be set
type ExtractionLock struct {
	Generated   time.Time
	Source      string
	Format      string
	Compression string
	Kinds       int
	Digest      string
	Version     int
}

// NewExtractionLock creates a lock for a document digest.
func NewExtractionLock(source, format string, kinds int, digest values.Digest) *ExtractionLock {
	return &ExtractionLock{
		Version:   LockVersion,
		Generated: time.Now().UTC(),
		Source:    source,
		Format:    format,
		Kinds:     kinds,
		Digest:    digest.String(),
	}
}

// Validate checks lock invariants.
func (l *ExtractionLock) Validate() error {
	if l.Generated.IsZero() {
		return fmt.Errorf("generated timestamp is required")
	}
	if l.Digest == "" {
		return fmt.Errorf("digest is required")
	}
	if _, err := values.ParseDigest(l.Digest); err != nil {
		return fmt.Errorf("invalid digest: %w", err)
	}
	if l.Version > LockVersion {
		return fmt.Errorf("lock version %d is newer than supported version %d", l.Version, LockVersion)
	}
	return nil
}

// Verify compares the locked digest against a document's bytes.
// The document is hashed with the lock's own algorithm.
func (l *ExtractionLock) Verify(document []byte) error {
	expected, err := values.ParseDigest(l.Digest)
	if err != nil {
		return fmt.Errorf("invalid digest: %w", err)
	}
	actual, err := values.ComputeDigest(expected.Algorithm(), document)
	if err != nil {
		return err
	}
	if !expected.Equals(actual) {
		return &LockMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}
