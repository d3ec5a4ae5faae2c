package parser

import "github.com/reglet-dev/reglet-entities/snapshot"

// SnapshotParser parses raw snapshot bytes into a Document.
type SnapshotParser interface {
	// Parse unmarshals snapshot bytes and checks the format version.
	Parse(data []byte) (*snapshot.Document, error)
}
