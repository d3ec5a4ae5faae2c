package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/reglet-dev/reglet-entities/snapshot"
	"github.com/tidwall/jsonc"
)

// JSONSnapshotParser implements SnapshotParser for JSON. Comments and
// trailing commas are accepted.
type JSONSnapshotParser struct{}

// NewJSONSnapshotParser creates a new JSONSnapshotParser.
func NewJSONSnapshotParser() SnapshotParser {
	return &JSONSnapshotParser{}
}

// Parse unmarshals JSON bytes into a Document. Numbers are kept as
// json.Number so long values survive decoding.
func (p *JSONSnapshotParser) Parse(data []byte) (*snapshot.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var doc snapshot.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := CheckFormatVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	return &doc, nil
}
