// Package parser decodes catalogue snapshot files.
package parser

import (
	"fmt"

	"github.com/reglet-dev/reglet-entities/snapshot"
	"gopkg.in/yaml.v3"
)

// YamlSnapshotParser implements SnapshotParser for YAML.
type YamlSnapshotParser struct{}

// NewYamlSnapshotParser creates a new YamlSnapshotParser.
func NewYamlSnapshotParser() SnapshotParser {
	return &YamlSnapshotParser{}
}

// Parse unmarshals YAML bytes into a Document.
func (p *YamlSnapshotParser) Parse(data []byte) (*snapshot.Document, error) {
	var doc snapshot.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := CheckFormatVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	return &doc, nil
}
