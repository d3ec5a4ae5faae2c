package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SupportedFormats is the snapshot format_version constraint this build reads.
const SupportedFormats = "^1.0.0"

// ErrUnsupportedFormat is returned for snapshots outside SupportedFormats.
var ErrUnsupportedFormat = errors.New("unsupported snapshot format version")

// CheckFormatVersion reports whether a snapshot's format_version can be read.
func CheckFormatVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: format_version is required", ErrUnsupportedFormat)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedFormat, version, err)
	}

	c, err := semver.NewConstraint(SupportedFormats)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", SupportedFormats, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedFormat, v.Original(), SupportedFormats)
	}
	return nil
}

// ForFile picks a parser from a file name. Files ending in .yaml or .yml are
// YAML; everything else is JSON.
func ForFile(name string) SnapshotParser {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return NewYamlSnapshotParser()
	default:
		return NewJSONSnapshotParser()
	}
}
