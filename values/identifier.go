package values

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultNamespace is assumed when an identifier is written without one.
const DefaultNamespace = "minecraft"

// Identifier is a namespaced registry key such as "minecraft:pig".
type Identifier struct {
	namespace string
	path      string
}

// NewIdentifier creates an Identifier from its parts.
// Namespace and path must be non-empty and use the registry character set:
// lowercase letters, digits, '_', '-', '.', and '/' (path only).
func NewIdentifier(namespace, path string) (Identifier, error) {
	if namespace == "" {
		return Identifier{}, fmt.Errorf("identifier namespace cannot be empty")
	}
	if path == "" {
		return Identifier{}, fmt.Errorf("identifier path cannot be empty")
	}
	for _, ch := range namespace {
		if !isIdentifierChar(ch, false) {
			return Identifier{}, fmt.Errorf("invalid identifier namespace %q", namespace)
		}
	}
	for _, ch := range path {
		if !isIdentifierChar(ch, true) {
			return Identifier{}, fmt.Errorf("invalid identifier path %q", path)
		}
	}
	return Identifier{namespace: namespace, path: path}, nil
}

// ParseIdentifier parses "namespace:path" or a bare "path" in the default namespace.
func ParseIdentifier(s string) (Identifier, error) {
	s = strings.TrimSpace(s)
	namespace, path, found := strings.Cut(s, ":")
	if !found {
		return NewIdentifier(DefaultNamespace, s)
	}
	return NewIdentifier(namespace, path)
}

// MustParseIdentifier parses an identifier or panics
func MustParseIdentifier(s string) Identifier {
	id, err := ParseIdentifier(s)
	if err != nil {
		panic(err)
	}
	return id
}

func isIdentifierChar(r rune, path bool) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '.':
		return true
	case r == '/':
		return path
	}
	return false
}

// Namespace returns the namespace part.
func (i Identifier) Namespace() string {
	return i.namespace
}

// Path returns the path part, the "short name" used throughout the output.
func (i Identifier) Path() string {
	return i.path
}

// IsEmpty returns true if this is the zero value
func (i Identifier) IsEmpty() bool {
	return i.path == ""
}

// Equals checks if two identifiers are equal
func (i Identifier) Equals(other Identifier) bool {
	return i.namespace == other.namespace && i.path == other.path
}

// String returns the canonical "namespace:path" form.
func (i Identifier) String() string {
	if i.IsEmpty() {
		return ""
	}
	return i.namespace + ":" + i.path
}

// MarshalJSON implements json.Marshaler.
func (i Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (i *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid identifier JSON: %w", err)
	}
	id, err := ParseIdentifier(s)
	if err != nil {
		return err
	}
	*i = id
	return nil
}
