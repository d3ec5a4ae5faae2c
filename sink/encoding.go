// Package sink provides output adapters for the kind registry: a file sink
// with several encodings, an in-memory sink and the extraction lock repository.
package sink

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/compress/zstd"
	"github.com/reglet-dev/reglet-entities/entities"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Compression is a document compression scheme.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
)

// ParseFormat resolves a format name. The empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// ParseCompression resolves a compression name. The empty string selects none.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(s)); c {
	case "":
		return CompressionNone, nil
	case CompressionNone, CompressionZstd:
		return c, nil
	}
	return "", fmt.Errorf("unknown compression %q", s)
}

// Extension returns the conventional file extension for the format and compression.
func Extension(f Format, c Compression) string {
	ext := "." + string(f)
	if c == CompressionZstd {
		ext += ".zst"
	}
	return ext
}

// FormatForFile infers the format and compression of a document from its
// file name, such as "entities.yaml.zst".
func FormatForFile(name string) (Format, Compression, error) {
	base := strings.ToLower(filepath.Base(name))
	c := CompressionNone
	if trimmed, ok := strings.CutSuffix(base, ".zst"); ok {
		base, c = trimmed, CompressionZstd
	}
	switch ext := filepath.Ext(base); ext {
	case ".json":
		return FormatJSON, c, nil
	case ".yaml", ".yml":
		return FormatYAML, c, nil
	case ".cbor":
		return FormatCBOR, c, nil
	default:
		return "", "", fmt.Errorf("cannot infer document format from %q", name)
	}
}

// Encode renders the registry in the given format. JSON and YAML keep
// registry order; CBOR uses core deterministic encoding, which sorts keys.
// The same registry always encodes to the same bytes.
func Encode(registry *entities.Registry, f Format) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		data, err := json.MarshalIndent(registry, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding JSON document: %w", err)
		}
		return append(data, '\n'), nil

	case FormatYAML:
		records := registry.Records()
		doc := make(yaml.MapSlice, 0, len(records))
		for _, nr := range records {
			doc = append(doc, yaml.MapItem{Key: nr.Name, Value: nr.Record})
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encoding YAML document: %w", err)
		}
		return data, nil

	case FormatCBOR:
		em, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, fmt.Errorf("configuring CBOR encoder: %w", err)
		}
		data, err := em.Marshal(registry.Document())
		if err != nil {
			return nil, fmt.Errorf("encoding CBOR document: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unknown output format %q", f)
}

// Compress applies c to data.
func Compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}
		defer func() { _ = enc.Close() }()
		return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	}
	return nil, fmt.Errorf("unknown compression %q", c)
}

// Decompress reverses Compress.
func Decompress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone, "":
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing document: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown compression %q", c)
}

// ToJSON converts an uncompressed document in format f to JSON so it can be
// checked against the document schema.
func ToJSON(data []byte, f Format) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		return data, nil
	case FormatYAML:
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("converting YAML document: %w", err)
		}
		return out, nil
	case FormatCBOR:
		dm, err := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
		if err != nil {
			return nil, fmt.Errorf("configuring CBOR decoder: %w", err)
		}
		var doc any
		if err := dm.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding CBOR document: %w", err)
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("converting CBOR document: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unknown output format %q", f)
}
