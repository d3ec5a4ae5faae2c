package parser_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/reglet-dev/reglet-entities/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestYamlSnapshotParser_Parse(t *testing.T) {
	doc, err := parser.NewYamlSnapshotParser().Parse(readFixture(t, "catalogue.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", doc.FormatVersion)
	assert.Equal(t, "sim 1.21.4", doc.Source)
	require.Len(t, doc.Types, 5)
	assert.Equal(t, "Entity", doc.Types[0].Name)
	assert.Equal(t, []string{"entity", "living", "player"}, doc.Types[4].Capabilities)

	require.Len(t, doc.Registered, 3)
	wolf := doc.Registered[0]
	assert.Equal(t, "minecraft:wolf", wolf.ID)
	require.NotNil(t, wolf.Bounds)
	assert.Equal(t, 0.85, wolf.Bounds.SizeY)
	assert.Len(t, wolf.Attributes, 2)
	assert.Equal(t, "player", doc.Registered[1].Recipe)
}

func TestJSONSnapshotParser_Parse(t *testing.T) {
	doc, err := parser.NewJSONSnapshotParser().Parse(readFixture(t, "catalogue.jsonc"))
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", doc.FormatVersion)
	require.Len(t, doc.Types, 2)
	assert.Len(t, doc.Types[1].Fields, 2)

	require.Len(t, doc.Registered, 1)
	defaults := doc.Registered[0].Defaults
	require.Len(t, defaults, 2)
	assert.Equal(t, json.Number("9007199254740993"), defaults[1].Value)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		parser parser.SnapshotParser
		data   string
	}{
		{"json syntax", parser.NewJSONSnapshotParser(), `{"format_version": `},
		{"yaml syntax", parser.NewYamlSnapshotParser(), "types: [\n"},
		{"json missing version", parser.NewJSONSnapshotParser(), `{"types": []}`},
		{"yaml newer major", parser.NewYamlSnapshotParser(), "format_version: \"2.0.0\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := tt.parser.Parse([]byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, doc)
		})
	}
}

func TestCheckFormatVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.0.0", false},
		{"1.4.2", false},
		{"1", false},
		{"0.9.0", true},
		{"2.0.0", true},
		{"not-a-version", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := parser.CheckFormatVersion(tt.version)
			if tt.wantErr {
				assert.ErrorIs(t, err, parser.ErrUnsupportedFormat)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestForFile(t *testing.T) {
	assert.IsType(t, &parser.YamlSnapshotParser{}, parser.ForFile("catalogue.yaml"))
	assert.IsType(t, &parser.YamlSnapshotParser{}, parser.ForFile("CATALOGUE.YML"))
	assert.IsType(t, &parser.JSONSnapshotParser{}, parser.ForFile("catalogue.jsonc"))
	assert.IsType(t, &parser.JSONSnapshotParser{}, parser.ForFile("catalogue"))
}
