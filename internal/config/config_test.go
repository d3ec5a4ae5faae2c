package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reglet-dev/reglet-entities/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v, err := config.New("")
	require.NoError(t, err)
	s, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "none", s.Compression)
	assert.Equal(t, "sha256", s.Digest)
	assert.Equal(t, "prompt", s.Overwrite)
	assert.Equal(t, 32, s.MaxDepth)
	assert.True(t, s.Validate)
	assert.Empty(t, s.Include)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".reglet"), 0o750))
	require.NoError(t, os.WriteFile(config.FilePath(), []byte(
		"format: yaml\ncompress: zstd\ninclude: [Wolf, Cat*]\nmax-depth: 8\n"), 0o600))
	t.Setenv("REGLET_ENTITIES_FORMAT", "cbor")
	t.Setenv("REGLET_ENTITIES_MAX_DEPTH", "4")

	v, err := config.New("")
	require.NoError(t, err)
	s, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "cbor", s.Format)
	assert.Equal(t, "zstd", s.Compression)
	assert.Equal(t, []string{"Wolf", "Cat*"}, s.Include)
	assert.Equal(t, 4, s.MaxDepth)
}

func TestNew_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snapshot: cat.yaml\n"), 0o600))

	v, err := config.New(path)
	require.NoError(t, err)
	s, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "cat.yaml", s.Snapshot)

	_, err = config.New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveDepth(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REGLET_ENTITIES_MAX_DEPTH", "0")

	v, err := config.New("")
	require.NoError(t, err)
	_, err = config.Load(v)
	assert.Error(t, err)
}
