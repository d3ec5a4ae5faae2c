// Package config resolves CLI settings from flags, environment and the
// optional config file at ~/.reglet/entities.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. REGLET_ENTITIES_FORMAT.
	EnvPrefix = "REGLET_ENTITIES"

	dirName  = ".reglet"
	fileName = "entities"
	fileType = "yaml"
)

// Settings are the resolved CLI settings.
type Settings struct {
	Snapshot    string   `mapstructure:"snapshot"`
	Out         string   `mapstructure:"out"`
	Format      string   `mapstructure:"format"`
	Compression string   `mapstructure:"compress"`
	Lock        string   `mapstructure:"lock"`
	Digest      string   `mapstructure:"digest"`
	Include     []string `mapstructure:"include"`
	Overwrite   string   `mapstructure:"overwrite"`
	MaxDepth    int      `mapstructure:"max-depth"`
	Validate    bool     `mapstructure:"validate"`
	Yes         bool     `mapstructure:"yes"`
	Verbose     bool     `mapstructure:"verbose"`
}

// Dir returns the config directory (~/.reglet/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// FilePath returns the default config file path (~/.reglet/entities.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a Viper instance with defaults, environment overrides and the
// config file loaded. An empty path selects FilePath, which may be absent;
// an explicit path must exist.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = FilePath()
	}
	v.SetConfigFile(path)
	v.SetConfigType(fileType)

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("snapshot", "")
	v.SetDefault("out", "")
	v.SetDefault("format", "json")
	v.SetDefault("compress", "none")
	v.SetDefault("lock", "")
	v.SetDefault("digest", "sha256")
	v.SetDefault("include", []string{})
	v.SetDefault("overwrite", "prompt")
	v.SetDefault("max-depth", 32)
	v.SetDefault("validate", true)
	v.SetDefault("yes", false)
	v.SetDefault("verbose", false)
}

// Load decodes the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if s.MaxDepth <= 0 {
		return Settings{}, fmt.Errorf("max-depth must be positive, got %d", s.MaxDepth)
	}
	return s, nil
}
