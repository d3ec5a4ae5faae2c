package sink

import (
	"time"

	"github.com/reglet-dev/reglet-entities/entities"
)

// Lockfile represents the YAML structure of an extraction lock.
type Lockfile struct {
	Generated   time.Time `yaml:"generated"`
	Source      string    `yaml:"source,omitempty"`
	Format      string    `yaml:"format"`
	Compression string    `yaml:"compression,omitempty"`
	Kinds       int       `yaml:"kinds"`
	Digest      string    `yaml:"digest"`
	Version     int       `yaml:"lockfile_version"`
}

// ToEntity converts the lockfile to a domain entity.
func (l *Lockfile) ToEntity() *entities.ExtractionLock {
	return &entities.ExtractionLock{
		Generated:   l.Generated,
		Source:      l.Source,
		Format:      l.Format,
		Compression: l.Compression,
		Kinds:       l.Kinds,
		Digest:      l.Digest,
		Version:     l.Version,
	}
}

// FromEntity converts a domain lock to its YAML representation.
func FromEntity(entity *entities.ExtractionLock) *Lockfile {
	if entity == nil {
		return nil
	}
	return &Lockfile{
		Generated:   entity.Generated,
		Source:      entity.Source,
		Format:      entity.Format,
		Compression: entity.Compression,
		Kinds:       entity.Kinds,
		Digest:      entity.Digest,
		Version:     entity.Version,
	}
}
