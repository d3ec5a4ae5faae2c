package sink

import (
	"context"
	"sync"

	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
)

// MemorySink keeps every registry written to it.
type MemorySink struct {
	mu     sync.Mutex
	writes []*entities.Registry
}

var _ ports.OutputSink = (*MemorySink)(nil)

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(ctx context.Context, registry *entities.Registry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, registry)
	return nil
}

// Last returns the most recently written registry, or nil.
func (s *MemorySink) Last() *entities.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.writes) == 0 {
		return nil
	}
	return s.writes[len(s.writes)-1]
}

// Writes returns how many registries were written.
func (s *MemorySink) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.writes)
}
