// Package entitylib wires catalogue sources, the hierarchy walker and output
// sinks into a single extraction pipeline.
package entitylib

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/extractor"
	"github.com/reglet-dev/reglet-entities/parser"
	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/snapshot"
)

// Pipeline extracts a kind registry and hands it to a sink.
type Pipeline struct {
	source     ports.CatalogueSource
	sampler    ports.InstanceSampler
	sink       ports.OutputSink
	logger     *slog.Logger
	walkerOpts []extractor.WalkerOption
	middleware []Middleware
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for the pipeline and its walker.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithSink sets the output sink.
func WithSink(s ports.OutputSink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// WithWalkerOptions adds options passed to the hierarchy walker.
func WithWalkerOptions(opts ...extractor.WalkerOption) Option {
	return func(p *Pipeline) { p.walkerOpts = append(p.walkerOpts, opts...) }
}

// WithMiddleware appends sink middleware. The first one added is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(p *Pipeline) { p.middleware = append(p.middleware, mw...) }
}

// NewPipeline creates a pipeline over a catalogue source and an instance sampler.
func NewPipeline(source ports.CatalogueSource, sampler ports.InstanceSampler, opts ...Option) *Pipeline {
	p := &Pipeline{
		source:  source,
		sampler: sampler,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewSnapshotPipeline creates a pipeline whose catalogue, sampler and
// attribute lookup are all served by src.
func NewSnapshotPipeline(src *snapshot.Source, opts ...Option) *Pipeline {
	opts = append([]Option{WithWalkerOptions(extractor.WithAttributeLookup(src))}, opts...)
	return NewPipeline(src, src, opts...)
}

// Extract walks the catalogue and returns the registry without writing it.
func (p *Pipeline) Extract(ctx context.Context) (*entities.Registry, error) {
	opts := append([]extractor.WalkerOption{extractor.WithLogger(p.logger)}, p.walkerOpts...)
	return extractor.NewWalker(p.source, p.sampler, opts...).Walk(ctx)
}

// Run extracts the registry and writes it through the middleware chain.
func (p *Pipeline) Run(ctx context.Context) (*entities.Registry, error) {
	if p.sink == nil {
		return nil, ErrNoSink
	}
	registry, err := p.Extract(ctx)
	if err != nil {
		return nil, err
	}
	if err := chain(p.sink.Write, p.middleware)(ctx, registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// Check re-extracts the registry and compares its encoding with the lock at path.
// Drift is reported as an error matching entities.ErrLockMismatch.
func (p *Pipeline) Check(ctx context.Context, repo ports.LockRepository, path string, enc DocumentEncoder) error {
	lock, err := repo.Load(ctx, path)
	if err != nil {
		return err
	}
	if lock == nil {
		return fmt.Errorf("%w at %s", ErrNoLock, path)
	}

	registry, err := p.Extract(ctx)
	if err != nil {
		return err
	}
	doc, err := enc.Encode(registry)
	if err != nil {
		return err
	}
	if err := lock.Verify(doc); err != nil {
		return err
	}

	p.logger.Info("registry matches lock", "path", path, "kinds", registry.Len())
	return nil
}

// LoadSnapshot reads and parses a catalogue snapshot file. The parser is
// chosen from the file extension.
func LoadSnapshot(path string, opts ...snapshot.Option) (*snapshot.Source, error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %q: %w", filepath.Dir(path), err)
	}
	defer func() { _ = root.Close() }()

	data, err := root.ReadFile(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %q: %w", path, err)
	}

	doc, err := parser.ForFile(path).Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot %q: %w", path, err)
	}
	return snapshot.NewSource(doc, opts...)
}
