package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
)

// ErrOverwriteDenied is returned when an existing output may not be replaced.
var ErrOverwriteDenied = errors.New("overwrite of existing output denied")

// OverwriteGate decides whether an existing file may be replaced.
type OverwriteGate interface {
	AllowOverwrite(ctx context.Context, path string) (bool, error)
}

// FileSink writes the registry document to a single file.
type FileSink struct {
	path        string
	format      Format
	compression Compression
	gate        OverwriteGate
	logger      *slog.Logger
}

var _ ports.OutputSink = (*FileSink)(nil)

// FileSinkOption configures a FileSink.
type FileSinkOption func(*FileSink)

// WithFormat sets the document encoding.
func WithFormat(f Format) FileSinkOption {
	return func(s *FileSink) { s.format = f }
}

// WithCompression sets the document compression.
func WithCompression(c Compression) FileSinkOption {
	return func(s *FileSink) { s.compression = c }
}

// WithOverwriteGate consults gate before replacing an existing file.
// Without a gate existing files are replaced.
func WithOverwriteGate(gate OverwriteGate) FileSinkOption {
	return func(s *FileSink) { s.gate = gate }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) FileSinkOption {
	return func(s *FileSink) { s.logger = l }
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string, opts ...FileSinkOption) *FileSink {
	s := &FileSink{
		path:        path,
		format:      FormatJSON,
		compression: CompressionNone,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the output path.
func (s *FileSink) Path() string { return s.path }

// Format returns the document encoding.
func (s *FileSink) Format() Format { return s.format }

// Compression returns the document compression.
func (s *FileSink) Compression() Compression { return s.compression }

// Encode returns the uncompressed document bytes this sink would write.
func (s *FileSink) Encode(registry *entities.Registry) ([]byte, error) {
	return Encode(registry, s.format)
}

// Write encodes, compresses and writes the registry.
func (s *FileSink) Write(ctx context.Context, registry *entities.Registry) error {
	if s.gate != nil {
		if _, err := os.Stat(s.path); err == nil {
			ok, err := s.gate.AllowOverwrite(ctx, s.path)
			if err != nil {
				return fmt.Errorf("asking to overwrite %q: %w", s.path, err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", ErrOverwriteDenied, s.path)
			}
		}
	}

	doc, err := s.Encode(registry)
	if err != nil {
		return err
	}
	data, err := Compress(doc, s.compression)
	if err != nil {
		return err
	}

	if err := writeFile(s.path, data); err != nil {
		return err
	}

	s.logger.Debug("wrote document",
		"path", s.path,
		"format", string(s.format),
		"compression", string(s.compression),
		"bytes", len(data))
	return nil
}

// ReadDocument reads a document written by a FileSink with the same settings
// and returns its uncompressed bytes.
func (s *FileSink) ReadDocument() ([]byte, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}
	return Decompress(data, s.compression)
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %q: %w", dir, err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("opening directory for write %q: %w", dir, err)
	}
	defer func() { _ = root.Close() }()

	base := filepath.Base(path)
	file, err := root.OpenFile(base, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating output %q: %w", base, err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing output %q: %w", base, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output %q: %w", base, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	root, err := os.OpenRoot(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %q: %w", filepath.Dir(path), err)
	}
	defer func() { _ = root.Close() }()

	data, err := root.ReadFile(filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return data, nil
}
