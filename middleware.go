package entitylib

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/reglet-dev/reglet-entities/entities"
	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/sink"
	"github.com/reglet-dev/reglet-entities/validation"
	"github.com/reglet-dev/reglet-entities/values"
)

// Stage delivers a finished registry. The output sink's Write is the innermost stage.
type Stage func(ctx context.Context, registry *entities.Registry) error

// Middleware is a function that wraps a Stage to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	timing := func(next Stage) Stage {
//	    return func(ctx context.Context, reg *entities.Registry) error {
//	        start := time.Now()
//	        defer func() { log.Printf("write took %s", time.Since(start)) }()
//	        return next(ctx, reg)
//	    }
//	}
type Middleware func(next Stage) Stage

func chain(stage Stage, middleware []Middleware) Stage {
	for i := len(middleware) - 1; i >= 0; i-- {
		stage = middleware[i](stage)
	}
	return stage
}

// PanicRecoveryMiddleware returns a middleware that converts panics raised by
// later stages into a *PanicError.
func PanicRecoveryMiddleware() Middleware {
	return func(next Stage) Stage {
		return func(ctx context.Context, registry *entities.Registry) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = NewPanicError(r)
				}
			}()
			return next(ctx, registry)
		}
	}
}

// LoggingMiddleware returns a middleware that logs registry writes.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Stage) Stage {
		return func(ctx context.Context, registry *entities.Registry) error {
			start := time.Now()
			logger.Debug("writing registry", "kinds", registry.Len())
			if err := next(ctx, registry); err != nil {
				logger.Error("writing registry failed", "kinds", registry.Len(), "error", err)
				return err
			}
			logger.Info("wrote registry", "kinds", registry.Len(), "duration", time.Since(start))
			return nil
		}
	}
}

// ValidationMiddleware returns a middleware that validates the JSON encoding
// of the registry before later stages see it.
func ValidationMiddleware(validator validation.DocumentValidator) Middleware {
	return func(next Stage) Stage {
		return func(ctx context.Context, registry *entities.Registry) error {
			doc, err := sink.Encode(registry, sink.FormatJSON)
			if err != nil {
				return err
			}
			res, err := validator.Validate(doc)
			if err != nil {
				return fmt.Errorf("validating document: %w", err)
			}
			if !res.Valid {
				return &InvalidDocumentError{Issues: res.Errors}
			}
			return next(ctx, registry)
		}
	}
}

// DocumentEncoder renders a registry as the uncompressed bytes that are locked.
type DocumentEncoder interface {
	Encode(registry *entities.Registry) ([]byte, error)
}

// LockConfig describes where and how the extraction lock is written.
type LockConfig struct {
	Repository ports.LockRepository
	Encoder    DocumentEncoder
	Path       string
	Source     string
	Format     string
	// Compression is recorded only; the digest covers uncompressed bytes.
	Compression string
	// Algorithm defaults to sha256.
	Algorithm string
}

func (c LockConfig) algorithm() string {
	if c.Algorithm == "" {
		return values.AlgorithmSHA256
	}
	return c.Algorithm
}

// LockMiddleware returns a middleware that writes the extraction lock once
// later stages have succeeded. An unsupported algorithm fails before they run.
func LockMiddleware(cfg LockConfig) Middleware {
	return func(next Stage) Stage {
		return func(ctx context.Context, registry *entities.Registry) error {
			if err := values.CheckAlgorithm(cfg.algorithm()); err != nil {
				return fmt.Errorf("lock: %w", err)
			}
			if err := next(ctx, registry); err != nil {
				return err
			}

			doc, err := cfg.Encoder.Encode(registry)
			if err != nil {
				return err
			}
			digest, err := values.ComputeDigest(cfg.algorithm(), doc)
			if err != nil {
				return fmt.Errorf("computing document digest: %w", err)
			}

			lock := entities.NewExtractionLock(cfg.Source, cfg.Format, registry.Len(), digest)
			lock.Compression = cfg.Compression
			if err := cfg.Repository.Save(ctx, lock, cfg.Path); err != nil {
				return fmt.Errorf("saving lock: %w", err)
			}
			return nil
		}
	}
}
