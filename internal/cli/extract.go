package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	entitylib "github.com/reglet-dev/reglet-entities"
	"github.com/reglet-dev/reglet-entities/extractor"
	"github.com/reglet-dev/reglet-entities/gatekeeper"
	"github.com/reglet-dev/reglet-entities/internal/config"
	"github.com/reglet-dev/reglet-entities/sink"
	"github.com/reglet-dev/reglet-entities/snapshot"
	"github.com/reglet-dev/reglet-entities/validation"
	"github.com/reglet-dev/reglet-entities/values"
	"github.com/spf13/cobra"
)

func addSnapshotFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("snapshot", "s", "", "Catalogue snapshot file (.json, .jsonc, .yaml)")
	cmd.Flags().StringP("out", "o", "", "Output document (default entities.<format>[.zst])")
	cmd.Flags().StringP("format", "f", "json", "Output format: json, yaml or cbor")
	cmd.Flags().String("compress", "none", "Output compression: none or zstd")
	cmd.Flags().String("lock", "", "Lock file (default entities.lock.yaml next to the output)")
	cmd.Flags().StringSlice("include", nil, "Only start walks at kinds whose name matches these globs")
	cmd.Flags().Int("max-depth", extractor.DefaultMaxDepth, "Maximum supertype chain depth")
}

func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the kind registry and write it with its lock",
		Long: `Extract walks the catalogue snapshot, builds the kind registry and writes it
to the output document. A lock recording the document digest is written next
to it so that "check" can detect drift later.`,
		Args: cobra.NoArgs,
		RunE: a.runExtract,
	}
	addSnapshotFlags(cmd)
	cmd.Flags().String("digest", "sha256", "Lock digest algorithm: sha256, sha512 or blake3")
	cmd.Flags().String("overwrite", "prompt", "Existing output policy: prompt, always or never")
	cmd.Flags().BoolP("yes", "y", false, "Overwrite existing output without asking")
	cmd.Flags().Bool("validate", true, "Validate the document against its schema before writing")
	return cmd
}

// target holds the resolved output settings shared by extract and check.
type target struct {
	out         string
	lock        string
	format      sink.Format
	compression sink.Compression
}

func resolveTarget(s config.Settings) (target, error) {
	format, err := sink.ParseFormat(s.Format)
	if err != nil {
		return target{}, err
	}
	compression, err := sink.ParseCompression(s.Compression)
	if err != nil {
		return target{}, err
	}
	if s.Digest != "" {
		if err := values.CheckAlgorithm(s.Digest); err != nil {
			return target{}, err
		}
	}

	t := target{out: s.Out, lock: s.Lock, format: format, compression: compression}
	if t.out == "" {
		t.out = "entities" + sink.Extension(format, compression)
	}
	if t.lock == "" {
		t.lock = filepath.Join(filepath.Dir(t.out), sink.DefaultLockfileName)
	}
	return t, nil
}

func snapshotPipeline(s config.Settings, logger *slog.Logger, opts ...entitylib.Option) (*entitylib.Pipeline, error) {
	if s.Snapshot == "" {
		return nil, fmt.Errorf("a catalogue snapshot is required (--snapshot or REGLET_ENTITIES_SNAPSHOT)")
	}
	src, err := entitylib.LoadSnapshot(s.Snapshot, snapshot.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	walkerOpts := []extractor.WalkerOption{extractor.WithMaxDepth(s.MaxDepth)}
	if len(s.Include) > 0 {
		walkerOpts = append(walkerOpts, extractor.WithInclude(s.Include...))
	}

	opts = append([]entitylib.Option{
		entitylib.WithLogger(logger),
		entitylib.WithWalkerOptions(walkerOpts...),
	}, opts...)
	return entitylib.NewSnapshotPipeline(src, opts...), nil
}

func (a *app) runExtract(cmd *cobra.Command, args []string) error {
	s, err := a.settings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), s.Verbose)

	t, err := resolveTarget(s)
	if err != nil {
		return err
	}

	policy, err := gatekeeper.ParsePolicy(s.Overwrite)
	if err != nil {
		return err
	}
	if s.Yes {
		policy = gatekeeper.PolicyAlways
	}
	gate := gatekeeper.NewGatekeeper(gatekeeper.WithPolicy(policy), gatekeeper.WithLogger(logger))

	out := sink.NewFileSink(t.out,
		sink.WithFormat(t.format),
		sink.WithCompression(t.compression),
		sink.WithOverwriteGate(gate),
		sink.WithLogger(logger))

	middleware := []entitylib.Middleware{
		entitylib.PanicRecoveryMiddleware(),
		entitylib.LoggingMiddleware(logger),
	}
	if s.Validate {
		v, err := validation.NewDocumentValidator()
		if err != nil {
			return err
		}
		middleware = append(middleware, entitylib.ValidationMiddleware(v))
	}
	middleware = append(middleware, entitylib.LockMiddleware(entitylib.LockConfig{
		Repository:  sink.NewFileLockRepository(),
		Encoder:     out,
		Path:        t.lock,
		Source:      s.Snapshot,
		Format:      string(t.format),
		Compression: string(t.compression),
		Algorithm:   s.Digest,
	}))

	p, err := snapshotPipeline(s, logger,
		entitylib.WithSink(out),
		entitylib.WithMiddleware(middleware...))
	if err != nil {
		return err
	}

	registry, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d kinds to %s (lock: %s)\n", registry.Len(), t.out, t.lock)
	return nil
}
