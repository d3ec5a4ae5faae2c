package cli

import (
	"fmt"

	"github.com/reglet-dev/reglet-entities/sink"
	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that the snapshot still produces the locked document",
		Long: `Check re-extracts the kind registry from the snapshot and compares the digest
of its encoding with the lock. Nothing is written. The format recorded in the
lock takes precedence over --format.`,
		Args: cobra.NoArgs,
		RunE: a.runCheck,
	}
	addSnapshotFlags(cmd)
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	s, err := a.settings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), s.Verbose)

	t, err := resolveTarget(s)
	if err != nil {
		return err
	}

	repo := sink.NewFileLockRepository()
	format := t.format
	lock, err := repo.Load(cmd.Context(), t.lock)
	if err != nil {
		return err
	}
	if lock != nil && lock.Format != "" {
		if format, err = sink.ParseFormat(lock.Format); err != nil {
			return fmt.Errorf("lock %s: %w", t.lock, err)
		}
	}

	p, err := snapshotPipeline(s, logger)
	if err != nil {
		return err
	}
	if err := p.Check(cmd.Context(), repo, t.lock, sink.NewFileSink(t.out, sink.WithFormat(format))); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", t.lock)
	return nil
}
