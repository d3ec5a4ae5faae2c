// Package cli implements the reglet-entities command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reglet-dev/reglet-entities/internal/config"
	"github.com/spf13/cobra"
)

type app struct {
	configFile string
	version    string
	commit     string
	date       string
}

// NewRootCmd builds the command tree.
func NewRootCmd(version, commit, date string) *cobra.Command {
	a := &app{version: version, commit: commit, date: date}

	root := &cobra.Command{
		Use:   "reglet-entities",
		Short: "Extract entity kind registries from catalogue snapshots",
		Long: `reglet-entities walks a catalogue snapshot of a host simulation and writes one
deterministic document describing every entity kind: inheritance, replicated
fields with their defaults, default attributes and bounding boxes.

Settings are read from flags, REGLET_ENTITIES_* environment variables and
~/.reglet/entities.yaml, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default ~/.reglet/entities.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.extractCmd(),
		a.checkCmd(),
		a.schemaCmd(),
		a.validateCmd(),
		a.versionCmd(),
	)
	return root
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	if err := NewRootCmd(version, commit, date).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// settings resolves configuration with the command's flags layered on top.
func (a *app) settings(cmd *cobra.Command) (config.Settings, error) {
	v, err := config.New(a.configFile)
	if err != nil {
		return config.Settings{}, err
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config.Settings{}, fmt.Errorf("binding flags: %w", err)
	}
	return config.Load(v)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
