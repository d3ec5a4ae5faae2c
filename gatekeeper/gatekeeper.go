// Package gatekeeper decides whether existing output files may be replaced:
// by policy, by asking on the terminal, or by refusing when nobody can be asked.
package gatekeeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/reglet-entities/sink"
)

// ErrNonInteractive is returned when a prompt is needed but no terminal is attached.
var ErrNonInteractive = errors.New("overwrite confirmation needed in non-interactive mode")

// OverwritePolicy controls the gatekeeper's prompting behavior.
type OverwritePolicy string

const (
	// PolicyPrompt asks before replacing a file.
	PolicyPrompt OverwritePolicy = "prompt"
	// PolicyAlways replaces files without asking.
	PolicyAlways OverwritePolicy = "always"
	// PolicyNever keeps existing files.
	PolicyNever OverwritePolicy = "never"
)

// ParsePolicy resolves a policy name. The empty string selects PolicyPrompt.
func ParsePolicy(s string) (OverwritePolicy, error) {
	switch p := OverwritePolicy(s); p {
	case "":
		return PolicyPrompt, nil
	case PolicyPrompt, PolicyAlways, PolicyNever:
		return p, nil
	}
	return "", fmt.Errorf("unknown overwrite policy %q", s)
}

// Prompter asks a person to confirm an overwrite.
type Prompter interface {
	IsInteractive() bool
	ConfirmOverwrite(path string) (bool, error)
}

// Gatekeeper implements sink.OverwriteGate.
type Gatekeeper struct {
	prompter Prompter
	policy   OverwritePolicy
	logger   *slog.Logger
}

var _ sink.OverwriteGate = (*Gatekeeper)(nil)

// Option configures a Gatekeeper.
type Option func(*Gatekeeper)

// WithPrompter sets the prompter.
func WithPrompter(p Prompter) Option {
	return func(g *Gatekeeper) { g.prompter = p }
}

// WithPolicy sets the overwrite policy.
func WithPolicy(p OverwritePolicy) Option {
	return func(g *Gatekeeper) { g.policy = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gatekeeper) { g.logger = l }
}

// NewGatekeeper creates a gatekeeper. It prompts on the terminal unless configured otherwise.
func NewGatekeeper(opts ...Option) *Gatekeeper {
	g := &Gatekeeper{
		policy: PolicyPrompt,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.prompter == nil {
		g.prompter = NewTerminalPrompter()
	}
	return g
}

// AllowOverwrite decides whether path may be replaced.
func (g *Gatekeeper) AllowOverwrite(ctx context.Context, path string) (bool, error) {
	switch g.policy {
	case PolicyAlways:
		g.logger.Warn("overwriting existing output", "path", path)
		return true, nil
	case PolicyNever:
		g.logger.Info("keeping existing output", "path", path)
		return false, nil
	}

	if !g.prompter.IsInteractive() {
		return false, fmt.Errorf("%w: %s exists\n\nTo replace it:\n  1. Run interactively and approve when prompted\n  2. Use --yes (overwrite without asking)", ErrNonInteractive, path)
	}

	ok, err := g.prompter.ConfirmOverwrite(path)
	if err != nil {
		return false, err
	}
	g.logger.Debug("overwrite decision", "path", path, "approved", ok)
	return ok, nil
}
