package extractor

import (
	"log/slog"

	"github.com/reglet-dev/reglet-entities/ports"
	"github.com/reglet-dev/reglet-entities/values"
)

// DefaultMaxDepth bounds how many supertypes a single climb may visit.
const DefaultMaxDepth = 32

// RecipeSelector picks how a registered type is constructed.
type RecipeSelector func(info ports.TypeInfo, registered ports.RegisteredType) ports.Recipe

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) WalkerOption {
	return func(w *Walker) { w.logger = l }
}

// WithAttributeLookup sets the default-attribute lookup used for living kinds.
// Without one, living kinds carry an empty attribute list.
func WithAttributeLookup(lookup ports.AttributeLookup) WalkerOption {
	return func(w *Walker) { w.lookup = lookup }
}

// WithInclude restricts which catalogue entries start a walk.
// Patterns are doublestar globs matched against simple names.
// Ancestors of included entries are always built.
func WithInclude(patterns ...string) WalkerOption {
	return func(w *Walker) { w.include = append(w.include, patterns...) }
}

// WithMaxDepth sets the maximum supertype chain length.
func WithMaxDepth(depth int) WalkerOption {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithRecipeSelector overrides how sampling recipes are chosen.
func WithRecipeSelector(sel RecipeSelector) WalkerOption {
	return func(w *Walker) {
		if sel != nil {
			w.selectRecipe = sel
		}
	}
}

// DefaultRecipe builds a player recipe for player-like types and a standard one otherwise.
func DefaultRecipe(info ports.TypeInfo, registered ports.RegisteredType) ports.Recipe {
	if info.Capabilities.Has(values.CapPlayer) {
		return ports.NewPlayerRecipe(registered)
	}
	return ports.StandardRecipe{Type: registered}
}
