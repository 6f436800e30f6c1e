package flatconfig

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dkoosis/flatconf/pkg/catalog"
	"github.com/dkoosis/flatconf/pkg/gitignore"
)

// IgnoreSource turns ignore-file paths into a fragment with an "ignores"
// field.
type IgnoreSource interface {
	IgnoreFragment(ctx context.Context, paths []string) (Fragment, error)
}

// IgnoreSourceFunc adapts a function to IgnoreSource.
type IgnoreSourceFunc func(ctx context.Context, paths []string) (Fragment, error)

// IgnoreFragment calls fn.
func (fn IgnoreSourceFunc) IgnoreFragment(ctx context.Context, paths []string) (Fragment, error) {
	return fn(ctx, paths)
}

// Baseline provides the base rule-set fragment: rules, language options and
// linter options, selected by the strictness flag.
type Baseline interface {
	Base(strict bool) (Fragment, error)
}

// BaselineFunc adapts a function to Baseline.
type BaselineFunc func(strict bool) (Fragment, error)

// Base calls fn.
func (fn BaselineFunc) Base(strict bool) (Fragment, error) {
	return fn(strict)
}

// GitignoreConfig configures [GitignoreSource].
type GitignoreConfig struct {
	Root   string // directory patterns are made relative to; default is the working directory
	Strict bool   // fail on unreadable ignore files instead of skipping them
	Logger *zerolog.Logger
}

// GitignoreSource reads gitignore-style files with package gitignore.
func GitignoreSource(cfg GitignoreConfig) IgnoreSource {
	return IgnoreSourceFunc(func(ctx context.Context, paths []string) (Fragment, error) {
		opts := gitignore.Options{Root: cfg.Root, Strict: cfg.Strict}
		if cfg.Logger != nil {
			opts.Logger = *cfg.Logger
		}
		res, err := gitignore.Load(ctx, paths, opts)
		if err != nil {
			return nil, err
		}
		return Fragment{KeyName: res.Name, KeyIgnores: toAny(res.Ignores)}, nil
	})
}

// CatalogBaseline serves base rules from cat, or from the embedded default
// catalog when cat is nil.
func CatalogBaseline(cat *catalog.Catalog) Baseline {
	return BaselineFunc(func(strict bool) (Fragment, error) {
		c := cat
		if c == nil {
			var err error
			if c, err = catalog.Default(); err != nil {
				return nil, err
			}
		}
		return Fragment(c.Base(strict)), nil
	})
}
