package flatconfig

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/flatconf/pkg/merge"
)

// Composer assembles configuration sequences. It holds no per-call state and
// is safe for concurrent use.
type Composer struct {
	merger   *merge.Merger
	ignores  IgnoreSource
	baseline Baseline
	logger   zerolog.Logger
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithIgnoreSource replaces the ignore-file reader.
func WithIgnoreSource(s IgnoreSource) ComposerOption {
	return func(c *Composer) { c.ignores = s }
}

// WithBaseline replaces the base rule-set provider.
func WithBaseline(b Baseline) ComposerOption {
	return func(c *Composer) { c.baseline = b }
}

// WithMerger replaces the merger used for options and Many entries.
func WithMerger(m *merge.Merger) ComposerOption {
	return func(c *Composer) {
		if m != nil {
			c.merger = m
		}
	}
}

// WithLogger sets the logger for debug tracing. The default discards.
func WithLogger(l zerolog.Logger) ComposerOption {
	return func(c *Composer) { c.logger = l }
}

// New returns a Composer that reads ignore files with the gitignore reader
// and takes base rules from the embedded catalog.
func New(opts ...ComposerOption) *Composer {
	c := &Composer{
		merger:   merge.New(),
		ignores:  GitignoreSource(GitignoreConfig{}),
		baseline: CatalogBaseline(nil),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds a configuration sequence with a default Composer.
func Compose(ctx context.Context, opts Options, entries ...Entry) ([]Fragment, error) {
	return New().Compose(ctx, opts, entries...)
}

// Compose resolves opts and entries into the final sequence:
// the global ignores fragment, the base rule-set fragment, then one fragment
// per entry that resolved to something, in argument order.
//
// Entries are resolved concurrently. The first failure cancels ctx for the
// remaining producers and is returned as an *EntryError; no partial
// sequence is returned.
func (c *Composer) Compose(ctx context.Context, opts Options, entries ...Entry) ([]Fragment, error) {
	if c.ignores == nil {
		return nil, ErrNoIgnoreSource
	}
	if c.baseline == nil {
		return nil, ErrNoBaseline
	}

	ro := resolveOptions(c.merger, opts)
	c.logger.Debug().
		Strs("files", ro.Files).
		Int("ignores", len(ro.Ignores)).
		Strs("ignore_files", ro.IgnoreFiles).
		Bool("strict", ro.Strict).
		Msg("resolved options")

	global, err := c.globalIgnores(ctx, ro)
	if err != nil {
		return nil, err
	}

	base, err := c.base(ctx, ro)
	if err != nil {
		return nil, err
	}

	resolved, err := c.resolveAll(ctx, ro, entries)
	if err != nil {
		return nil, err
	}

	out := make([]Fragment, 0, len(resolved)+2)
	out = append(out, global, base)
	for _, f := range resolved {
		if f != nil {
			out = append(out, f)
		}
	}
	c.logger.Debug().Int("entries", len(entries)).Int("fragments", len(out)).Msg("composed")
	return out, nil
}

func (c *Composer) globalIgnores(ctx context.Context, ro ResolvedOptions) (Fragment, error) {
	fromFiles, err := c.ignores.IgnoreFragment(ctx, ro.IgnoreFiles)
	if err != nil {
		return nil, fmt.Errorf("read ignore files: %w", err)
	}
	return Fragment(c.merger.Merge(fromFiles, map[string]any{KeyIgnores: toAny(ro.Ignores)})), nil
}

func (c *Composer) base(ctx context.Context, ro ResolvedOptions) (Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defaults, err := c.baseline.Base(ro.Strict)
	if err != nil {
		return nil, fmt.Errorf("load base rule set: %w", err)
	}
	defaults = defaults.Clone()
	if defaults == nil {
		defaults = Fragment{}
	}
	defaults[KeyFiles] = toAny(ro.Files)
	return Fragment(c.merger.Merge(defaults, ro.Rest)), nil
}

func (c *Composer) resolveAll(ctx context.Context, ro ResolvedOptions, entries []Entry) ([]Fragment, error) {
	results := make([]Fragment, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range entries {
		g.Go(func() error {
			f, err := c.resolve(gctx, e, ro.Files)
			if err != nil {
				return &EntryError{Index: i, Kind: kindOf(e), Err: err}
			}
			results[i] = f
			c.logger.Debug().Int("entry", i).Str("kind", kindOf(e)).Bool("contributes", f != nil).Msg("resolved entry")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Resolve turns a single entry into a fragment scoped to files, or nil when
// the entry contributes nothing.
func (c *Composer) Resolve(ctx context.Context, e Entry, files []string) (Fragment, error) {
	return c.resolve(ctx, e, files)
}

func (c *Composer) resolve(ctx context.Context, e Entry, files []string) (Fragment, error) {
	if p, ok := e.(Producer); ok {
		if p == nil {
			return nil, nil
		}
		produced, err := p(ctx)
		if err != nil {
			return nil, err
		}
		if _, nested := produced.(Producer); nested {
			return nil, ErrNestedProducer
		}
		e = produced
	}

	var f Fragment
	switch v := e.(type) {
	case nil, Absent:
		return nil, nil
	case Single:
		if v.Fragment == nil {
			return nil, nil
		}
		f = Fragment(c.merger.Merge(v.Fragment))
		if v.Fragment.HasFiles() {
			return f, nil
		}
	case Many:
		layers := make([]map[string]any, 0, len(v.Fragments))
		for i := len(v.Fragments) - 1; i >= 0; i-- {
			if v.Fragments[i] != nil {
				layers = append(layers, v.Fragments[i])
			}
		}
		f = Fragment(c.merger.Merge(layers...))
		if f.HasFiles() {
			return f, nil
		}
	case Producer:
		return nil, ErrNestedProducer
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownEntry, e)
	}

	f[KeyFiles] = toAny(files)
	return f, nil
}
