// Package gitignore converts gitignore-style files into flat-config ignore
// globs.
package gitignore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// DefaultName is the name given to the resulting fragment.
const DefaultName = "gitignore"

// Options configures Load.
type Options struct {
	// Root is the directory globs are relative to. Empty means the working
	// directory.
	Root string
	// Strict makes missing or unreadable files an error. Otherwise they are
	// skipped.
	Strict bool
	// Name overrides DefaultName.
	Name   string
	Logger zerolog.Logger
}

// Result holds the converted globs of one Load call.
type Result struct {
	Name    string
	Ignores []string
}

// ErrNoFiles is returned in strict mode when no ignore file was given.
var ErrNoFiles = errors.New("no ignore file given")

// Load reads every file in paths and converts its patterns. Patterns from a
// file in a subdirectory of Root are prefixed with that subdirectory.
func Load(ctx context.Context, paths []string, opts Options) (*Result, error) {
	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}
	if opts.Strict && len(paths) == 0 {
		return nil, ErrNoFiles
	}

	res := &Result{Name: opts.Name, Ignores: []string{}}
	if res.Name == "" {
		res.Name = DefaultName
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := p
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}

		f, err := os.Open(path) // #nosec G304 - ignore file paths come from configuration
		if err != nil {
			if !opts.Strict && errors.Is(err, fs.ErrNotExist) {
				opts.Logger.Debug().Str("path", path).Msg("ignore file not found, skipping")
				continue
			}
			if !opts.Strict {
				opts.Logger.Debug().Err(err).Str("path", path).Msg("ignore file unreadable, skipping")
				continue
			}
			return nil, fmt.Errorf("open ignore file: %w", err)
		}

		prefix, err := relativeDir(root, filepath.Dir(path))
		if err != nil {
			f.Close()
			return nil, err
		}
		globs, err := Parse(f, prefix)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read ignore file %s: %w", path, err)
		}

		for _, g := range globs {
			if !doublestar.ValidatePattern(strings.TrimPrefix(g, "!")) {
				opts.Logger.Debug().Str("path", path).Str("glob", g).Msg("dropping invalid ignore pattern")
				continue
			}
			res.Ignores = append(res.Ignores, g)
		}
	}
	return res, nil
}

// Parse reads gitignore lines from r and returns flat-config globs. When dir
// is not empty, every glob is made relative to it.
func Parse(r io.Reader, dir string) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, Relative(ConvertPattern(line), dir))
	}
	return out, sc.Err()
}

// ConvertPattern converts one gitignore pattern into a glob:
//
//	dist        -> **/dist
//	/build      -> build
//	docs/*.md   -> docs/*.md
//	logs/**     -> logs/**/*
//	!keep.txt   -> !**/keep.txt
func ConvertPattern(pattern string) string {
	negated := strings.HasPrefix(pattern, "!")
	prefix := ""
	if negated {
		prefix = "!"
		pattern = pattern[1:]
	}
	pattern = trimTrailingSpace(pattern)

	switch pattern {
	case "", "**", "/**", "**/":
		return prefix + pattern
	}

	slash := strings.Index(pattern, "/")
	everywhere := ""
	if slash < 0 || slash == len(pattern)-1 {
		everywhere = "**/"
	}
	body := pattern
	if slash == 0 {
		body = pattern[1:]
	}
	inside := ""
	if strings.HasSuffix(pattern, "/**") {
		inside = "/*"
	}
	return prefix + everywhere + escapeGroups(body) + inside
}

// Relative makes glob relative to dir, keeping a leading negation.
func Relative(glob, dir string) string {
	if dir == "" || dir == "." {
		return glob
	}
	dir = filepath.ToSlash(strings.TrimSuffix(dir, "/"))
	if strings.HasPrefix(glob, "!") {
		return "!" + dir + "/" + glob[1:]
	}
	return dir + "/" + glob
}

func relativeDir(root, dir string) (string, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", fmt.Errorf("relate %s to %s: %w", dir, root, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// trimTrailingSpace removes trailing spaces unless escaped with a backslash.
func trimTrailingSpace(s string) string {
	end := len(s)
	for end > 0 && (s[end-1] == ' ' || s[end-1] == '\t') {
		if end > 1 && s[end-2] == '\\' {
			break
		}
		end--
	}
	return s[:end]
}

// escapeGroups escapes "{" and "(", which gitignore treats literally but
// glob matchers treat as group syntax. Already escaped characters are kept.
func escapeGroups(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			sb.WriteByte(c)
			sb.WriteByte(s[i+1])
			i++
			continue
		}
		if c == '{' || c == '(' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
