package flatconfig

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"pgregory.net/rapid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubComposer avoids the filesystem and the embedded catalog.
func stubComposer(opts ...ComposerOption) *Composer {
	base := []ComposerOption{
		WithIgnoreSource(IgnoreSourceFunc(func(_ context.Context, paths []string) (Fragment, error) {
			return Fragment{"name": "gitignore", "ignores": []any{"**/from-file"}}, nil
		})),
		WithBaseline(BaselineFunc(func(strict bool) (Fragment, error) {
			name := "base/recommended"
			if strict {
				name = "base/all"
			}
			return Fragment{"name": name, "rules": map[string]any{"no-debugger": "error"}}, nil
		})),
	}
	return New(append(base, opts...)...)
}

func compose(t *testing.T, opts Options, entries ...Entry) []Fragment {
	t.Helper()
	out, err := stubComposer().Compose(context.Background(), opts, entries...)
	require.NoError(t, err)
	return out
}

func TestCompose_SequenceLayout(t *testing.T) {
	out := compose(t, Options{},
		Of(Fragment{"name": "first"}),
		Of(Fragment{"name": "second"}),
	)

	require.Len(t, out, 4)
	assert.Equal(t, "gitignore", out[0].Name())
	assert.Equal(t, "base/recommended", out[1].Name())
	assert.Equal(t, "first", out[2].Name())
	assert.Equal(t, "second", out[3].Name())
}

func TestCompose_AbsentEntriesContributeNothing(t *testing.T) {
	entries := []Entry{
		nil,
		Absent{},
		None(),
		Of(nil),
		Single{},
		Producer(nil),
		Lazy(func() Entry { return nil }),
		Lazy(func() Entry { return Absent{} }),
		From(func(ctx context.Context) (Entry, error) {
			select {
			case <-time.After(5 * time.Millisecond):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return Of(nil), nil
		}),
		When(false, Of(Fragment{"name": "skipped"})),
	}

	out := compose(t, Options{}, entries...)

	assert.Len(t, out, 2, "only the ignores and base fragments remain")
}

func TestCompose_ManyEarlierFragmentsWin(t *testing.T) {
	a := Fragment{"name": "A", "settings": map[string]any{"owner": "A"}}
	b := Fragment{"name": "B", "settings": map[string]any{"owner": "B", "onlyB": true}}
	c := Fragment{"name": "C", "settings": map[string]any{"owner": "C", "onlyC": true}}

	out := compose(t, Options{}, All(a, b, c))

	require.Len(t, out, 3)
	got := out[2]
	assert.Equal(t, "A", got.Name())
	assert.Equal(t, map[string]any{"owner": "A", "onlyB": true, "onlyC": true}, got["settings"])
}

func TestCompose_ManySkipsNilMembers(t *testing.T) {
	out := compose(t, Options{}, All(
		Maybe(false, Fragment{"name": "dropped"}),
		Fragment{"rules": map[string]any{"eqeqeq": "error"}},
		nil,
	))

	require.Len(t, out, 3)
	assert.Equal(t, "", out[2].Name())
	assert.Equal(t, map[string]any{"eqeqeq": "error"}, out[2].Rules())
}

func TestCompose_EmptyManyStillContributes(t *testing.T) {
	out := compose(t, Options{}, All())

	require.Len(t, out, 3)
	assert.Equal(t, Fragment{"files": []any{GlobSrc}}, out[2])
}

func TestCompose_DefaultFilesInjection(t *testing.T) {
	declared := Fragment{"files": []any{"**/*.vue"}, "rules": map[string]any{"x": "warn"}}

	out := compose(t, Options{Files: []string{"src/**/*.js"}},
		Of(Fragment{"rules": map[string]any{"x": "warn"}}),
		Of(declared),
		All(Fragment{"name": "m"}, Fragment{"files": []any{"**/*.md"}}),
	)

	require.Len(t, out, 5)
	assert.Equal(t, []string{GlobSrc, "src/**/*.js"}, out[2].Files())
	assert.Equal(t, []string{"**/*.vue"}, out[3].Files())
	assert.Equal(t, []string{"**/*.md"}, out[4].Files())
	assert.Equal(t, []any{"**/*.vue"}, declared["files"], "input not modified")
}

func TestCompose_ScalarSeverityLaterEntryWins(t *testing.T) {
	out := compose(t, Options{Strict: false},
		Of(Fragment{"rules": map[string]any{"no-console": "warn"}}),
		Lazy(func() Entry {
			return Of(Fragment{"rules": map[string]any{"no-console": "error"}})
		}),
	)

	last := out[len(out)-1]
	level, ok := last.RuleLevel("no-console")
	require.True(t, ok)
	assert.Equal(t, "error", level.String())
	assert.Equal(t, "error", last.Rules()["no-console"])
}

func TestCompose_GlobalIgnores(t *testing.T) {
	out := compose(t, Options{Ignores: []string{"**/generated"}})

	ignores := out[0].Ignores()
	assert.Contains(t, ignores, "**/from-file")
	assert.Contains(t, ignores, "**/generated")
	assert.Contains(t, ignores, "**/node_modules")
	assert.IsIncreasing(t, ignores)
}

func TestCompose_IgnoreSourceReceivesResolvedFiles(t *testing.T) {
	var got []string
	c := stubComposer(WithIgnoreSource(IgnoreSourceFunc(func(_ context.Context, paths []string) (Fragment, error) {
		got = paths
		return Fragment{}, nil
	})))

	_, err := c.Compose(context.Background(), Options{IgnoreFiles: []string{"web/.gitignore"}})

	require.NoError(t, err)
	assert.Equal(t, []string{".gitignore", "web/.gitignore"}, got)
}

func TestCompose_BaseFragment(t *testing.T) {
	out := compose(t, Options{
		Strict: true,
		Rules:  map[string]any{"no-debugger": "off", "eqeqeq": []any{"error", "smart"}},
		Settings: map[string]any{
			"react": map[string]any{"version": "detect"},
		},
	})

	base := out[1]
	assert.Equal(t, "base/all", base.Name())
	assert.Equal(t, []string{GlobSrc}, base.Files())
	want := map[string]any{"no-debugger": "off", "eqeqeq": []any{"error", "smart"}}
	if diff := cmp.Diff(want, base.Rules()); diff != "" {
		t.Errorf("base rules mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string]any{"react": map[string]any{"version": "detect"}}, base["settings"])
}

func TestCompose_WithEmbeddedCatalog(t *testing.T) {
	c := New(WithIgnoreSource(IgnoreSourceFunc(func(context.Context, []string) (Fragment, error) {
		return Fragment{}, nil
	})))

	out, err := c.Compose(context.Background(), Options{})

	require.NoError(t, err)
	assert.Equal(t, "@eslint/js/recommended", out[1].Name())
	level, ok := out[1].RuleLevel("no-unused-vars")
	require.True(t, ok)
	assert.Equal(t, "error", level.String())
}

func TestCompose_ProducerErrorPropagates(t *testing.T) {
	boom := errors.New("boom")

	_, err := stubComposer().Compose(context.Background(), Options{},
		Of(Fragment{"name": "ok"}),
		From(func(context.Context) (Entry, error) { return nil, boom }),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var entryErr *EntryError
	require.ErrorAs(t, err, &entryErr)
	assert.Equal(t, 1, entryErr.Index)
	assert.Equal(t, "producer", entryErr.Kind)
}

func TestCompose_ErrorCancelsOtherProducers(t *testing.T) {
	boom := errors.New("boom")
	canceled := make(chan struct{})

	_, err := stubComposer().Compose(context.Background(), Options{},
		From(func(ctx context.Context) (Entry, error) {
			<-ctx.Done()
			close(canceled)
			return nil, ctx.Err()
		}),
		From(func(context.Context) (Entry, error) { return nil, boom }),
	)

	assert.ErrorIs(t, err, boom)
	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("waiting producer was not canceled")
	}
}

func TestCompose_NestedProducerRejected(t *testing.T) {
	_, err := stubComposer().Compose(context.Background(), Options{},
		From(func(context.Context) (Entry, error) {
			return Lazy(func() Entry { return None() }), nil
		}),
	)

	assert.ErrorIs(t, err, ErrNestedProducer)
}

func TestCompose_MissingCollaborators(t *testing.T) {
	_, err := New(WithIgnoreSource(nil)).Compose(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrNoIgnoreSource)

	_, err = stubComposer(WithBaseline(nil)).Compose(context.Background(), Options{})
	assert.ErrorIs(t, err, ErrNoBaseline)
}

func TestCompose_IgnoreSourceFailure(t *testing.T) {
	missing := errors.New("parser unavailable")
	c := stubComposer(WithIgnoreSource(IgnoreSourceFunc(func(context.Context, []string) (Fragment, error) {
		return nil, missing
	})))

	_, err := c.Compose(context.Background(), Options{})

	assert.ErrorIs(t, err, missing)
}

func TestCompose_ResolvesConcurrently(t *testing.T) {
	const n = 4
	var started sync.WaitGroup
	started.Add(n)
	release := make(chan struct{})
	go func() {
		started.Wait()
		close(release)
	}()

	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = From(func(ctx context.Context) (Entry, error) {
			started.Done()
			select {
			case <-release:
			case <-time.After(5 * time.Second):
				return nil, errors.New("producers did not overlap")
			}
			// Later entries finish first.
			time.Sleep(time.Duration(n-i) * time.Millisecond)
			return Of(Fragment{"name": fmt.Sprint(i)}), nil
		})
	}

	out := compose(t, Options{}, entries...)

	require.Len(t, out, n+2)
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprint(i), out[i+2].Name())
	}
}

func TestCompose_OrderPreservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		entries := make([]Entry, n)
		var want []string

		for i := 0; i < n; i++ {
			name := fmt.Sprint(i)
			frag := Fragment{"name": name}
			kind := rapid.IntRange(0, 6).Draw(t, fmt.Sprintf("kind%d", i))
			switch kind {
			case 0:
				entries[i] = nil
			case 1:
				entries[i] = Absent{}
			case 2:
				entries[i] = Of(frag)
				want = append(want, name)
			case 3:
				entries[i] = All(frag, Fragment{"name": "loser"})
				want = append(want, name)
			case 4:
				entries[i] = Lazy(func() Entry { return Of(frag) })
				want = append(want, name)
			case 5:
				entries[i] = Lazy(func() Entry { return nil })
			case 6:
				entries[i] = From(func(context.Context) (Entry, error) {
					time.Sleep(time.Duration(n-i) * 100 * time.Microsecond)
					return All(frag), nil
				})
				want = append(want, name)
			}
		}

		out, err := stubComposer().Compose(context.Background(), Options{}, entries...)
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if len(out) != len(want)+2 {
			t.Fatalf("got %d fragments, want %d", len(out), len(want)+2)
		}
		for i, name := range want {
			if got := out[i+2].Name(); got != name {
				t.Fatalf("fragment %d name = %q, want %q", i+2, got, name)
			}
		}
	})
}

func TestComposer_Resolve(t *testing.T) {
	c := stubComposer()

	f, err := c.Resolve(context.Background(), Of(Fragment{"name": "x"}), []string{"*.js"})
	require.NoError(t, err)
	assert.Equal(t, Fragment{"name": "x", "files": []any{"*.js"}}, f)

	f, err = c.Resolve(context.Background(), None(), []string{"*.js"})
	require.NoError(t, err)
	assert.Nil(t, f)
}

type rogueEntry struct{ Absent }

func TestComposer_ResolveUnknownEntry(t *testing.T) {
	_, err := stubComposer().Resolve(context.Background(), rogueEntry{}, nil)
	assert.ErrorIs(t, err, ErrUnknownEntry)
}
