/*
Package flatconfig composes lint configuration fragments into the ordered
flat-config sequence a linting engine consumes.

A call to [Compose] takes caller [Options] and any number of [Entry] values.
Each entry is one of four shapes:

  - [Absent]: contributes nothing
  - [Single]: one fragment
  - [Many]: several fragments merged into one, earlier fragments winning
  - [Producer]: a function run at compose time that yields one of the above

Entries are resolved concurrently, but the output keeps their order:

	[ignores fragment, base rule-set fragment, entry 0, entry 1, ...]

Absent results are dropped. Any fragment that does not declare "files" is
scoped to the resolved default file globs.

# Merge Rules

Fragments inside a [Many] entry, and caller options over defaults, are merged
with [merge.Merger]: later layers win for scalars, maps merge recursively,
severity tuples replace each other, and other arrays become a sorted union.

# Usage

	out, err := flatconfig.Compose(ctx, flatconfig.Options{Strict: true},
	        flatconfig.Of(flatconfig.Fragment{"rules": map[string]any{"no-console": "warn"}}),
	        flatconfig.When(isCI, flatconfig.Of(ciOverrides)),
	        flatconfig.From(func(ctx context.Context) (flatconfig.Entry, error) {
	                return source.Parse(data)
	        }),
	)

# Collaborators

Ignore files are turned into globs by an [IgnoreSource] and the base rule set
comes from a [Baseline]. [New] wires the gitignore reader and the embedded
rule catalog by default; both can be replaced with [WithIgnoreSource] and
[WithBaseline].
*/
package flatconfig
