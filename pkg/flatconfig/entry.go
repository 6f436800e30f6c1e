package flatconfig

import "context"

// Entry is one contribution to a composed configuration. The set of
// implementations is closed: [Absent], [Single], [Many] and [Producer].
// A nil Entry is treated as [Absent].
type Entry interface {
	entry()
}

// Absent contributes nothing.
type Absent struct{}

// Single contributes one fragment. A nil Fragment contributes nothing.
type Single struct {
	Fragment Fragment
}

// Many contributes the merge of its fragments. Nil fragments are skipped.
// Fragments are merged so that earlier ones win: for [A, B, C], a scalar set
// by A overrides the same field set by B or C.
type Many struct {
	Fragments []Fragment
}

// Producer is invoked once at compose time. Its result must be [Absent],
// [Single] or [Many]; producers returning producers are rejected.
type Producer func(ctx context.Context) (Entry, error)

func (Absent) entry()   {}
func (Single) entry()   {}
func (Many) entry()     {}
func (Producer) entry() {}

// None returns an entry that contributes nothing.
func None() Entry {
	return Absent{}
}

// Of wraps a single fragment. A nil fragment yields [Absent].
func Of(f Fragment) Entry {
	if f == nil {
		return Absent{}
	}
	return Single{Fragment: f}
}

// All wraps several fragments that merge into one.
func All(fragments ...Fragment) Entry {
	return Many{Fragments: fragments}
}

// From wraps a context-aware producer.
func From(fn func(ctx context.Context) (Entry, error)) Entry {
	if fn == nil {
		return Absent{}
	}
	return Producer(fn)
}

// Lazy wraps a producer that cannot fail.
func Lazy(fn func() Entry) Entry {
	if fn == nil {
		return Absent{}
	}
	return Producer(func(context.Context) (Entry, error) {
		return fn(), nil
	})
}

// When returns e if cond holds, [Absent] otherwise.
func When(cond bool, e Entry) Entry {
	if !cond {
		return Absent{}
	}
	return e
}

// Maybe returns f if cond holds, nil otherwise. Use it for optional members
// of a [Many] entry.
func Maybe(cond bool, f Fragment) Fragment {
	if !cond {
		return nil
	}
	return f
}

func kindOf(e Entry) string {
	switch e.(type) {
	case nil, Absent:
		return "absent"
	case Single:
		return "single"
	case Many:
		return "many"
	case Producer:
		return "producer"
	}
	return "unknown"
}
