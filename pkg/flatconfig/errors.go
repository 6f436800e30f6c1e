package flatconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrNestedProducer is returned when a Producer yields another Producer.
	ErrNestedProducer = errors.New("producer returned a producer")

	// ErrUnknownEntry is returned for Entry values outside the closed set.
	ErrUnknownEntry = errors.New("unknown entry type")

	// ErrNoIgnoreSource is returned when the composer has no ignore source.
	ErrNoIgnoreSource = errors.New("no ignore source configured")

	// ErrNoBaseline is returned when the composer has no baseline.
	ErrNoBaseline = errors.New("no baseline configured")
)

// EntryError reports the failure of one entry passed to Compose.
type EntryError struct {
	Index int    // position of the entry in the Compose call
	Kind  string // absent, single, many or producer
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("config entry %d (%s): %v", e.Index, e.Kind, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
