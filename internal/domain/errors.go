package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument marks input that is not well-formed XML.
	// Never retried: the same bytes would fail the same way.
	ErrMalformedDocument = errors.New("malformed xml document")

	// ErrUnexpectedStructure marks well-formed XML with no recognizable
	// entry container.
	ErrUnexpectedStructure = errors.New("unexpected feed structure")

	// ErrFeedUnavailable is the terminal condition: every fetch attempt
	// failed and no cached entry, fresh or stale, exists for the key.
	ErrFeedUnavailable = errors.New("feed unavailable")
)

// FetchError is a transient network or HTTP failure on one attempt.
// Non-2xx responses and transport errors are treated identically.
type FetchError struct {
	Attempt int
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch attempt %d: %v", e.Attempt, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
