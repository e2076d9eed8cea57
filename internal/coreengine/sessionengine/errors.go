package sessionengine

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when an operation is invoked in a session state
// that forbids it (submitting to a finished session, finalizing a running one).
// Retrying the same call never helps; the caller must transition state first.
var ErrInvalidState = errors.New("operation not valid in current session state")

// ErrOutOfRange is returned by CurrentItem when the session has no current
// item because every item has already been passed.
var ErrOutOfRange = errors.New("no current item: session is finished")

// ValidationError reports malformed input at session start. Index is the
// position of the offending item, or -1 when the item list as a whole is bad.
type ValidationError struct {
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid session input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid test item at index %d: %s", e.Index, e.Reason)
}
