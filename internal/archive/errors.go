package archive

import (
	"errors"
	"fmt"
)

// ErrFormat matches every *FormatError via errors.Is.
var ErrFormat = errors.New("invalid archive format")

// FormatError reports import text that is not valid JSON or is not an
// array of card objects. The store is never modified when it is returned.
type FormatError struct {
	// Index is the offending array element, or -1 for the document itself
	Index  int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("element %d: %s", e.Index, e.Reason)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return "invalid archive: " + msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
