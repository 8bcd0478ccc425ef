package catalog

import (
	"errors"
	"fmt"
)

// ErrMalformedCatalog is matched by every error describing invalid catalog data.
var ErrMalformedCatalog = errors.New("catalog: malformed catalog")

// MalformedError reports an index file that cannot be turned into a [Node].
type MalformedError struct {
	Path   string // index file (or directory) that was read
	Reason string
	Err    error // underlying I/O or syntax error, if any
}

func (e *MalformedError) Error() string {
	msg := fmt.Sprintf("catalog: malformed index %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is reports whether target is [ErrMalformedCatalog].
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedCatalog
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func malformed(path, reason string, err error) error {
	return &MalformedError{Path: path, Reason: reason, Err: err}
}
