package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-nrl/catalog"
	"github.com/cwbudde/algo-nrl/response"
)

// ErrLookup matches every [*Error].
var ErrLookup = errors.New("lookup: entry unavailable")

// Lookup resolves a completed key sequence of one role to its partial
// response.
type Lookup interface {
	Resolve(ctx context.Context, role catalog.Role, keys []string) (response.Response, error)
}

// Func adapts a function to [Lookup].
type Func func(ctx context.Context, role catalog.Role, keys []string) (response.Response, error)

// Resolve calls f(ctx, role, keys).
func (f Func) Resolve(ctx context.Context, role catalog.Role, keys []string) (response.Response, error) {
	return f(ctx, role, keys)
}

// Error reports a missing or corrupt catalog entry.
type Error struct {
	Role   catalog.Role
	Keys   []string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("lookup: %s [%s]: %s", e.Role, strings.Join(e.Keys, " / "), e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is reports whether target is [ErrLookup].
func (e *Error) Is(target error) bool {
	return target == ErrLookup
}

func (e *Error) Unwrap() error { return e.Err }

func lookupError(role catalog.Role, keys []string, reason string, err error) *Error {
	return &Error{
		Role:   role,
		Keys:   append([]string(nil), keys...),
		Reason: reason,
		Err:    err,
	}
}

// Static serves responses registered in memory.
type Static struct {
	entries map[string]response.Response
}

// NewStatic returns an empty Static lookup.
func NewStatic() *Static {
	return &Static{entries: make(map[string]response.Response)}
}

func staticKey(role catalog.Role, keys []string) string {
	return string(role) + "\x00" + strings.Join(keys, "\x00")
}

// Add registers r under role and keys and returns s for chaining.
func (s *Static) Add(role catalog.Role, keys []string, r response.Response) *Static {
	s.entries[staticKey(role, keys)] = r.Clone()

	return s
}

// Resolve implements [Lookup]. Returned responses are copies.
func (s *Static) Resolve(ctx context.Context, role catalog.Role, keys []string) (response.Response, error) {
	err := ctx.Err()
	if err != nil {
		return response.Response{}, err
	}

	r, ok := s.entries[staticKey(role, keys)]
	if !ok {
		return response.Response{}, lookupError(role, keys, "no such entry", nil)
	}

	return r.Clone(), nil
}
