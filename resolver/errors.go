package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Navigation protocol errors. They report caller misuse and never leave
// the resolver in a corrupted state.
var (
	ErrUnknownKey           = errors.New("resolver: unknown key")
	ErrNoSelectionMade      = errors.New("resolver: no selection made")
	ErrAlreadyCompleted     = errors.New("resolver: selection already completed")
	ErrAtRoot               = errors.New("resolver: already at root")
	ErrNoSelectionAvailable = errors.New("resolver: no selection available once completed")
	ErrNotCompleted         = errors.New("resolver: selection not completed")
)

// maxSuggestions bounds the keys offered by [UnknownKeyError].
const maxSuggestions = 3

// UnknownKeyError is returned by Choose for keys the current node does not offer.
type UnknownKeyError struct {
	Key    string
	Prompt string
	// Suggestions holds the closest offered keys, nearest first.
	Suggestions []string
}

func (e *UnknownKeyError) Error() string {
	msg := fmt.Sprintf("resolver: unknown key %q for %q", e.Key, e.Prompt)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoteAll(e.Suggestions), ", "))
	}

	return msg
}

// Is reports whether target is [ErrUnknownKey].
func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

// suggest ranks keys by edit distance to key (case-insensitive) and keeps
// those within half the length of the longer string.
func suggest(key string, keys []string) []string {
	type scored struct {
		key  string
		dist int
	}

	needle := strings.ToLower(key)

	var candidates []scored

	for _, k := range keys {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(k))
		if d*2 <= max(len(needle), len(k)) {
			candidates = append(candidates, scored{k, d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(candidates) && i < maxSuggestions; i++ {
		out = append(out, candidates[i].key)
	}

	return out
}

func quoteAll(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf("%q", k)
	}

	return out
}
