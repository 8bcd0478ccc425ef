package catalog

import (
	"path/filepath"
	"sort"
	"strings"
)

// Role names one of the two catalog subtrees.
type Role string

const (
	RoleSensor     Role = "sensor"
	RoleDatalogger Role = "datalogger"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleSensor || r == RoleDatalogger
}

// RoleRoot returns the directory of the subtree for role below the library root.
func RoleRoot(root string, role Role) string {
	return filepath.Join(root, string(role))
}

// Kind distinguishes nodes listing further choices from nodes listing leaves.
type Kind int

const (
	KindIntermediate Kind = iota
	KindTerminal
)

func (k Kind) String() string {
	switch k {
	case KindIntermediate:
		return "intermediate"
	case KindTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Leaf is a terminal catalog entry naming one concrete instrument model.
type Leaf struct {
	Description string
	// Payload is the verbatim xml= reference. Only lookups interpret it.
	Payload string
	// Dir is the directory of the index file declaring the leaf.
	Dir string
}

// Option is one choice offered by a [Node].
type Option struct {
	Key  string
	Path string // resolved child path, intermediate nodes only
	Leaf *Leaf  // terminal nodes only
}

// Text returns the display text of the option.
func (o Option) Text() string {
	if o.Leaf == nil || o.Leaf.Description == "" {
		return o.Key
	}

	return o.Key + ": " + o.Leaf.Description
}

// Node is one loaded index file. It is immutable and safe to share.
type Node struct {
	path    string
	prompt  string
	kind    Kind
	options []Option
}

// Path returns the index file the node was read from.
func (n *Node) Path() string { return n.path }

// Dir returns the directory holding the index file.
func (n *Node) Dir() string { return filepath.Dir(n.path) }

// Prompt returns the question shown to the user.
func (n *Node) Prompt() string { return n.prompt }

// Kind returns whether the node is intermediate or terminal.
func (n *Node) Kind() Kind { return n.kind }

// Terminal reports whether the node lists leaf entries.
func (n *Node) Terminal() bool { return n.kind == KindTerminal }

// Len returns the option count.
func (n *Node) Len() int { return len(n.options) }

// Options returns a copy of the ordered options.
func (n *Node) Options() []Option {
	out := make([]Option, len(n.options))
	for i, o := range n.options {
		out[i] = o.clone()
	}

	return out
}

// Keys returns the option keys in display order.
func (n *Node) Keys() []string {
	keys := make([]string, len(n.options))
	for i, o := range n.options {
		keys[i] = o.Key
	}

	return keys
}

// Option returns the option with exactly the given key.
func (n *Node) Option(key string) (Option, bool) {
	for _, o := range n.options {
		if o.Key == key {
			return o.clone(), true
		}
	}

	return Option{}, false
}

func (o Option) clone() Option {
	if o.Leaf != nil {
		leaf := *o.Leaf
		o.Leaf = &leaf
	}

	return o
}

// sortOptions orders options case-insensitively, falling back to the
// verbatim key so the order is total.
func sortOptions(opts []Option) {
	sort.SliceStable(opts, func(i, j int) bool {
		a, b := strings.ToLower(opts[i].Key), strings.ToLower(opts[j].Key)
		if a != b {
			return a < b
		}

		return opts[i].Key < opts[j].Key
	})
}
