package resolver

import (
	"errors"

	"github.com/cwbudde/algo-nrl/catalog"
)

// State is the resolver's position in the selection state machine.
type State int

const (
	// StateBrowsing is an intermediate node offering further choices.
	StateBrowsing State = iota
	// StateAtLeafChoice is a terminal node offering leaf entries.
	StateAtLeafChoice
	// StateCompleted holds the full key sequence and the chosen leaf.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateAtLeafChoice:
		return "leaf-choice"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Entry records how a stack frame was reached.
type Entry int

const (
	EntryRoot     Entry = iota
	EntryForward        // Advance after an explicit Choose
	EntryAuto           // auto-advance through a single-option node
	EntryBackward       // revealed again by Retreat
)

// Choice is one selectable option of the current node.
type Choice struct {
	Key  string
	Text string
}

// Result describes a completed selection.
type Result struct {
	Role   catalog.Role
	Keys   []string
	Leaf   catalog.Leaf
	Prompt string // question of the terminal node the leaf was picked from
}

// Config holds resolver settings.
type Config struct {
	// AutoAdvance skips nodes offering exactly one option when they are
	// entered going forward.
	AutoAdvance bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default resolver settings.
func DefaultConfig() Config {
	return Config{AutoAdvance: true}
}

// WithoutAutoAdvance disables auto-advance through single-option nodes.
func WithoutAutoAdvance() Option {
	return func(cfg *Config) {
		cfg.AutoAdvance = false
	}
}

var errNilLoader = errors.New("resolver: nil loader")

// frame is one stack entry. Completion pushes a frame holding only the
// chosen leaf so that len(keys) == len(stack)-1 holds in every state.
type frame struct {
	node  *catalog.Node
	leaf  *catalog.Leaf
	entry Entry
}

// Resolver walks one role's subtree of the catalog, one node per step.
//
// A Resolver is not safe for concurrent use; sessions selecting a sensor
// and a datalogger use two independent instances.
type Resolver struct {
	role   catalog.Role
	loader catalog.Loader
	cfg    Config

	stack []frame
	keys  []string

	pending    string
	hasPending bool
}

// New loads root through loader and starts a selection for role.
// The root node is always shown, even when it offers a single option.
func New(loader catalog.Loader, root string, role catalog.Role, opts ...Option) (*Resolver, error) {
	if loader == nil {
		return nil, errNilLoader
	}

	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	node, err := loader.Load(root)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		role:   role,
		loader: loader,
		cfg:    cfg,
		stack:  []frame{{node: node, entry: EntryRoot}},
	}, nil
}

// Role returns the role this resolver selects for.
func (r *Resolver) Role() catalog.Role { return r.role }

func (r *Resolver) top() frame { return r.stack[len(r.stack)-1] }

// State returns the current state.
func (r *Resolver) State() State {
	top := r.top()

	switch {
	case top.leaf != nil:
		return StateCompleted
	case top.node.Terminal():
		return StateAtLeafChoice
	default:
		return StateBrowsing
	}
}

// Completed reports whether a leaf has been selected.
func (r *Resolver) Completed() bool {
	return r.State() == StateCompleted
}

// Node returns the node currently shown; once completed, the terminal node
// the leaf was chosen from.
func (r *Resolver) Node() *catalog.Node {
	if r.Completed() {
		return r.stack[len(r.stack)-2].node
	}

	return r.top().node
}

// Prompt returns the question of [Resolver.Node].
func (r *Resolver) Prompt() string {
	return r.Node().Prompt()
}

// Entered returns how the current frame was reached.
func (r *Resolver) Entered() Entry {
	return r.top().entry
}

// StackDepth returns the number of frames, root included.
func (r *Resolver) StackDepth() int {
	return len(r.stack)
}

// SelectedKeys returns a copy of the keys advanced through so far.
func (r *Resolver) SelectedKeys() []string {
	return append([]string(nil), r.keys...)
}

// Pending returns the key chosen for the current node but not yet advanced.
func (r *Resolver) Pending() (string, bool) {
	return r.pending, r.hasPending
}

// CanRetreat reports whether Retreat would succeed.
func (r *Resolver) CanRetreat() bool {
	return len(r.stack) > 1
}

// Options returns the current node's choices in display order.
func (r *Resolver) Options() ([]Choice, error) {
	if r.Completed() {
		return nil, ErrNoSelectionAvailable
	}

	opts := r.top().node.Options()

	out := make([]Choice, len(opts))
	for i, o := range opts {
		out[i] = Choice{Key: o.Key, Text: o.Text()}
	}

	return out, nil
}

// Choose records key as the tentative selection for the current node.
// It replaces any earlier pending choice and does not move the stack.
func (r *Resolver) Choose(key string) error {
	if r.Completed() {
		return ErrAlreadyCompleted
	}

	node := r.top().node
	if _, ok := node.Option(key); !ok {
		return &UnknownKeyError{
			Key:         key,
			Prompt:      node.Prompt(),
			Suggestions: suggest(key, node.Keys()),
		}
	}

	r.pending, r.hasPending = key, true

	return nil
}

// Advance consumes the pending choice. From a terminal node it completes
// the selection; from an intermediate node it loads the chosen child and,
// while the entered node offers exactly one option, keeps advancing
// through it.
//
// Catalog errors are returned unchanged and leave the resolver exactly as
// it was before the call, pending choice included.
func (r *Resolver) Advance() error {
	if r.Completed() {
		return ErrAlreadyCompleted
	}

	if !r.hasPending {
		return ErrNoSelectionMade
	}

	depth := len(r.stack)

	err := r.step(r.pending, EntryForward)
	if err != nil {
		r.stack = r.stack[:depth]
		r.keys = r.keys[:depth-1]

		return err
	}

	r.pending, r.hasPending = "", false

	return nil
}

func (r *Resolver) step(key string, entry Entry) error {
	for {
		node := r.top().node

		opt, ok := node.Option(key)
		if !ok {
			return &UnknownKeyError{Key: key, Prompt: node.Prompt()}
		}

		if node.Terminal() {
			r.stack = append(r.stack, frame{leaf: opt.Leaf, entry: entry})
			r.keys = append(r.keys, key)

			return nil
		}

		child, err := r.loader.Load(opt.Path)
		if err != nil {
			return err
		}

		r.stack = append(r.stack, frame{node: child, entry: entry})
		r.keys = append(r.keys, key)

		if !r.cfg.AutoAdvance || child.Len() != 1 {
			return nil
		}

		key, entry = child.Keys()[0], EntryAuto
	}
}

// Retreat undoes one advance: it drops the newest frame and key and shows
// the previous node again without a pending choice. A node revealed this
// way is never auto-advanced, even when it offers a single option.
func (r *Resolver) Retreat() error {
	if len(r.stack) == 1 {
		return ErrAtRoot
	}

	r.stack = r.stack[:len(r.stack)-1]
	r.keys = r.keys[:len(r.keys)-1]
	r.stack[len(r.stack)-1].entry = EntryBackward
	r.pending, r.hasPending = "", false

	return nil
}

// Result returns the completed selection.
func (r *Resolver) Result() (Result, error) {
	if !r.Completed() {
		return Result{}, ErrNotCompleted
	}

	return Result{
		Role:   r.role,
		Keys:   r.SelectedKeys(),
		Leaf:   *r.top().leaf,
		Prompt: r.Prompt(),
	}, nil
}
