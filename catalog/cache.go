package catalog

import (
	"errors"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the node capacity used by [NewCachedLoader] when size <= 0.
const DefaultCacheSize = 1024

var errNilLoader = errors.New("catalog: nil loader")

// CachedLoader memoizes successful loads of another [Loader]. Failed loads
// are never cached so a corrected file is picked up on the next call.
// Nodes are immutable, so sharing them between resolvers is safe. A
// CachedLoader is safe for concurrent use.
type CachedLoader struct {
	next  Loader
	nodes *lru.Cache[string, *Node]
}

// NewCachedLoader wraps next with an LRU cache holding up to size nodes.
func NewCachedLoader(next Loader, size int) (*CachedLoader, error) {
	if next == nil {
		return nil, errNilLoader
	}

	if size <= 0 {
		size = DefaultCacheSize
	}

	nodes, err := lru.New[string, *Node](size)
	if err != nil {
		return nil, err
	}

	return &CachedLoader{next: next, nodes: nodes}, nil
}

// Load implements [Loader].
func (c *CachedLoader) Load(path string) (*Node, error) {
	key := filepath.Clean(path)
	if node, ok := c.nodes.Get(key); ok {
		return node, nil
	}

	node, err := c.next.Load(path)
	if err != nil {
		return nil, err
	}

	c.nodes.Add(key, node)

	return node, nil
}

// Len returns the number of cached nodes.
func (c *CachedLoader) Len() int {
	return c.nodes.Len()
}

// Purge drops every cached node.
func (c *CachedLoader) Purge() {
	c.nodes.Purge()
}
