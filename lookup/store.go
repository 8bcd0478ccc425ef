package lookup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-nrl/catalog"
	"github.com/cwbudde/algo-nrl/response"
)

// Store resolves key sequences against an on-disk catalog and reads leaf
// payloads as YAML response documents.
type Store struct {
	root   string
	loader catalog.Loader
}

// NewStore returns a Store for the catalog at root. A nil loader reads index
// files directly from disk.
func NewStore(root string, loader catalog.Loader) *Store {
	if loader == nil {
		loader = catalog.FileLoader{}
	}

	return &Store{root: root, loader: loader}
}

// Root returns the catalog root directory.
func (s *Store) Root() string { return s.root }

// Resolve implements [Lookup]. keys must lead from the role's root node to
// exactly one leaf.
func (s *Store) Resolve(ctx context.Context, role catalog.Role, keys []string) (response.Response, error) {
	leaf, err := s.Leaf(ctx, role, keys)
	if err != nil {
		return response.Response{}, err
	}

	payload := leaf.Payload
	if !filepath.IsAbs(payload) {
		payload = filepath.Join(leaf.Dir, payload)
	}

	data, err := os.ReadFile(payload)
	if err != nil {
		return response.Response{}, lookupError(role, keys, "unreadable payload "+payload, err)
	}

	r, err := Decode(data)
	if err != nil {
		return response.Response{}, lookupError(role, keys, "corrupt payload "+payload, err)
	}

	return r, nil
}

// Leaf walks the catalog with keys and returns the leaf they select.
func (s *Store) Leaf(ctx context.Context, role catalog.Role, keys []string) (catalog.Leaf, error) {
	if !role.Valid() {
		return catalog.Leaf{}, lookupError(role, keys, "unknown role", nil)
	}

	if len(keys) == 0 {
		return catalog.Leaf{}, lookupError(role, keys, "empty key sequence", nil)
	}

	path := catalog.RoleRoot(s.root, role)

	for i, key := range keys {
		err := ctx.Err()
		if err != nil {
			return catalog.Leaf{}, err
		}

		node, err := s.loader.Load(path)
		if err != nil {
			return catalog.Leaf{}, lookupError(role, keys, "catalog unreadable", err)
		}

		opt, ok := node.Option(key)
		if !ok {
			return catalog.Leaf{}, lookupError(role, keys, "unknown key "+key+" at "+node.Path(), nil)
		}

		if opt.Leaf != nil {
			if i != len(keys)-1 {
				return catalog.Leaf{}, lookupError(role, keys, "keys continue past leaf "+key, nil)
			}

			return *opt.Leaf, nil
		}

		path = opt.Path
	}

	return catalog.Leaf{}, lookupError(role, keys, "key sequence ends before a leaf", nil)
}
