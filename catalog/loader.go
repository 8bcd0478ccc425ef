package catalog

import (
	"io/fs"
	"path/filepath"
)

// Loader loads the node identified by path. Paths are either directories
// holding an index file or index files themselves.
type Loader interface {
	Load(path string) (*Node, error)
}

// LoaderFunc adapts a function to [Loader].
type LoaderFunc func(path string) (*Node, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*Node, error) {
	return f(path)
}

// FileLoader reads index files from the local file system on every call.
type FileLoader struct{}

// Load implements [Loader].
func (FileLoader) Load(path string) (*Node, error) {
	return Load(path)
}

// MemLoader serves index bodies from memory. Keys are cleaned paths:
// directories (reported as dir/index.txt, so children resolve as on disk)
// or explicit .txt index files.
type MemLoader map[string]string

// Load implements [Loader].
func (m MemLoader) Load(path string) (*Node, error) {
	p := filepath.Clean(path)
	if filepath.Base(p) == IndexFile {
		p = filepath.Dir(p)
	}

	indexPath := p
	if filepath.Ext(p) != ".txt" {
		indexPath = filepath.Join(p, IndexFile)
	}

	body, ok := m[p]
	if !ok {
		return nil, malformed(indexPath, "missing index file", fs.ErrNotExist)
	}

	return Parse(indexPath, []byte(body))
}
