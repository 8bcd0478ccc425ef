package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// IndexFile is the index file name looked up inside catalog directories.
const IndexFile = "index.txt"

const (
	mainSection    = "Main"
	keyQuestion    = "question"
	keyPath        = "path"
	keyXML         = "xml"
	keyDescription = "description"
)

// loadOptions match the NRL index dialect: repeated sections are reported
// as duplicates and values keep inline "#" and ";".
var loadOptions = ini.LoadOptions{
	AllowNonUniqueSections: true,
	IgnoreInlineComment:    true,
}

// IndexPath returns the index file for path: path/index.txt for
// directories, path itself otherwise.
func IndexPath(path string) string {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return filepath.Join(path, IndexFile)
	}

	return path
}

// Load reads and validates the index file for path.
func Load(path string) (*Node, error) {
	indexPath := IndexPath(path)

	data, err := os.ReadFile(indexPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, malformed(indexPath, "missing index file", err)
		}

		return nil, malformed(indexPath, "unreadable index file", err)
	}

	return Parse(indexPath, data)
}

// Parse builds a node from the body of the index file at path. Child paths
// are resolved relative to the directory of path.
func Parse(path string, data []byte) (*Node, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, malformed(path, "invalid index syntax", err)
	}

	mains, err := file.SectionsByName(mainSection)
	if err != nil {
		return nil, malformed(path, "missing [Main] section", nil)
	}

	if len(mains) > 1 {
		return nil, malformed(path, "duplicate [Main] section", nil)
	}

	prompt := unquote(mains[0].KeysHash()[keyQuestion])
	if prompt == "" {
		return nil, malformed(path, "missing question", nil)
	}

	dir := filepath.Dir(path)
	node := &Node{path: path, prompt: prompt}
	seen := make(map[string]struct{})

	var intermediate, terminal int

	for _, sec := range file.Sections() {
		name := sec.Name()
		if name == mainSection || name == ini.DefaultSection {
			continue
		}

		if _, dup := seen[name]; dup {
			return nil, malformed(path, fmt.Sprintf("duplicate key %q", name), nil)
		}

		seen[name] = struct{}{}

		opt, err := parseOption(dir, name, sec.KeysHash())
		if err != nil {
			return nil, malformed(path, err.Error(), nil)
		}

		if opt.Leaf != nil {
			terminal++
		} else {
			intermediate++
		}

		node.options = append(node.options, opt)
	}

	switch {
	case len(node.options) == 0:
		return nil, malformed(path, "no options", nil)
	case intermediate > 0 && terminal > 0:
		return nil, malformed(path, fmt.Sprintf("mixes %d child paths with %d leaf entries", intermediate, terminal), nil)
	case terminal > 0:
		node.kind = KindTerminal
	default:
		node.kind = KindIntermediate
	}

	sortOptions(node.options)

	return node, nil
}

// parseOption reads one option section. Only the section's own keys count;
// dotted section names do not inherit from their parents.
func parseOption(dir, key string, values map[string]string) (Option, error) {
	rawPath, hasPath := values[keyPath]
	xml, hasXML := values[keyXML]
	desc, hasDesc := values[keyDescription]

	switch {
	case hasPath && hasXML:
		return Option{}, fmt.Errorf("option %q declares both path and xml", key)
	case hasPath:
		p := unquote(rawPath)
		if p == "" {
			return Option{}, fmt.Errorf("option %q has an empty path", key)
		}

		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}

		return Option{Key: key, Path: p}, nil
	case hasXML && hasDesc:
		return Option{Key: key, Leaf: &Leaf{
			Description: unquote(desc),
			Payload:     unquote(xml),
			Dir:         dir,
		}}, nil
	case hasXML:
		return Option{}, fmt.Errorf("option %q has xml but no description", key)
	default:
		return Option{}, fmt.Errorf("option %q has neither path nor xml", key)
	}
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
