package catalog

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMemLoader(t *testing.T) {
	t.Parallel()

	loader := MemLoader{
		"nrl/sensor": "[Main]\nquestion = q\n[A]\npath = a.txt\n",
		filepath.Join("nrl", "sensor", "a.txt"): "[Main]\nquestion = leaf\n[M1]\nxml = x\ndescription = d\n",
	}

	root, err := loader.Load("nrl/sensor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.Path() != filepath.Join("nrl", "sensor", IndexFile) {
		t.Errorf("path = %q", root.Path())
	}

	opt, _ := root.Option("A")

	child, err := loader.Load(opt.Path)
	if err != nil {
		t.Fatalf("child load: %v", err)
	}

	if !child.Terminal() {
		t.Error("child should be terminal")
	}

	again, err := loader.Load(filepath.Join("nrl", "sensor", IndexFile))
	if err != nil || again.Prompt() != "q" {
		t.Errorf("index.txt path should resolve to its directory: %v", err)
	}

	_, err = loader.Load("nrl/datalogger")
	if !errors.Is(err, ErrMalformedCatalog) {
		t.Errorf("missing entry error = %v", err)
	}
}

func TestLoaderFunc(t *testing.T) {
	t.Parallel()

	var got string

	l := LoaderFunc(func(path string) (*Node, error) {
		got = path
		return nil, errors.New("boom")
	})

	_, err := l.Load("x")
	if err == nil || got != "x" {
		t.Fatalf("LoaderFunc not invoked: got=%q err=%v", got, err)
	}
}
