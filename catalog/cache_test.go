package catalog

import (
	"errors"
	"testing"
)

func TestCachedLoader(t *testing.T) {
	t.Parallel()

	calls := map[string]int{}
	fail := true
	inner := LoaderFunc(func(path string) (*Node, error) {
		calls[path]++
		if path == "bad" && fail {
			return nil, malformed(path, "missing index file", nil)
		}

		return Parse(path+"/index.txt", []byte("[Main]\nquestion = q\n[A]\npath = a\n"))
	})

	c, err := NewCachedLoader(inner, 2)
	if err != nil {
		t.Fatalf("NewCachedLoader: %v", err)
	}

	t.Run("hits are served from cache", func(t *testing.T) {
		first, err := c.Load("a")
		if err != nil {
			t.Fatalf("load: %v", err)
		}

		second, _ := c.Load("a/")
		if first != second {
			t.Error("expected the cached node")
		}

		if calls["a"] != 1 {
			t.Errorf("inner calls = %d, want 1", calls["a"])
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		_, err := c.Load("bad")
		if !errors.Is(err, ErrMalformedCatalog) {
			t.Fatalf("error = %v", err)
		}

		fail = false

		_, err = c.Load("bad")
		if err != nil {
			t.Fatalf("second load: %v", err)
		}

		if calls["bad"] != 2 {
			t.Errorf("inner calls = %d, want 2", calls["bad"])
		}
	})

	t.Run("capacity bounds the cache", func(t *testing.T) {
		_, _ = c.Load("c")
		if c.Len() != 2 {
			t.Errorf("len = %d, want 2", c.Len())
		}

		c.Purge()

		if c.Len() != 0 {
			t.Errorf("len after purge = %d", c.Len())
		}
	})
}

func TestNewCachedLoaderNil(t *testing.T) {
	t.Parallel()

	_, err := NewCachedLoader(nil, 0)
	if err == nil {
		t.Fatal("expected error for nil loader")
	}
}
