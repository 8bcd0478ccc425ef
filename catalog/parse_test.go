package catalog

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/cwbudde/algo-nrl/internal/testutil"
)

func TestParseIntermediate(t *testing.T) {
	t.Parallel()

	node, err := Parse(filepath.Join("nrl", "sensor", IndexFile), []byte(`[Main]
question = "Select the sensor manufacturer"

[streckeisen]
path = "streckeisen"

[Guralp]
path = "guralp"

[Nanometrics]
path = "/abs/nanometrics"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if node.Prompt() != "Select the sensor manufacturer" {
		t.Errorf("prompt = %q", node.Prompt())
	}

	if node.Kind() != KindIntermediate {
		t.Errorf("kind = %v, want intermediate", node.Kind())
	}

	want := []string{"Guralp", "Nanometrics", "streckeisen"}
	if got := node.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}

	opt, ok := node.Option("Guralp")
	if !ok {
		t.Fatal("option Guralp not found")
	}

	if opt.Path != filepath.Join("nrl", "sensor", "guralp") {
		t.Errorf("path = %q", opt.Path)
	}

	abs, _ := node.Option("Nanometrics")
	if abs.Path != "/abs/nanometrics" {
		t.Errorf("absolute path rewritten to %q", abs.Path)
	}

	if _, ok := node.Option("guralp"); ok {
		t.Error("lookup must be case-sensitive")
	}
}

func TestParseTerminal(t *testing.T) {
	t.Parallel()

	node, err := Parse(filepath.Join("lib", "cmg3t.txt"), []byte(`[Main]
question = "Select the sensitivity"

[1500 V/m/s]
xml = "RESP.CMG3T.1500"
description = "CMG-3T; 120 s - 50 Hz # not a comment"

[0.1 Hz.corner]
xml = "RESP.CMG3T.corner"
description = "dotted key"
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !node.Terminal() {
		t.Fatalf("kind = %v, want terminal", node.Kind())
	}

	opts := node.Options()
	if len(opts) != 2 {
		t.Fatalf("got %d options, want 2", len(opts))
	}

	if opts[0].Key != "0.1 Hz.corner" {
		t.Errorf("first key = %q", opts[0].Key)
	}

	leaf := opts[1].Leaf
	if leaf == nil {
		t.Fatal("missing leaf")
	}

	if leaf.Payload != "RESP.CMG3T.1500" {
		t.Errorf("payload = %q", leaf.Payload)
	}

	if leaf.Description != "CMG-3T; 120 s - 50 Hz # not a comment" {
		t.Errorf("description = %q", leaf.Description)
	}

	if leaf.Dir != "lib" {
		t.Errorf("dir = %q", leaf.Dir)
	}

	if got := opts[1].Text(); got != "1500 V/m/s: CMG-3T; 120 s - 50 Hz # not a comment" {
		t.Errorf("text = %q", got)
	}

	opts[1].Leaf.Payload = "mutated"

	again, _ := node.Option("1500 V/m/s")
	if again.Leaf.Payload != "RESP.CMG3T.1500" {
		t.Error("Options must return copies")
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{
			name:   "missing main",
			body:   "[A]\npath = a\n",
			reason: "missing [Main]",
		},
		{
			name:   "missing question",
			body:   "[Main]\n\n[A]\npath = a\n",
			reason: "missing question",
		},
		{
			name:   "empty question",
			body:   "[Main]\nquestion = \"\"\n\n[A]\npath = a\n",
			reason: "missing question",
		},
		{
			name:   "no options",
			body:   "[Main]\nquestion = q\n",
			reason: "no options",
		},
		{
			name:   "mixed kinds",
			body:   "[Main]\nquestion = q\n[A]\npath = a\n[B]\nxml = b\ndescription = d\n",
			reason: "mixes",
		},
		{
			name:   "duplicate key",
			body:   "[Main]\nquestion = q\n[A]\npath = a\n[A]\npath = b\n",
			reason: "duplicate key",
		},
		{
			name:   "neither kind",
			body:   "[Main]\nquestion = q\n[A]\nfoo = bar\n",
			reason: "neither path nor xml",
		},
		{
			name:   "both kinds",
			body:   "[Main]\nquestion = q\n[A]\npath = a\nxml = b\ndescription = d\n",
			reason: "both path and xml",
		},
		{
			name:   "leaf without description",
			body:   "[Main]\nquestion = q\n[A]\nxml = b\n",
			reason: "no description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse("index.txt", []byte(tt.body))
			if !errors.Is(err, ErrMalformedCatalog) {
				t.Fatalf("error = %v, want ErrMalformedCatalog", err)
			}

			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error %q does not mention %q", err, tt.reason)
			}
		})
	}
}

func TestLoadFromDisk(t *testing.T) {
	t.Parallel()

	root := testutil.SampleLibrary(t)

	t.Run("directory reads index.txt", func(t *testing.T) {
		t.Parallel()

		node, err := Load(RoleRoot(root, RoleSensor))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if node.Path() != filepath.Join(root, "sensor", IndexFile) {
			t.Errorf("path = %q", node.Path())
		}

		if !reflect.DeepEqual(node.Keys(), []string{"Guralp", "Streckeisen"}) {
			t.Errorf("keys = %v", node.Keys())
		}
	})

	t.Run("explicit index file", func(t *testing.T) {
		t.Parallel()

		node, err := Load(filepath.Join(root, "sensor", "guralp", "cmg3t.txt"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !node.Terminal() || node.Len() != 2 {
			t.Errorf("kind=%v len=%d", node.Kind(), node.Len())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(root, "nope"))
		if !errors.Is(err, ErrMalformedCatalog) {
			t.Fatalf("error = %v, want ErrMalformedCatalog", err)
		}

		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("error %v should wrap fs.ErrNotExist", err)
		}

		var me *MalformedError
		if !errors.As(err, &me) || me.Reason != "missing index file" {
			t.Errorf("unexpected malformed error: %#v", err)
		}
	})
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	if !RoleSensor.Valid() || !RoleDatalogger.Valid() {
		t.Error("built-in roles must be valid")
	}

	if Role("seismometer").Valid() {
		t.Error("unknown role reported valid")
	}
}
