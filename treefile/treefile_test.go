package treefile

import (
	"errors"
	"io/fs"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/minios-linux/loctree/tree"
)

const sampleJSON = `{
    "title": "Getting started",
    "intro": {
        "description": "See the [guide] for details.",
        "links": [
            { "text": "guide", "href": "https://example.org/guide" }
        ]
    }
}`

func TestParse_PreservesKeyOrder(t *testing.T) {
	root, err := Parse([]byte(`{"z": "1", "a": "2", "m": {"k2": "x", "k1": "y"}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := tree.Flatten(root)
	want := []string{"z", "a", "m.k2", "m.k1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten = %v, want %v", got, want)
	}
}

func TestParse_ArrayShape(t *testing.T) {
	root, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	links, ok := tree.Get(root, "intro.links")
	if !ok || links.Kind() != tree.Array {
		t.Fatalf("intro.links should be an array, got %v", links)
	}
	if v, _ := tree.GetString(root, "intro.links.0.text"); v != "guide" {
		t.Errorf("intro.links.0.text = %q", v)
	}
}

func TestParse_CoercesScalars(t *testing.T) {
	root, err := Parse([]byte(`{"n": 42, "b": true, "x": null}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if v, ok := tree.GetString(root, "n"); !ok || v != "42" {
		t.Errorf("n = %q, %v", v, ok)
	}
	if v, _ := tree.GetString(root, "b"); v != "true" {
		t.Errorf("b = %q", v)
	}
	if v, ok := tree.GetString(root, "x"); !ok || v != "" {
		t.Errorf("x = %q, %v", v, ok)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse([]byte(`[1, 2]`)); err == nil {
		t.Error("top-level array should fail")
	}
	if _, err := Parse([]byte(`{"a": `)); err == nil {
		t.Error("truncated JSON should fail")
	}
	if _, err := Parse([]byte(`{} trailing`)); err == nil {
		t.Error("trailing content should fail")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	root, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(tree.Flatten(root), tree.Flatten(again)) {
		t.Errorf("round-trip key order changed:\n%v\n%v", tree.Flatten(root), tree.Flatten(again))
	}
	links, _ := tree.Get(again, "intro.links")
	if links.Kind() != tree.Array {
		t.Error("round-trip lost array shape")
	}
	if !strings.Contains(string(data), "[\n") {
		t.Errorf("arrays should serialise as JSON arrays:\n%s", data)
	}
}

func TestMarshal_ControlCharacterRoundTrip(t *testing.T) {
	root := tree.NewObject()
	root.SetChild("msg", tree.NewLeaf("bad\x01value\tend"))
	root.SetChild("quoted", tree.NewLeaf(`say "hi"`))

	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, data)
	}
	if v, _ := tree.GetString(back, "msg"); v != "bad\x01value\tend" {
		t.Errorf("msg = %q", v)
	}
	if v, _ := tree.GetString(back, "quoted"); v != `say "hi"` {
		t.Errorf("quoted = %q", v)
	}
}

func TestMarshal_EmptyContainers(t *testing.T) {
	root := tree.NewObject()
	root.SetChild("empty", tree.NewObject())
	root.SetChild("list", tree.NewArray())

	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "{}") || !strings.Contains(s, "[]") {
		t.Errorf("empty containers wrong:\n%s", s)
	}
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist: %v", err)
	}
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locales", "ru.json")

	root := tree.NewObject()
	root.SetChild("greeting", tree.NewLeaf("Привет"))
	if err := WriteFile(path, root); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	back, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if v, _ := tree.GetString(back, "greeting"); v != "Привет" {
		t.Errorf("greeting = %q", v)
	}
}
