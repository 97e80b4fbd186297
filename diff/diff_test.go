package diff

import (
	"reflect"
	"testing"

	"github.com/minios-linux/loctree/tree"
	"github.com/minios-linux/loctree/treefile"
)

func mustParse(t *testing.T, src string) *tree.Node {
	t.Helper()
	root, err := treefile.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func TestCompare_MissingKeys(t *testing.T) {
	source := mustParse(t, `{"a": {"b": "Hi", "c": "Bye"}}`)
	target := mustParse(t, `{"a": {"b": "Hallo"}}`)

	r := Compare(source, target)
	if !reflect.DeepEqual(r.MissingInTarget, []string{"a.c"}) {
		t.Errorf("MissingInTarget = %v, want [a.c]", r.MissingInTarget)
	}
	if len(r.ExtraInTarget) != 0 || len(r.TypeMismatches) != 0 {
		t.Errorf("unexpected extras %v or mismatches %v", r.ExtraInTarget, r.TypeMismatches)
	}
	if r.SourceLeaves != 2 || r.TargetLeaves != 1 {
		t.Errorf("leaf counts = %d/%d, want 2/1", r.SourceLeaves, r.TargetLeaves)
	}
	if r.InSync() {
		t.Error("InSync should be false with missing keys")
	}
}

func TestCompare_ExtraKeys(t *testing.T) {
	source := mustParse(t, `{"a": "x"}`)
	target := mustParse(t, `{"a": "x", "old": "stale", "nested": {"gone": "y"}}`)

	r := Compare(source, target)
	want := []string{"old", "nested.gone"}
	if !reflect.DeepEqual(r.ExtraInTarget, want) {
		t.Errorf("ExtraInTarget = %v, want %v", r.ExtraInTarget, want)
	}
	if len(r.MissingInTarget) != 0 {
		t.Errorf("MissingInTarget = %v, want empty", r.MissingInTarget)
	}
}

func TestCompare_TypeMismatches(t *testing.T) {
	source := mustParse(t, `{"links": [{"text": "a"}], "note": "plain"}`)
	target := mustParse(t, `{"links": "oops", "note": {"deep": "x"}}`)

	r := Compare(source, target)

	// Source leaf vs target container.
	found := false
	for _, m := range r.TypeMismatches {
		if m.Path == "note" && m.SourceKind == tree.Leaf && m.TargetKind == tree.Object {
			found = true
		}
	}
	if !found {
		t.Errorf("missing note mismatch in %v", r.TypeMismatches)
	}

	// Target leaf vs source container.
	found = false
	for _, m := range r.TypeMismatches {
		if m.Path == "links" && m.SourceKind == tree.Array && m.TargetKind == tree.Leaf {
			found = true
		}
	}
	if !found {
		t.Errorf("missing links mismatch in %v", r.TypeMismatches)
	}

	// The source leaves under links count as missing too.
	if !reflect.DeepEqual(r.MissingInTarget, []string{"links.0.text"}) {
		t.Errorf("MissingInTarget = %v", r.MissingInTarget)
	}
}

func TestCompare_EmptyTrees(t *testing.T) {
	full := mustParse(t, `{"a": "1", "b": {"c": "2"}}`)
	empty := tree.NewObject()

	r := Compare(full, empty)
	if !reflect.DeepEqual(r.MissingInTarget, []string{"a", "b.c"}) {
		t.Errorf("empty target: MissingInTarget = %v", r.MissingInTarget)
	}

	r = Compare(empty, full)
	if len(r.MissingInTarget) != 0 {
		t.Errorf("empty source: MissingInTarget = %v", r.MissingInTarget)
	}
	if !reflect.DeepEqual(r.ExtraInTarget, []string{"a", "b.c"}) {
		t.Errorf("empty source: ExtraInTarget = %v", r.ExtraInTarget)
	}

	r = Compare(empty, tree.NewObject())
	if !r.InSync() {
		t.Error("two empty trees should be in sync")
	}
}

func TestCompare_InSyncIgnoresValues(t *testing.T) {
	source := mustParse(t, `{"a": "Hello", "b": {"c": "World"}}`)
	target := mustParse(t, `{"b": {"c": "Monde"}, "a": "Bonjour"}`)

	if r := Compare(source, target); !r.InSync() {
		t.Errorf("same structure with different values and order should be in sync: %+v", r)
	}
}
