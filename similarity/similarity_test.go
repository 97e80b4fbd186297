package similarity

import (
	"reflect"
	"testing"
)

func TestScore_SymmetricAndBounded(t *testing.T) {
	pairs := []struct{ a, b string }{
		{"Install the package manager", "Remove the package manager"},
		{"Hello world", "Completely unrelated words"},
		{"Identical sentence here", "Identical sentence here"},
		{"", "anything"},
	}
	for _, p := range pairs {
		ab := Score(p.a, p.b)
		ba := Score(p.b, p.a)
		if ab != ba {
			t.Errorf("Score(%q, %q) = %v but reversed = %v", p.a, p.b, ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Score(%q, %q) = %v out of [0, 1]", p.a, p.b, ab)
		}
	}

	if s := Score("Identical sentence here", "Identical sentence here"); s != 1 {
		t.Errorf("identical strings score %v, want 1", s)
	}
	if s := Score("", "anything"); s != 0 {
		t.Errorf("empty string score %v, want 0", s)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("The Package-Manager, for you: INSTALL it!")
	want := map[string]bool{"package": true, "manager": true, "install": true, "it": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}

func TestIndex_AddSkipsUselessPairs(t *testing.T) {
	ix := New()
	ix.Add("a", "Hello", "")
	ix.Add("b", "Hello", "Hello")
	ix.Add("c", "Hello", "Bonjour")
	if ix.Len() != 1 {
		t.Errorf("Len = %d, want 1", ix.Len())
	}
}

func TestQuery_RanksAndLimits(t *testing.T) {
	ix := New()
	ix.Add("p1", "Install the package manager", "Установите менеджер пакетов")
	ix.Add("p2", "Install additional drivers", "Установите дополнительные драйверы")
	ix.Add("p3", "Configure network settings", "Настройте параметры сети")
	ix.Add("p4", "Install package updates now", "Установите обновления пакетов")
	ix.Add("p5", "Install the package manager tool", "Установите инструмент менеджера пакетов")

	got := ix.Query("Install the package manager", "")
	if len(got) != DefaultMaxExamples {
		t.Fatalf("Query returned %d entries, want %d", len(got), DefaultMaxExamples)
	}
	if got[0].Path != "p1" {
		t.Errorf("best match = %s, want p1", got[0].Path)
	}
	for _, e := range got {
		if e.Path == "p3" {
			t.Error("unrelated entry p3 should not be returned")
		}
	}
}

func TestQuery_ExcludesOwnPath(t *testing.T) {
	ix := New()
	ix.Add("self", "Install the package", "Установите пакет")

	if got := ix.Query("Install the package", "self"); len(got) != 0 {
		t.Errorf("Query should exclude its own path, got %v", got)
	}
	if got := ix.Query("Install the package", "other"); len(got) != 1 {
		t.Errorf("Query with unrelated exclude = %v, want 1 entry", got)
	}
}

func TestQuery_MinScoreThreshold(t *testing.T) {
	ix := New()
	ix.Add("far", "Completely different topic entirely", "x")

	if got := ix.Query("Install the package manager", ""); len(got) != 0 {
		t.Errorf("below-threshold entry returned: %v", got)
	}
}

func TestQuery_NegativeMinScoreDisablesThreshold(t *testing.T) {
	ix := New()
	ix.Add("far", "Completely different topic entirely", "x")

	ix.MinScore = -1
	if got := ix.Query("Install the package manager", ""); len(got) != 1 {
		t.Errorf("disabled threshold should return every candidate, got %v", got)
	}
}

func TestQuery_TiesKeepInsertionOrder(t *testing.T) {
	ix := New()
	ix.Add("first", "red green blue", "a")
	ix.Add("second", "red green blue", "b")

	got := ix.Query("red green blue", "")
	if len(got) != 2 || got[0].Path != "first" || got[1].Path != "second" {
		t.Errorf("tie order = %v, want [first second]", got)
	}
}

func TestQuery_EmptyValue(t *testing.T) {
	ix := New()
	ix.Add("p", "some source text", "translation")
	if got := ix.Query("", ""); got != nil {
		t.Errorf("Query(\"\") = %v, want nil", got)
	}
}
