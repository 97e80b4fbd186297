package glossary

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `terms:
  - term: MiniOS
  - term: edition
    overrides:
      ru: издание
      de: Edition
`

func TestParse(t *testing.T) {
	g, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(g.Terms) != 2 {
		t.Fatalf("Terms = %d, want 2", len(g.Terms))
	}
	if g.Terms[0].Term != "MiniOS" || g.Terms[0].Overrides != nil {
		t.Errorf("first term = %+v", g.Terms[0])
	}
	if g.Terms[1].Overrides["ru"] != "издание" {
		t.Errorf("ru override = %q", g.Terms[1].Overrides["ru"])
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("terms: {not: a list}")); err == nil {
		t.Error("expected error for malformed glossary")
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	g, err := Load(filepath.Join(t.TempDir(), "glossary.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !g.Empty() {
		t.Errorf("missing file should load as empty glossary, got %+v", g)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Empty() || len(g.Terms) != 2 {
		t.Errorf("loaded glossary = %+v", g)
	}
}

func TestPromptRules(t *testing.T) {
	g, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	ru := g.PromptRules("ru")
	if !strings.Contains(ru, `Keep "MiniOS" unchanged`) {
		t.Errorf("ru rules missing verbatim term:\n%s", ru)
	}
	if !strings.Contains(ru, `Always translate "edition" as "издание"`) {
		t.Errorf("ru rules missing override:\n%s", ru)
	}

	// No override for this language: the term stays verbatim.
	fr := g.PromptRules("fr")
	if !strings.Contains(fr, `Keep "edition" unchanged`) {
		t.Errorf("fr rules should keep edition verbatim:\n%s", fr)
	}
}

func TestPromptRules_Empty(t *testing.T) {
	var g *Glossary
	if got := g.PromptRules("ru"); got != "" {
		t.Errorf("nil glossary rules = %q", got)
	}
	if got := (&Glossary{}).PromptRules("ru"); got != "" {
		t.Errorf("empty glossary rules = %q", got)
	}
}
