// Package glossary — protected-term support for translation prompts.
//
// A glossary file is a YAML list of terms that must survive translation
// either verbatim or via an approved per-language override:
//
//	terms:
//	  - term: MiniOS
//	  - term: edition
//	    overrides:
//	      ru: издание
//	      de: Edition
//
// Glossary entries are read-only inputs to prompt construction; the
// translation core never mutates them.
package glossary

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is a single protected term with optional per-language
// overrides (language code → required translation).
type Entry struct {
	Term      string            `yaml:"term"`
	Overrides map[string]string `yaml:"overrides,omitempty"`
}

// Glossary is a parsed glossary file.
type Glossary struct {
	Terms []Entry `yaml:"terms"`
}

// Load reads and parses a glossary YAML file. A missing file is not an
// error — translation simply proceeds without protected terms.
func Load(path string) (*Glossary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Glossary{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return g, nil
}

// Parse parses glossary YAML data.
func Parse(data []byte) (*Glossary, error) {
	var g Glossary
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing glossary YAML: %w", err)
	}
	return &g, nil
}

// Empty reports whether the glossary has no terms.
func (g *Glossary) Empty() bool {
	return g == nil || len(g.Terms) == 0
}

// PromptRules renders the glossary as instruction lines for the given
// target language: verbatim-keep rules for plain terms, fixed
// translations where an override exists.
func (g *Glossary) PromptRules(lang string) string {
	if g.Empty() {
		return ""
	}
	var b strings.Builder
	for _, e := range g.Terms {
		if e.Term == "" {
			continue
		}
		if override, ok := e.Overrides[lang]; ok && override != "" {
			fmt.Fprintf(&b, "- Always translate %q as %q.\n", e.Term, override)
		} else {
			fmt.Fprintf(&b, "- Keep %q unchanged, do not translate it.\n", e.Term)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
