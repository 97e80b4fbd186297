package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Structured is a joint-group translation response: the translated
// description plus a parallel list of translated link anchor texts.
type Structured struct {
	Description string   `json:"description"`
	LinkTexts   []string `json:"linkTexts"`
}

// Translator is the external translation capability the orchestrator
// drives. Implementations may fail with provider errors (network,
// auth, quota); the orchestrator's only reaction is a per-item
// fallback.
type Translator interface {
	// Translate returns a single free-text response.
	Translate(ctx context.Context, instructions, input string) (string, error)
	// TranslateStructured returns a joint description+anchors response.
	TranslateStructured(ctx context.Context, instructions, input string) (*Structured, error)
}

// providerTranslator adapts an HTTP provider to the Translator
// interface.
type providerTranslator struct {
	prov    Provider
	verbose bool
}

// NewProviderTranslator wraps a provider configuration as a Translator.
func NewProviderTranslator(prov Provider, verbose bool) Translator {
	return &providerTranslator{prov: prov, verbose: verbose}
}

func (t *providerTranslator) Translate(ctx context.Context, instructions, input string) (string, error) {
	return callProvider(ctx, t.prov, instructions, input, t.verbose)
}

func (t *providerTranslator) TranslateStructured(ctx context.Context, instructions, input string) (*Structured, error) {
	content, err := callProvider(ctx, t.prov, instructions, input, t.verbose)
	if err != nil {
		return nil, err
	}
	return parseStructured(content)
}

// parseStructured interprets a model response as a {description,
// linkTexts} JSON object, tolerating a markdown code fence around it.
func parseStructured(content string) (*Structured, error) {
	content = strings.TrimSpace(content)
	if m := markdownCodeBlock.FindStringSubmatch(content); len(m) > 1 {
		content = m[1]
	}

	// Locate the JSON object in the response.
	startIdx := strings.Index(content, "{")
	endIdx := strings.LastIndex(content, "}")
	if startIdx >= 0 && endIdx > startIdx {
		content = content[startIdx : endIdx+1]
	}

	var s Structured
	if err := json.Unmarshal([]byte(content), &s); err != nil {
		return nil, fmt.Errorf("structured response is not a {description, linkTexts} object: %w", err)
	}
	if s.Description == "" {
		return nil, fmt.Errorf("structured response has an empty description")
	}
	return &s, nil
}
