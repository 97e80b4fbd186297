package translate

import (
	"fmt"
	"sort"
	"strings"
)

// ---------------------------------------------------------------------------
// Instruction templates
// ---------------------------------------------------------------------------

// ordinarySystemPrompt is the base instruction block for independent
// leaf translations.
const ordinarySystemPrompt = `You are a professional translator specializing in software and product localization. You are translating UI and content strings from {{sourceLang}} to {{targetLang}}.

IMPORTANT TRANSLATION PRINCIPLES:
- Translate for NATURALNESS and FLUENCY in {{targetLang}}, not word-for-word
- Use idiomatic expressions natural to {{targetLang}}, not literal translations
- Use established IT terminology standard in {{targetLang}}
- Keep brand names and proper nouns unchanged
- Maintain the original tone and intent

TECHNICAL REQUIREMENTS:
- Return ONLY the translated text, with no explanations, quotes, or markdown code blocks
- Preserve leading/trailing whitespace, newlines, and punctuation patterns`

// jointSystemPrompt is the instruction block for joint
// description+links translations. The anchors must appear verbatim
// inside the translated description so downstream rendering can locate
// them.
const jointSystemPrompt = `You are a professional translator specializing in software and product localization. You are translating a description text together with the anchor texts of the links it references, from {{sourceLang}} to {{targetLang}}.

CRITICAL REQUIREMENT:
- Every translated link text MUST appear verbatim as a substring of the translated description, so translate the description and the link texts consistently, as one unit.

TECHNICAL REQUIREMENTS:
- The input is a JSON object: {"description": "...", "linkTexts": ["...", ...]}
- Return ONLY a JSON object of the same shape with every value translated, the linkTexts in the same order
- Return ONLY the JSON object, no explanations or markdown code blocks`

// ---------------------------------------------------------------------------
// Instruction assembly
// ---------------------------------------------------------------------------

// buildOrdinaryInstructions assembles the full instruction block for
// one ordinary leaf: base prompt, glossary rules, placeholder
// preservation requirements, similarity examples, and already-known
// translations of the same key in other target languages.
func buildOrdinaryInstructions(opts *Options, lc *leafContext) string {
	var b strings.Builder
	b.WriteString(resolveLangs(ordinarySystemPrompt, opts))

	if rules := glossaryRules(opts); rules != "" {
		b.WriteString("\n\nPROTECTED TERMS:\n")
		b.WriteString(rules)
	}

	if placeholders := extractPlaceholders(lc.source); len(placeholders) > 0 {
		b.WriteString("\n\nPLACEHOLDERS:\n")
		fmt.Fprintf(&b, "- The input contains placeholder tokens that MUST be preserved exactly as-is: %s\n", strings.Join(placeholders, ", "))
	}

	if len(lc.examples) > 0 {
		b.WriteString("\n\nCONSISTENCY EXAMPLES (previously translated strings from this project, match their terminology):\n")
		for _, ex := range lc.examples {
			fmt.Fprintf(&b, "- %q was translated as %q\n", ex.Source, ex.Translated)
		}
	}

	if len(lc.others) > 0 {
		b.WriteString("\nTRANSLATIONS OF THE SAME KEY IN OTHER LANGUAGES (for context):\n")
		for _, lang := range sortedKeys(lc.others) {
			fmt.Fprintf(&b, "- %s: %q\n", lang, lc.others[lang])
		}
	}

	return b.String()
}

// buildJointInstructions assembles the instruction block for a joint
// description+links group.
func buildJointInstructions(opts *Options) string {
	var b strings.Builder
	b.WriteString(resolveLangs(jointSystemPrompt, opts))
	if rules := glossaryRules(opts); rules != "" {
		b.WriteString("\n\nPROTECTED TERMS:\n")
		b.WriteString(rules)
	}
	return b.String()
}

func glossaryRules(opts *Options) string {
	if opts.Glossary == nil {
		return ""
	}
	return opts.Glossary.PromptRules(opts.Language)
}

func resolveLangs(prompt string, opts *Options) string {
	prompt = strings.ReplaceAll(prompt, "{{targetLang}}", opts.targetName())
	return strings.ReplaceAll(prompt, "{{sourceLang}}", opts.sourceName())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
