package translate

import (
	"regexp"
	"strings"
)

// markdownCodeBlock matches a fenced code block wrapping the whole
// response, with an optional language tag.
var markdownCodeBlock = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\n?```$")

// placeholderToken matches {name}-style placeholder tokens that must
// survive translation verbatim.
var placeholderToken = regexp.MustCompile(`\{[^{}]*\}`)

// extractPlaceholders returns the placeholder tokens found in s, in
// order of appearance.
func extractPlaceholders(s string) []string {
	return placeholderToken.FindAllString(s, -1)
}

// missingPlaceholders returns the source placeholders absent from the
// translated result.
func missingPlaceholders(source, result string) []string {
	var missing []string
	for _, ph := range extractPlaceholders(source) {
		if !strings.Contains(result, ph) {
			missing = append(missing, ph)
		}
	}
	return missing
}

// stripWrapping removes a single layer of wrapping the provider may
// have added around the translated value: a markdown code fence, then
// one layer of matching quotes or backticks — the latter only when the
// original value was not itself quoted.
//
// This is best-effort cosmetic normalization, not a parser; responses
// with internal unbalanced quotes are left alone.
func stripWrapping(result, original string) string {
	result = strings.TrimSpace(result)

	if m := markdownCodeBlock.FindStringSubmatch(result); len(m) > 1 {
		result = strings.TrimSpace(m[1])
	}

	for _, q := range []string{`"`, "'", "`"} {
		if len(result) < 2 {
			break
		}
		if strings.HasPrefix(result, q) && strings.HasSuffix(result, q) &&
			!(strings.HasPrefix(original, q) && strings.HasSuffix(original, q)) {
			result = result[1 : len(result)-1]
			break
		}
	}

	return result
}
