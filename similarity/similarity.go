// Package similarity builds an ephemeral per-run index of already
// translated (source, translated) string pairs and scores candidate
// leaves against the string currently being translated.
//
// Surfacing lexically similar prior translations biases the provider
// toward consistent terminology and phrasing within one run. The index
// is rebuilt every invocation; nothing is persisted.
package similarity

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// DefaultMaxExamples is how many examples a query returns at most.
	DefaultMaxExamples = 3
	// DefaultMinScore is the minimum Jaccard score for a candidate.
	DefaultMinScore = 0.15
)

// stopWords are dropped during tokenization alongside tokens of
// length <= 1.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true,
	"not": true, "you": true, "your": true, "with": true, "that": true,
	"this": true, "from": true, "have": true, "has": true, "will": true,
	"can": true, "its": true, "into": true, "all": true, "any": true,
}

// Entry is one indexed pair: a source string and its existing
// translation at a given key path.
type Entry struct {
	Path       string
	Source     string
	Translated string
}

// Index is the in-memory similarity lookup for one target language.
type Index struct {
	entries []Entry
	tokens  []map[string]bool

	// MaxExamples and MinScore tune Query; zero values fall back to
	// the defaults. A negative MinScore disables the threshold so any
	// scoring candidate qualifies.
	MaxExamples int
	MinScore    float64
}

// New creates an empty index.
func New() *Index {
	return &Index{}
}

// Add records a translated pair. Pairs whose translation is empty or
// identical to the source carry no signal and are skipped.
func (ix *Index) Add(path, source, translated string) {
	if translated == "" || translated == source {
		return
	}
	ix.entries = append(ix.entries, Entry{Path: path, Source: source, Translated: translated})
	ix.tokens = append(ix.tokens, tokenize(source))
}

// Len returns the number of indexed pairs.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// scored pairs an entry with its query score for sorting.
type scored struct {
	entry Entry
	score float64
	order int
}

// Query returns up to MaxExamples indexed entries whose source text
// scores at or above MinScore against value, sorted by descending
// score. The entry at excludePath is never a candidate. Ties keep
// index insertion order.
func (ix *Index) Query(value, excludePath string) []Entry {
	max := ix.MaxExamples
	if max <= 0 {
		max = DefaultMaxExamples
	}
	min := ix.MinScore
	if min == 0 {
		min = DefaultMinScore
	} else if min < 0 {
		min = 0
	}

	query := tokenize(value)
	if len(query) == 0 {
		return nil
	}

	var candidates []scored
	for i, e := range ix.entries {
		if e.Path == excludePath {
			continue
		}
		s := jaccard(query, ix.tokens[i])
		if s >= min {
			candidates = append(candidates, scored{entry: e, score: s, order: i})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		return candidates[a].order < candidates[b].order
	})

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]Entry, len(candidates))
	for i, c := range candidates {
		out[i] = c.entry
	}
	return out
}

// Score computes the Jaccard similarity of two strings' token sets:
// |A∩B| / (|A| + |B| - |A∩B|). Empty token sets score 0. The result
// is symmetric and lies in [0, 1].
func Score(a, b string) float64 {
	return jaccard(tokenize(a), tokenize(b))
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if b[t] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// tokenize lowercases, strips non-alphanumeric runes, splits on
// whitespace, and drops short tokens and stop words.
func tokenize(s string) map[string]bool {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	tokens := make(map[string]bool)
	for _, t := range strings.Fields(b.String()) {
		if len([]rune(t)) <= 1 || stopWords[t] {
			continue
		}
		tokens[t] = true
	}
	return tokens
}
