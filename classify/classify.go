// Package classify partitions missing leaf key paths into translation
// work groups: pass-through keys copied verbatim from source, joint
// description+links groups translated as one unit, and ordinary keys
// translated independently.
//
// Joint groups exist because link anchor text must appear verbatim
// inside its surrounding description after translation; translating
// them independently cannot guarantee that substring relationship.
package classify

import (
	"strings"

	"github.com/minios-linux/loctree/tree"
)

// JointPattern describes one joint-content rule: a description leaf
// suffix plus the sibling array of link-like items to translate with
// it.
type JointPattern struct {
	// DescriptionSuffix matches the description leaf's key path
	// (e.g. ".description").
	DescriptionSuffix string
	// ArrayKey is the sibling array's key in the same section
	// (e.g. "links").
	ArrayKey string
	// TextField is the translatable field inside each array item
	// (e.g. "text").
	TextField string
}

// Rules holds the configured classification patterns.
type Rules struct {
	// PassThroughSuffixes are leaf path suffix patterns for content
	// that is never translated (URL-like fields). Patterns may be
	// written as "href", ".href", or "*.href" — all match paths whose
	// final segment is "href".
	PassThroughSuffixes []string
	// JointPatterns are the joint-content rules, checked in order.
	JointPatterns []JointPattern
}

// DefaultRules returns the built-in classification patterns.
func DefaultRules() Rules {
	return Rules{
		PassThroughSuffixes: []string{"href", "url", "icon"},
		JointPatterns: []JointPattern{
			{DescriptionSuffix: "description", ArrayKey: "links", TextField: "text"},
		},
	}
}

// Group is one joint translation unit: a description leaf and its
// sibling link anchor leaves.
type Group struct {
	// DescriptionPath is the key path of the description leaf.
	DescriptionPath string
	// SectionPath is the parent section containing the description and
	// the array.
	SectionPath string
	// ArrayPath is the key path of the sibling link array.
	ArrayPath string
	// TextPaths are the key paths of each item's text field, in array
	// order.
	TextPaths []string
}

// Partition is the disjoint three-way split of missing keys.
type Partition struct {
	// PassThrough keys are copied verbatim from source.
	PassThrough []string
	// Joint groups are translated one external call per group.
	Joint []Group
	// Ordinary keys are translated independently.
	Ordinary []string
}

// Classify partitions missing leaf paths against the source tree.
// Precedence: pass-through, then joint grouping, then ordinary. Text
// field leaves claimed by a joint group are removed from individual
// consideration no matter where they appear in the missing list, so
// the partition is disjoint even when a source section declares its
// link array before its description.
func Classify(missing []string, source *tree.Node, rules Rules) *Partition {
	p := &Partition{}

	// First pass: form every joint group so the claimed set covers the
	// whole missing list before any key is assigned.
	claimed := make(map[string]bool)
	groups := make(map[string]Group)
	for _, path := range missing {
		if matchesAnySuffix(path, rules.PassThroughSuffixes) {
			continue
		}
		if group, ok := matchJoint(path, source, rules.JointPatterns); ok {
			groups[path] = group
			for _, tp := range group.TextPaths {
				claimed[tp] = true
			}
		}
	}

	for _, path := range missing {
		if matchesAnySuffix(path, rules.PassThroughSuffixes) {
			p.PassThrough = append(p.PassThrough, path)
			continue
		}
		if group, ok := groups[path]; ok {
			p.Joint = append(p.Joint, group)
			continue
		}
		if claimed[path] {
			continue
		}
		p.Ordinary = append(p.Ordinary, path)
	}

	return p
}

// matchJoint checks whether path is a description leaf with a valid
// sibling link array: every item must expose a non-empty text field.
func matchJoint(path string, source *tree.Node, patterns []JointPattern) (Group, bool) {
	for _, pat := range patterns {
		if !matchesSuffix(path, pat.DescriptionSuffix) {
			continue
		}
		section := tree.ParentPath(path)
		arrayPath := tree.JoinPath(section, pat.ArrayKey)
		arr, ok := tree.Get(source, arrayPath)
		if !ok || arr.Kind() != tree.Array || arr.Len() == 0 {
			continue
		}

		textPaths := make([]string, 0, arr.Len())
		valid := true
		for _, idx := range arr.Keys() {
			textPath := tree.JoinPath(tree.JoinPath(arrayPath, idx), pat.TextField)
			text, ok := tree.GetString(source, textPath)
			if !ok || text == "" {
				valid = false
				break
			}
			textPaths = append(textPaths, textPath)
		}
		if !valid {
			continue
		}

		return Group{
			DescriptionPath: path,
			SectionPath:     section,
			ArrayPath:       arrayPath,
			TextPaths:       textPaths,
		}, true
	}
	return Group{}, false
}

func matchesAnySuffix(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if matchesSuffix(path, s) {
			return true
		}
	}
	return false
}

// matchesSuffix reports whether the path's trailing segments equal the
// pattern. "href", ".href" and "*.href" are equivalent.
func matchesSuffix(path, pattern string) bool {
	pattern = strings.TrimPrefix(pattern, "*")
	pattern = strings.TrimPrefix(pattern, tree.PathSep)
	if pattern == "" {
		return false
	}
	return path == pattern || strings.HasSuffix(path, tree.PathSep+pattern)
}
