// Package diff computes structural discrepancies between a source
// translation tree and a target tree: leaf paths missing from the
// target, extra leaf paths not in the source, and shape mismatches
// where one side holds a leaf and the other a container.
//
// Output is fully determined by traversal order — no hashing, no
// randomization — so reports are stable across runs.
package diff

import "github.com/minios-linux/loctree/tree"

// Mismatch records a path present in both trees with disagreeing
// shapes.
type Mismatch struct {
	Path       string
	SourceKind tree.Kind
	TargetKind tree.Kind
}

// Report is the immutable result of comparing two trees.
type Report struct {
	// MissingInTarget lists source leaf paths absent from the target,
	// in source traversal order.
	MissingInTarget []string
	// ExtraInTarget lists target leaf paths absent from the source,
	// in target traversal order.
	ExtraInTarget []string
	// TypeMismatches lists paths where the two trees disagree on
	// leaf-vs-container shape (both directions).
	TypeMismatches []Mismatch
	// SourceLeaves and TargetLeaves are total leaf counts, for
	// reporting.
	SourceLeaves int
	TargetLeaves int
}

// InSync reports whether the target structurally matches the source.
func (r *Report) InSync() bool {
	return len(r.MissingInTarget) == 0 && len(r.ExtraInTarget) == 0 && len(r.TypeMismatches) == 0
}

// Compare diffs target against source. An empty source yields zero
// missing paths and all target leaves as extra; an empty target yields
// all source leaves as missing.
func Compare(source, target *tree.Node) *Report {
	r := &Report{
		SourceLeaves: tree.CountLeaves(source),
		TargetLeaves: tree.CountLeaves(target),
	}

	for _, path := range tree.Flatten(source) {
		node, ok := tree.Get(target, path)
		switch {
		case !ok:
			r.MissingInTarget = append(r.MissingInTarget, path)
		case node.IsContainer():
			r.TypeMismatches = append(r.TypeMismatches, Mismatch{
				Path:       path,
				SourceKind: tree.Leaf,
				TargetKind: node.Kind(),
			})
		}
	}

	for _, path := range tree.Flatten(target) {
		node, ok := tree.Get(source, path)
		switch {
		case !ok:
			r.ExtraInTarget = append(r.ExtraInTarget, path)
		case node.IsContainer():
			r.TypeMismatches = append(r.TypeMismatches, Mismatch{
				Path:       path,
				SourceKind: node.Kind(),
				TargetKind: tree.Leaf,
			})
		}
	}

	return r
}
