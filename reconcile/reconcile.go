// Package reconcile merges translated content back into a tree that
// mirrors the source tree's key order and container shapes.
//
// The output always has exactly the source's key set and order at every
// level, which keeps translation files diff-friendly no matter how the
// content was produced or edited out of band. Shape disagreements are
// never errors: the source's shape wins and incompatible content is
// dropped, since a broken shape cannot be rendered.
package reconcile

import "github.com/minios-linux/loctree/tree"

// Reorder produces a new tree with the source's key set and order at
// every level, filled with content values where they are present and
// compatible.
//
// Policy per source key:
//   - both containers of the same shape: recurse (arrays only when
//     lengths match; a partial or garbled array is not safely
//     mergeable, so mismatched-length arrays are taken from source
//     verbatim);
//   - shapes disagree: take the source subtree;
//   - leaves: prefer the content value, falling back to the source
//     value when the content is absent.
func Reorder(source, content *tree.Node) *tree.Node {
	if source == nil {
		return nil
	}

	if source.IsLeaf() {
		if content != nil && content.IsLeaf() {
			return tree.NewLeaf(content.Value())
		}
		return tree.NewLeaf(source.Value())
	}

	if content == nil || content.Kind() != source.Kind() {
		return tree.Clone(source)
	}

	if source.Kind() == tree.Array && source.Len() != content.Len() {
		return tree.Clone(source)
	}

	var out *tree.Node
	if source.Kind() == tree.Array {
		out = tree.NewArray()
	} else {
		out = tree.NewObject()
	}
	for _, key := range source.Keys() {
		srcChild, _ := source.Child(key)
		contentChild, _ := content.Child(key)
		out.SetChild(key, Reorder(srcChild, contentChild))
	}
	return out
}
