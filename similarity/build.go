package similarity

import "github.com/minios-linux/loctree/tree"

// Build indexes every source leaf path that already has a differing,
// non-empty translation in the target tree. Entries keep source
// traversal order, which is also the tie-break order for Query.
func Build(source, target *tree.Node) *Index {
	ix := New()
	for _, path := range tree.Flatten(source) {
		src, ok := tree.GetString(source, path)
		if !ok || src == "" {
			continue
		}
		translated, ok := tree.GetString(target, path)
		if !ok {
			continue
		}
		ix.Add(path, src, translated)
	}
	return ix
}
