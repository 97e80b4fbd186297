// Package tree implements the in-memory model for hierarchical
// translation trees: ordered string-keyed nodes whose values are either
// string leaves or nested containers (mappings or arrays).
//
// Arrays are containers with numeric-string keys ("0", "1", ...) so that
// a single node type covers both shapes; the distinction matters when
// serialising and when creating intermediate nodes during Set.
//
// All operations are pure over well-formed trees. Malformed input
// (non-string scalar values) is coerced to a leaf by the treefile
// parser rather than rejected here.
package tree

import "strings"

// Kind describes the shape of a node.
type Kind int

const (
	// Leaf is a string-valued node.
	Leaf Kind = iota
	// Object is a container with insertion-ordered string keys.
	Object
	// Array is a container with numeric-string keys mirroring a JSON array.
	Array
)

// String returns a human-readable shape name, used in diff reports.
func (k Kind) String() string {
	switch k {
	case Leaf:
		return "leaf"
	case Object:
		return "object"
	case Array:
		return "array"
	}
	return "unknown"
}

// Node is a single node of a translation tree.
type Node struct {
	kind     Kind
	value    string
	keys     []string
	children map[string]*Node
}

// NewLeaf creates a string leaf node.
func NewLeaf(value string) *Node {
	return &Node{kind: Leaf, value: value}
}

// NewObject creates an empty mapping container.
func NewObject() *Node {
	return &Node{kind: Object, children: make(map[string]*Node)}
}

// NewArray creates an empty array-shaped container.
func NewArray() *Node {
	return &Node{kind: Array, children: make(map[string]*Node)}
}

// Kind returns the node's shape.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsLeaf reports whether the node is a string leaf.
func (n *Node) IsLeaf() bool {
	return n.kind == Leaf
}

// IsContainer reports whether the node is an object or array.
func (n *Node) IsContainer() bool {
	return n.kind == Object || n.kind == Array
}

// Value returns the leaf value. Containers return "".
func (n *Node) Value() string {
	return n.value
}

// Keys returns the container's keys in insertion order.
// Leaves return nil.
func (n *Node) Keys() []string {
	if n.kind == Leaf {
		return nil
	}
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)
	return keys
}

// Len returns the number of direct children. Leaves return 0.
func (n *Node) Len() int {
	return len(n.keys)
}

// Child returns the direct child for key.
func (n *Node) Child(key string) (*Node, bool) {
	if n.children == nil {
		return nil, false
	}
	c, ok := n.children[key]
	return c, ok
}

// SetChild inserts or replaces a direct child. New keys are appended,
// preserving insertion order; existing keys keep their position.
func (n *Node) SetChild(key string, child *Node) {
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	if _, exists := n.children[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.children[key] = child
}

// Clone returns a deep copy of the node.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.kind == Leaf {
		return NewLeaf(n.value)
	}
	out := &Node{kind: n.kind, children: make(map[string]*Node, len(n.keys))}
	out.keys = make([]string, len(n.keys))
	copy(out.keys, n.keys)
	for _, k := range n.keys {
		out.children[k] = Clone(n.children[k])
	}
	return out
}

// ---------------------------------------------------------------------------
// Key paths
// ---------------------------------------------------------------------------

// PathSep is the key path delimiter. Segments must not contain it.
const PathSep = "."

// JoinPath joins a parent path and a key segment.
func JoinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + PathSep + key
}

// SplitPath splits a key path into its segments.
func SplitPath(path string) []string {
	return strings.Split(path, PathSep)
}

// ParentPath returns the path of the node's parent section, or ""
// for a top-level path.
func ParentPath(path string) string {
	idx := strings.LastIndex(path, PathSep)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// LastSegment returns the final segment of a key path.
func LastSegment(path string) string {
	idx := strings.LastIndex(path, PathSep)
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// ---------------------------------------------------------------------------
// Traversal
// ---------------------------------------------------------------------------

// Flatten returns the key paths of all leaves in depth-first,
// insertion order.
func Flatten(n *Node) []string {
	var out []string
	flattenInto(n, "", &out)
	return out
}

func flattenInto(n *Node, prefix string, out *[]string) {
	if n == nil {
		return
	}
	if n.kind == Leaf {
		// A bare leaf root has no addressable path.
		if prefix != "" {
			*out = append(*out, prefix)
		}
		return
	}
	for _, k := range n.keys {
		flattenInto(n.children[k], JoinPath(prefix, k), out)
	}
}

// Get traverses the tree segment by segment. It returns false — not an
// error — when a segment is missing or an intermediate node is a leaf.
func Get(n *Node, path string) (*Node, bool) {
	if n == nil || path == "" {
		return nil, false
	}
	cur := n
	for _, seg := range SplitPath(path) {
		if cur.kind == Leaf {
			return nil, false
		}
		next, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// GetString returns the leaf value at path, or false when the path is
// absent or resolves to a container.
func GetString(n *Node, path string) (string, bool) {
	node, ok := Get(n, path)
	if !ok || node.kind != Leaf {
		return "", false
	}
	return node.value, true
}

// Set writes a leaf value at path, creating intermediate containers as
// needed. When ref is non-nil, each newly created intermediate copies
// its shape (array vs mapping) from ref at the same path; without a
// reference, new intermediates default to mappings. An intermediate
// that exists as a leaf is replaced by a container so the write always
// lands.
//
// Shape copying exists because arrays and mappings are
// indistinguishable once empty: naive creation would silently turn
// array placeholders into mappings and break array-shaped data.
func Set(n *Node, path, value string, ref *Node) {
	if n == nil || path == "" {
		return
	}
	segs := SplitPath(path)
	cur := n
	for i, seg := range segs[:len(segs)-1] {
		next, ok := cur.Child(seg)
		if !ok || next.kind == Leaf {
			next = newIntermediate(ref, segs[:i+1])
			cur.SetChild(seg, next)
		}
		cur = next
	}
	cur.SetChild(segs[len(segs)-1], NewLeaf(value))
}

// newIntermediate creates a container whose shape is taken from ref at
// the given path, defaulting to a mapping.
func newIntermediate(ref *Node, segs []string) *Node {
	if ref != nil {
		if node, ok := Get(ref, strings.Join(segs, PathSep)); ok && node.kind == Array {
			return NewArray()
		}
	}
	return NewObject()
}

// CountLeaves returns the number of string leaves in the tree.
func CountLeaves(n *Node) int {
	if n == nil {
		return 0
	}
	if n.kind == Leaf {
		return 1
	}
	total := 0
	for _, k := range n.keys {
		total += CountLeaves(n.children[k])
	}
	return total
}
