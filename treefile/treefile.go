// Package treefile implements reading and writing of translation tree
// JSON files.
//
// The expected file format is a nested JSON object with string leaf
// values; arrays of objects are supported and their shape is preserved:
//
//	{
//	    "title": "Getting started",
//	    "intro": {
//	        "description": "See the [guide] for details.",
//	        "links": [
//	            { "text": "guide", "href": "https://example.org/guide" }
//	        ]
//	    }
//	}
//
// Key order is preserved on round-trip. Non-string scalar values
// (numbers, booleans, null) are tolerated and coerced to string leaves
// so heterogeneous real-world files do not abort a run.
package treefile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minios-linux/loctree/tree"
)

// ParseFile reads and parses a translation tree JSON file.
// A missing file surfaces the underlying os error so callers can test
// it with os.IsNotExist.
func ParseFile(path string) (*tree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, nil
}

// Parse parses JSON data into a tree, preserving key order via
// json.Decoder tokens.
func Parse(data []byte) (*tree.Node, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()

	t, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	delim, ok := t.(json.Delim)
	if !ok || delim != '{' {
		return nil, fmt.Errorf("expected top-level object, got %v", t)
	}

	root, err := parseObject(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected trailing content after top-level object")
	}
	return root, nil
}

// parseObject consumes members up to and including the closing brace.
func parseObject(dec *json.Decoder) (*tree.Node, error) {
	node := tree.NewObject()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}
		child, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		node.SetChild(key, child)
	}
	if _, err := dec.Token(); err != nil { // closing }
		return nil, err
	}
	return node, nil
}

// parseArray consumes elements up to and including the closing bracket.
func parseArray(dec *json.Decoder) (*tree.Node, error) {
	node := tree.NewArray()
	idx := 0
	for dec.More() {
		child, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", idx, err)
		}
		node.SetChild(strconv.Itoa(idx), child)
		idx++
	}
	if _, err := dec.Token(); err != nil { // closing ]
		return nil, err
	}
	return node, nil
}

func parseValue(dec *json.Decoder) (*tree.Node, error) {
	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := t.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", v)
	case string:
		return tree.NewLeaf(v), nil
	case json.Number:
		// Coerce non-string scalars to leaves (tolerant policy).
		return tree.NewLeaf(v.String()), nil
	case bool:
		return tree.NewLeaf(strconv.FormatBool(v)), nil
	case nil:
		return tree.NewLeaf(""), nil
	}
	return nil, fmt.Errorf("unexpected token %v", t)
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

const indentStep = "    "

// Marshal serialises the tree to JSON with 4-space indentation,
// emitting keys in tree order and array-shaped nodes as JSON arrays.
func Marshal(root *tree.Node) ([]byte, error) {
	if root == nil || !root.IsContainer() {
		return nil, fmt.Errorf("tree root must be a container")
	}
	var b strings.Builder
	writeNode(&b, root, "")
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func writeNode(b *strings.Builder, n *tree.Node, indent string) {
	switch n.Kind() {
	case tree.Leaf:
		b.WriteString(jsonString(n.Value()))
	case tree.Object:
		keys := n.Keys()
		if len(keys) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		inner := indent + indentStep
		for i, k := range keys {
			child, _ := n.Child(k)
			b.WriteString(inner)
			b.WriteString(jsonString(k))
			b.WriteString(": ")
			writeNode(b, child, inner)
			if i < len(keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteByte('}')
	case tree.Array:
		keys := n.Keys()
		if len(keys) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		inner := indent + indentStep
		for i, k := range keys {
			child, _ := n.Child(k)
			b.WriteString(inner)
			writeNode(b, child, inner)
			if i < len(keys)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(indent)
		b.WriteByte(']')
	}
}

// jsonString returns a JSON-encoded string value. strconv.Quote is not
// usable here: Go literal escapes like \x01 are invalid JSON.
func jsonString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

// WriteFile serialises the tree and writes it to path, creating parent
// directories as needed.
func WriteFile(path string, root *tree.Node) error {
	data, err := Marshal(root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
