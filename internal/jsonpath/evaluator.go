package jsonpath

import (
	"fmt"
	"sort"

	"github.com/agentflare-ai/go-jsoncons/internal/value"
)

// Options bitflags select which accumulator behavior Select/SelectPaths/
// SelectNodes apply to the raw selector-chain output.
type Options uint8

const (
	// OptPath requests that callers receive NormalizedPath alongside each
	// value; Select/SelectNodes always compute paths internally; this flag
	// only documents intent at call sites that don't need SelectPaths.
	OptPath Options = 1 << iota
	// OptNoDups removes nodes whose NormalizedPath repeats an earlier one
	// (possible once a union or recursive-descent selector can revisit a
	// node two different ways).
	OptNoDups
	// OptSort reorders the result by NormalizedPath.Compare.
	OptSort
)

// Node pairs a located value with the NormalizedPath that reaches it.
type Node struct {
	Path  NormalizedPath
	Value value.Value
}

// Select evaluates chain against root and returns the matched values.
func Select(chain *Selector, root value.Value, opts Options) ([]value.Value, error) {
	nodes, err := SelectNodes(chain, root, opts)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(nodes))
	for i, n := range nodes {
		out[i] = n.Value
	}
	return out, nil
}

// SelectPaths evaluates chain against root and returns the NormalizedPath of
// each match.
func SelectPaths(chain *Selector, root value.Value, opts Options) ([]NormalizedPath, error) {
	nodes, err := SelectNodes(chain, root, opts)
	if err != nil {
		return nil, err
	}
	out := make([]NormalizedPath, len(nodes))
	for i, n := range nodes {
		out[i] = n.Path
	}
	return out, nil
}

// SelectNodes evaluates chain against root and returns matched (path, value)
// pairs, in document order unless OptSort is set.
func SelectNodes(chain *Selector, root value.Value, opts Options) ([]Node, error) {
	nodes, err := evaluate(chain, root)
	if err != nil {
		return nil, err
	}
	return applyOptions(nodes, opts), nil
}

// TrySelectSingle walks path against root one component at a time, without
// compiling or evaluating a selector chain. It fails at the first mismatch:
// a NameComponent requires the current value to be an Object with that
// property, an IndexComponent requires an Array with that index in range.
func TrySelectSingle(root value.Value, path NormalizedPath) (value.Value, bool) {
	cur := root
	for _, c := range path {
		switch c.Kind {
		case NameComponent:
			if cur.Kind() != value.Object {
				return value.Value{}, false
			}
			v, ok := cur.Property(c.Name)
			if !ok {
				return value.Value{}, false
			}
			cur = v
		case IndexComponent:
			if cur.Kind() != value.Array {
				return value.Value{}, false
			}
			v, ok := cur.Index(c.Index)
			if !ok {
				return value.Value{}, false
			}
			cur = v
		}
	}
	return cur, true
}

func evaluate(chain *Selector, root value.Value) ([]Node, error) {
	cur := []Node{{Value: root}}
	sel := chain
	if sel != nil && sel.Kind == SelRoot {
		sel = sel.Next
	}
	for sel != nil {
		next, err := descend(sel, cur)
		if err != nil {
			return nil, err
		}
		cur = next
		sel = sel.Next
	}
	return cur, nil
}

func descend(sel *Selector, nodes []Node) ([]Node, error) {
	switch sel.Kind {
	case SelIdentifier:
		var out []Node
		for _, n := range nodes {
			if n.Value.Kind() != value.Object {
				continue
			}
			if v, ok := n.Value.Property(sel.Name); ok {
				out = append(out, Node{Path: n.Path.withName(sel.Name), Value: v})
			}
		}
		return out, nil
	case SelWildcard:
		var out []Node
		for _, n := range nodes {
			appendChildren(n, &out)
		}
		return out, nil
	case SelIndex:
		var out []Node
		for _, n := range nodes {
			if n.Value.Kind() != value.Array {
				continue
			}
			idx := normalizeIndex(sel.Index, n.Value.Len())
			if v, ok := n.Value.Index(idx); ok {
				out = append(out, Node{Path: n.Path.withIndex(idx), Value: v})
			}
		}
		return out, nil
	case SelUnion:
		var out []Node
		for _, n := range nodes {
			for _, item := range sel.Items {
				if item.IsName {
					if n.Value.Kind() != value.Object {
						continue
					}
					if v, ok := n.Value.Property(item.Name); ok {
						out = append(out, Node{Path: n.Path.withName(item.Name), Value: v})
					}
					continue
				}
				if n.Value.Kind() != value.Array {
					continue
				}
				idx := normalizeIndex(item.Index, n.Value.Len())
				if v, ok := n.Value.Index(idx); ok {
					out = append(out, Node{Path: n.Path.withIndex(idx), Value: v})
				}
			}
		}
		return out, nil
	case SelSlice:
		var out []Node
		for _, n := range nodes {
			if n.Value.Kind() != value.Array {
				continue
			}
			for _, idx := range sliceIndices(sel.Slice, n.Value.Len()) {
				if v, ok := n.Value.Index(idx); ok {
					out = append(out, Node{Path: n.Path.withIndex(idx), Value: v})
				}
			}
		}
		return out, nil
	case SelRecursiveDescent:
		var out []Node
		for _, n := range nodes {
			collectDescendants(n, &out)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("jsonpath: unsupported selector kind %d", sel.Kind)
	}
}

func appendChildren(n Node, out *[]Node) {
	switch n.Value.Kind() {
	case value.Object:
		for _, m := range n.Value.ObjectMembers() {
			*out = append(*out, Node{Path: n.Path.withName(m.Name), Value: m.Value})
		}
	case value.Array:
		for i, v := range n.Value.ArrayItems() {
			*out = append(*out, Node{Path: n.Path.withIndex(i), Value: v})
		}
	}
}

// collectDescendants appends n (the descendant segment includes the node
// itself) followed by every descendant, depth first in document order.
func collectDescendants(n Node, out *[]Node) {
	*out = append(*out, n)
	switch n.Value.Kind() {
	case value.Object:
		for _, m := range n.Value.ObjectMembers() {
			collectDescendants(Node{Path: n.Path.withName(m.Name), Value: m.Value}, out)
		}
	case value.Array:
		for i, v := range n.Value.ArrayItems() {
			collectDescendants(Node{Path: n.Path.withIndex(i), Value: v}, out)
		}
	}
}

func normalizeIndex(i, length int) int {
	if i < 0 {
		return length + i
	}
	return i
}

// sliceIndices reproduces Python-style slice semantics (as RFC 9535 §2.3.4
// specifies): step defaults to 1, start/end default depending on step's
// sign, and negative bounds count from the end before clamping to range.
func sliceIndices(s SliceBounds, length int) []int {
	step := 1
	if s.HasStep {
		step = s.Step
	}
	var out []int
	if step > 0 {
		start := 0
		if s.HasStart {
			start = normalizeIndex(s.Start, length)
		}
		end := length
		if s.HasEnd {
			end = normalizeIndex(s.End, length)
		}
		if start < 0 {
			start = 0
		}
		if end > length {
			end = length
		}
		for i := start; i < end; i += step {
			out = append(out, i)
		}
		return out
	}
	start := length - 1
	if s.HasStart {
		start = normalizeIndex(s.Start, length)
	}
	end := -1
	if s.HasEnd {
		end = normalizeIndex(s.End, length)
	}
	if start > length-1 {
		start = length - 1
	}
	if end < -1 {
		end = -1
	}
	for i := start; i > end; i += step {
		out = append(out, i)
	}
	return out
}

// applyOptions sorts before deduping, matching spec wording: "Sort and
// NoDups may be combined: sort first, then dedupe."
func applyOptions(nodes []Node, opts Options) []Node {
	if opts&OptSort != 0 {
		sorted := append([]Node(nil), nodes...)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path.Compare(sorted[j].Path) < 0 })
		nodes = sorted
	}
	if opts&OptNoDups != 0 {
		nodes = dedupeNodes(nodes)
	}
	return nodes
}

func dedupeNodes(nodes []Node) []Node {
	seen := make(map[string]bool, len(nodes))
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		key := n.Path.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
