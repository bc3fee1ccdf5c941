package jsoncons

import (
	"fmt"

	"github.com/agentflare-ai/go-jsoncons/internal/jsonpath"
	"github.com/agentflare-ai/go-jsoncons/internal/value"
)

// Options bitflags select accumulator behavior for Select/SelectPaths/
// SelectNodes. See internal/jsonpath.Options for field-by-field semantics.
type Options = jsonpath.Options

const (
	OptPath   = jsonpath.OptPath
	OptNoDups = jsonpath.OptNoDups
	OptSort   = jsonpath.OptSort
)

// NormalizedPath locates one value by the ordered sequence of object/array
// steps that reach it from the document root.
type NormalizedPath = jsonpath.NormalizedPath

// Node pairs a located Document with the NormalizedPath that reaches it.
type Node struct {
	Path  NormalizedPath
	Value Document
}

// ParseJSONPathError reports where and why a JSONPath expression failed to
// parse. An expression using a filter, comparator, or function call fails at
// its first character outside the supported grammar, and the message names
// that character, not the construct.
type ParseJSONPathError = jsonpath.ParseError

// JSONPath is a compiled JSONPath expression. It is immutable after
// ParseJSONPath and safe for concurrent Select/SelectPaths/SelectNodes calls
// against distinct or read-only-shared Documents.
type JSONPath struct {
	chain *jsonpath.Selector
}

// ParseJSONPath compiles expr. The supported grammar is `$`, `.name`, `.*`,
// `..name`/`..*`/`..[...]`, `['name']`/`["name"]` (including `\uXXXX`
// escapes and surrogate pairs), `[i]`, `[n1,n2,...]` (a union of indices
// and/or quoted names), and `[start:end:step]` (a slice, RFC 9535 §2.3.4
// semantics). Filters, comparators, and function calls are rejected with a
// ParseJSONPathError naming the offending character, not silently dropped.
func ParseJSONPath(expr string) (*JSONPath, error) {
	chain, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &JSONPath{chain: chain}, nil
}

// Select evaluates p against root and returns the matched Documents.
func (p *JSONPath) Select(root Document, opts Options) ([]Document, error) {
	rv, err := value.FromAny(root.Raw())
	if err != nil {
		return nil, fmt.Errorf("jsoncons: invalid root document: %w", err)
	}
	vals, err := jsonpath.Select(p.chain, rv, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Document, len(vals))
	for i, v := range vals {
		out[i] = NewDocument(v.ToAny())
	}
	return out, nil
}

// SelectPaths evaluates p against root and returns the NormalizedPath of
// each match.
func (p *JSONPath) SelectPaths(root Document, opts Options) ([]NormalizedPath, error) {
	rv, err := value.FromAny(root.Raw())
	if err != nil {
		return nil, fmt.Errorf("jsoncons: invalid root document: %w", err)
	}
	return jsonpath.SelectPaths(p.chain, rv, opts)
}

// SelectNodes evaluates p against root and returns matched (path, Document)
// pairs.
func (p *JSONPath) SelectNodes(root Document, opts Options) ([]Node, error) {
	rv, err := value.FromAny(root.Raw())
	if err != nil {
		return nil, fmt.Errorf("jsoncons: invalid root document: %w", err)
	}
	nodes, err := jsonpath.SelectNodes(p.chain, rv, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Node{Path: n.Path, Value: NewDocument(n.Value.ToAny())}
	}
	return out, nil
}

// TrySelectSingle evaluates p against root and, if exactly one path matches,
// fetches that value by walking the NormalizedPath directly against root
// rather than reusing the selector-evaluation result.
func (p *JSONPath) TrySelectSingle(root Document) (Document, bool) {
	rv, err := value.FromAny(root.Raw())
	if err != nil {
		return Document{}, false
	}
	paths, err := jsonpath.SelectPaths(p.chain, rv, 0)
	if err != nil || len(paths) != 1 {
		return Document{}, false
	}
	v, ok := jsonpath.TrySelectSingle(rv, paths[0])
	if !ok {
		return Document{}, false
	}
	return NewDocument(v.ToAny()), true
}
