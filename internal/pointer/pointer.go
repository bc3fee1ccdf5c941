// Package pointer implements RFC 6901 JSON Pointer parsing, escaping, and
// navigation/edit primitives over a *value.Builder.
package pointer

import (
	"strconv"
	"strings"

	"github.com/agentflare-ai/go-jsoncons/internal/value"
)

// Pointer is a parsed, decoded sequence of RFC 6901 reference tokens. An
// empty Pointer addresses the document root.
type Pointer []string

// Dash is the special "-" token, valid only as the final token of a write
// target addressing the end of an array.
const Dash = "-"

// Parse decodes a JSON Pointer string into its tokens. The empty string
// denotes the root. Any non-empty pointer must start with '/'.
func Parse(s string) (Pointer, bool) {
	if s == "" {
		return Pointer{}, true
	}
	if s[0] != '/' {
		return nil, false
	}
	parts := strings.Split(s[1:], "/")
	tokens := make(Pointer, len(parts))
	for i, p := range parts {
		tokens[i] = unescapeToken(p)
	}
	return tokens, true
}

// unescapeToken decodes a single reference token: "~1" -> "/" first, then
// "~0" -> "~". A lone "~" not followed by "0" or "1" is passed through
// literally (see DESIGN.md's resolution of spec.md's Open Question).
func unescapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

// Escape encodes a single name as a JSON Pointer reference token: "~" -> "~0"
// then "/" -> "~1". Order matters: escaping "~" first prevents a literal "/"
// from being mistaken for part of an escape sequence.
func Escape(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	return strings.ReplaceAll(name, "/", "~1")
}

// String re-encodes p as a JSON Pointer string.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(Escape(tok))
	}
	return b.String()
}

// IsRoot reports whether p addresses the document root.
func (p Pointer) IsRoot() bool { return len(p) == 0 }

// parseArrayIndex parses a canonical decimal array index: no leading zeros
// except the literal "0" itself. ok is false for "-", negative numbers, or
// any non-canonical lexeme.
func parseArrayIndex(tok string) (idx int, ok bool) {
	if tok == "" {
		return 0, false
	}
	if tok == "0" {
		return 0, true
	}
	if tok[0] == '0' || tok[0] == '-' {
		return 0, false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// TryGet descends p against root and returns the addressed sub-Builder. ok
// is false if any step fails: an Object token that doesn't name a member, an
// Array token that isn't a canonical in-range index (including "-", which is
// never valid for a read), or descending into a scalar.
func TryGet(root *value.Builder, p Pointer) (*value.Builder, bool) {
	cur := root
	for _, tok := range p {
		switch cur.Kind() {
		case value.Object:
			child, ok := cur.ObjectMember(tok)
			if !ok {
				return nil, false
			}
			cur = child
		case value.Array:
			idx, ok := parseArrayIndex(tok)
			if !ok {
				return nil, false
			}
			child, ok := cur.ArrayItem(idx)
			if !ok {
				return nil, false
			}
			cur = child
		default:
			return nil, false
		}
	}
	return cur, true
}

// parent descends all but the last token of p, returning the parent
// container and the final token. ok is false if p is empty (no parent
// exists; caller must special-case the root) or any intermediate step fails.
func parent(root *value.Builder, p Pointer) (container *value.Builder, last string, ok bool) {
	if len(p) == 0 {
		return nil, "", false
	}
	container, ok = TryGet(root, p[:len(p)-1])
	if !ok {
		return nil, "", false
	}
	return container, p[len(p)-1], true
}

// TryAddIfAbsent implements the "add" primitive's insert-without-replace
// half: on an Array it inserts child before index (or appends on "-"); on an
// Object it adds child only if no member already has that name. The root
// target always fails here (a Builder's root always "exists"), deferring to
// TryReplace.
func TryAddIfAbsent(root *value.Builder, p Pointer, child *value.Builder) bool {
	if p.IsRoot() {
		return false
	}
	container, tok, ok := parent(root, p)
	if !ok {
		return false
	}
	switch container.Kind() {
	case value.Array:
		if tok == Dash {
			return container.AddArrayItem(child) == nil
		}
		idx, ok := parseArrayIndex(tok)
		if !ok || idx > container.Len() {
			return false
		}
		return container.InsertArrayItem(idx, child) == nil
	case value.Object:
		if container.HasProperty(tok) {
			return false
		}
		return container.AddProperty(tok, child) == nil
	default:
		return false
	}
}

// TryReplace overwrites the value addressed by p. At the root it always
// succeeds (root is always "present"). Array indices must already be
// in-range ("-" is invalid); Object members must already exist.
func TryReplace(root *value.Builder, p Pointer, child *value.Builder) bool {
	if p.IsRoot() {
		root.ReplaceSelf(child)
		return true
	}
	container, tok, ok := parent(root, p)
	if !ok {
		return false
	}
	switch container.Kind() {
	case value.Array:
		idx, ok := parseArrayIndex(tok)
		if !ok {
			return false
		}
		return container.ReplaceArrayItem(idx, child) == nil
	case value.Object:
		return container.ReplaceProperty(tok, child) == nil
	default:
		return false
	}
}

// TryRemove deletes the value addressed by p. At the root it replaces the
// whole document with Undefined. Array indices must be in-range ("-" is
// invalid); Object members must exist.
func TryRemove(root *value.Builder, p Pointer) bool {
	if p.IsRoot() {
		root.ReplaceSelf(value.NewBuilder(value.Undefined))
		return true
	}
	container, tok, ok := parent(root, p)
	if !ok {
		return false
	}
	switch container.Kind() {
	case value.Array:
		idx, ok := parseArrayIndex(tok)
		if !ok {
			return false
		}
		_, err := container.RemoveArrayItem(idx)
		return err == nil
	case value.Object:
		_, err := container.RemoveProperty(tok)
		return err == nil
	default:
		return false
	}
}
