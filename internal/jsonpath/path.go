package jsonpath

import (
	"strconv"
	"strings"
)

// ComponentKind discriminates a PathComponent: a named object step or an
// indexed array step.
type ComponentKind int

const (
	NameComponent ComponentKind = iota
	IndexComponent
)

// PathComponent is one step of a NormalizedPath: either a named ($ root,
// .name, ..) or an indexed ([i]) step.
type PathComponent struct {
	Kind  ComponentKind
	Name  string
	Index int
}

// NormalizedPath is the ordered sequence of PathComponents locating one
// value, ending at the located leaf's own step (not its parent's, despite
// spec.md's wording choice of "parent step" — the component list runs all
// the way to the leaf so Compare and String are unambiguous).
type NormalizedPath []PathComponent

// String renders p in the conventional `$['name'][0]` normalized-path form.
func (p NormalizedPath) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, c := range p {
		switch c.Kind {
		case NameComponent:
			b.WriteString("['")
			b.WriteString(strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(c.Name))
			b.WriteString("']")
		case IndexComponent:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(c.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Compare orders p and q lexicographically by component kind then by value:
// indexes are always considered less than names at a given depth, matching
// the kind-then-value ordering spec.md §3 requires of NormalizedPath.
func (p NormalizedPath) Compare(q NormalizedPath) int {
	n := len(p)
	if len(q) < n {
		n = len(q)
	}
	for i := 0; i < n; i++ {
		a, b := p[i], q[i]
		if a.Kind != b.Kind {
			if a.Kind == IndexComponent {
				return -1
			}
			return 1
		}
		if a.Kind == IndexComponent {
			if a.Index != b.Index {
				return a.Index - b.Index
			}
			continue
		}
		if a.Name != b.Name {
			if a.Name < b.Name {
				return -1
			}
			return 1
		}
	}
	return len(p) - len(q)
}

func (p NormalizedPath) withName(name string) NormalizedPath {
	out := make(NormalizedPath, len(p)+1)
	copy(out, p)
	out[len(p)] = PathComponent{Kind: NameComponent, Name: name}
	return out
}

func (p NormalizedPath) withIndex(i int) NormalizedPath {
	out := make(NormalizedPath, len(p)+1)
	copy(out, p)
	out[len(p)] = PathComponent{Kind: IndexComponent, Index: i}
	return out
}
