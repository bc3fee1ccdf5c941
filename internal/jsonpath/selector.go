package jsonpath

// SelectorKind discriminates one step of a compiled JSONPath expression.
type SelectorKind int

const (
	SelRoot SelectorKind = iota
	SelIdentifier
	SelIndex
	SelWildcard
	SelRecursiveDescent
	SelUnion
	SelSlice
)

// UnionItem is one member of a `[a, b, 'c']` union selector: either a
// zero-based array index or an object member name.
type UnionItem struct {
	IsName bool
	Name   string
	Index  int
}

// SliceBounds holds the (possibly partial) start:end:step of a `[::]` slice
// selector, following Python slice semantics: an absent field means "use the
// default for this direction", and a negative index counts from the end.
type SliceBounds struct {
	HasStart bool
	Start    int
	HasEnd   bool
	End      int
	HasStep  bool
	Step     int
}

// Selector is one node of a singly linked chain compiled from a JSONPath
// expression: Next is nil at the chain's last step. A chain always begins
// with a SelRoot node.
type Selector struct {
	Kind  SelectorKind
	Name  string      // SelIdentifier
	Index int         // SelIndex
	Items []UnionItem // SelUnion
	Slice SliceBounds // SelSlice
	Next  *Selector
}

// appendSelector walks to the tail of chain and links next after it,
// returning the (unchanged) chain head.
func appendSelector(chain, next *Selector) *Selector {
	if chain == nil {
		return next
	}
	tail := chain
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = next
	return chain
}
