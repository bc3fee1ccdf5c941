// Package diffengine computes an RFC 6902 patch array transforming a source
// value.Value into a target value.Value.
package diffengine

import (
	"math"
	"sort"
	"strconv"

	"github.com/agentflare-ai/go-jsoncons/internal/compare"
	"github.com/agentflare-ai/go-jsoncons/internal/patchengine"
	"github.com/agentflare-ai/go-jsoncons/internal/pointer"
	"github.com/agentflare-ai/go-jsoncons/internal/value"
)

// Options configures the Diff Engine's array strategy.
type Options struct {
	// Compact switches the array diff from the spec's plain prefix-diff
	// (§4.5: recurse on the common prefix, remove the tail descending,
	// add the new tail ascending) to an LCS-based edit script that can
	// emit a materially shorter patch at the cost of not preserving the
	// prefix-recursion shape. The round-trip and remove-descending
	// invariants (spec.md §8, laws 3 and 8) hold under both strategies.
	Compact bool
}

// Diff returns the patch produced by the spec-exact algorithm (Options{}).
func Diff(source, target value.Value) (patchengine.Patch, error) {
	return DiffWithOptions(source, target, Options{})
}

// DiffWithOptions returns the patch produced by the requested array
// strategy.
func DiffWithOptions(source, target value.Value, opts Options) (patchengine.Patch, error) {
	return diffValue("", source, target, opts)
}

func diffValue(path string, a, b value.Value, opts Options) (patchengine.Patch, error) {
	eq, err := compare.EqualStrict(a, b)
	if err != nil {
		// Incomparable numbers: fall through to a replace, matching the
		// comparator's own top-level Equal() treatment of the failure.
		eq = false
	}
	if eq {
		return nil, nil
	}

	if a.Kind() == value.Array && b.Kind() == value.Array {
		if opts.Compact {
			return diffArrayCompact(path, a, b)
		}
		return diffArrayPrefix(path, a, b, opts)
	}
	if a.Kind() == value.Object && b.Kind() == value.Object {
		return diffObject(path, a, b, opts)
	}
	return patchengine.Patch{{Op: patchengine.Replace, Path: path, Value: b.ToAny()}}, nil
}

func joinPath(base, token string) string {
	return base + "/" + pointer.Escape(token)
}

// diffArrayPrefix implements spec.md §4.5 verbatim: recurse over the common
// prefix, then remove the source's surplus tail in descending index order,
// then append the target's extra tail in ascending index order.
func diffArrayPrefix(path string, a, b value.Value, opts Options) (patchengine.Patch, error) {
	ai, bi := a.ArrayItems(), b.ArrayItems()
	c := len(ai)
	if len(bi) < c {
		c = len(bi)
	}

	var out patchengine.Patch
	for i := 0; i < c; i++ {
		child, err := diffValue(joinPath(path, strconv.Itoa(i)), ai[i], bi[i], opts)
		if err != nil {
			return nil, err
		}
		out = append(out, child...)
	}
	for i := len(ai) - 1; i >= len(bi); i-- {
		out = append(out, patchengine.Operation{Op: patchengine.Remove, Path: joinPath(path, strconv.Itoa(i))})
	}
	for i := len(ai); i < len(bi); i++ {
		out = append(out, patchengine.Operation{Op: patchengine.Add, Path: joinPath(path, strconv.Itoa(i)), Value: bi[i].ToAny()})
	}
	return out, nil
}

// diffObject implements spec.md §4.5: iterate source members in document
// order emitting recurse-or-remove, then iterate target members in document
// order emitting add for anything source lacked.
func diffObject(path string, a, b value.Value, opts Options) (patchengine.Patch, error) {
	var out patchengine.Patch
	am, bm := a.ObjectMembers(), b.ObjectMembers()

	for _, ma := range am {
		bv, exists := firstByName(bm, ma.Name)
		if !exists.found {
			out = append(out, patchengine.Operation{Op: patchengine.Remove, Path: joinPath(path, ma.Name)})
			continue
		}
		child, err := diffValue(joinPath(path, ma.Name), ma.Value, bv, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, child...)
	}
	for _, mb := range bm {
		if r := firstIndexByName(am, mb.Name); r < 0 {
			out = append(out, patchengine.Operation{Op: patchengine.Add, Path: joinPath(path, mb.Name), Value: mb.Value.ToAny()})
		}
	}
	return out, nil
}

type lookupResult struct{ found bool }

func firstByName(members []value.Member, name string) (value.Value, lookupResult) {
	for _, m := range members {
		if m.Name == name {
			return m.Value, lookupResult{found: true}
		}
	}
	return value.Value{}, lookupResult{}
}

func firstIndexByName(members []value.Member, name string) int {
	for i, m := range members {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// diffArrayCompact emits an LCS-based edit script over tokenized elements,
// grounded in the teacher's New()/diffArray: removes in descending index
// order followed by adds in ascending index order, but with a possibly much
// shorter edit set when elements merely shifted position.
func diffArrayCompact(path string, a, b value.Value) (patchengine.Patch, error) {
	ai, bi := a.ArrayItems(), b.ArrayItems()
	atoks := tokenize(ai)
	btoks := tokenize(bi)

	posMap := make(map[string][]int, len(atoks))
	for i, t := range atoks {
		posMap[t] = append(posMap[t], i)
	}
	type pair struct{ ai, bj int }
	var pairs []pair
	var seq []int
	for j, t := range btoks {
		q := posMap[t]
		if len(q) == 0 {
			continue
		}
		pairs = append(pairs, pair{ai: q[0], bj: j})
		seq = append(seq, q[0])
		posMap[t] = q[1:]
	}

	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for i := range prev {
		prev[i] = -1
	}
	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	keepA := make([]bool, len(ai))
	keepB := make([]bool, len(bi))
	if len(tails) > 0 {
		p := tails[len(tails)-1]
		for p >= 0 {
			keepA[pairs[p].ai] = true
			keepB[pairs[p].bj] = true
			p = prev[p]
		}
	}

	var out patchengine.Patch
	for i := len(ai) - 1; i >= 0; i-- {
		if !keepA[i] {
			out = append(out, patchengine.Operation{Op: patchengine.Remove, Path: joinPath(path, strconv.Itoa(i))})
		}
	}
	for j := 0; j < len(bi); j++ {
		if !keepB[j] {
			out = append(out, patchengine.Operation{Op: patchengine.Add, Path: joinPath(path, strconv.Itoa(j)), Value: bi[j].ToAny()})
		}
	}
	return out, nil
}

func tokenize(items []value.Value) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = tokenOf(v)
	}
	return out
}

// tokenOf produces a stable string key for LCS matching: structurally equal
// values (per compare.Equal) must produce identical tokens.
func tokenOf(v value.Value) string {
	switch v.Kind() {
	case value.Null:
		return "z"
	case value.True:
		return "t"
	case value.False:
		return "f"
	case value.String:
		return "s:" + strconv.Quote(v.AsString())
	case value.Number:
		if d, ok := v.TryDecimal(); ok {
			return "n:" + d.String()
		}
		if f, ok := v.TryDouble(); ok {
			if f == 0 {
				f = 0 // normalize -0
			}
			return "d:" + strconv.FormatUint(math.Float64bits(f), 16)
		}
		return "l:" + strconv.Quote(v.NumberLexeme())
	default:
		// Arrays/objects: a canonical rendering with quoted strings and
		// member names, so equal tokens mean structurally equal values.
		// Equal values can still get different tokens (duplicate names in
		// another order), which only costs LCS quality, never correctness.
		return "j:" + canonical(v)
	}
}

func canonical(v value.Value) string {
	switch v.Kind() {
	case value.Array:
		s := "["
		for i, e := range v.ArrayItems() {
			if i > 0 {
				s += ","
			}
			s += canonical(e)
		}
		return s + "]"
	case value.Object:
		members := append([]value.Member(nil), v.ObjectMembers()...)
		sort.SliceStable(members, func(i, j int) bool { return members[i].Name < members[j].Name })
		s := "{"
		for i, m := range members {
			if i > 0 {
				s += ","
			}
			s += strconv.Quote(m.Name) + ":" + canonical(m.Value)
		}
		return s + "}"
	default:
		return tokenOf(v)
	}
}
