// Package compare implements structural equality and the JsonElementComparer
// total order over read-only value.Value trees.
package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/agentflare-ai/go-jsoncons/internal/value"
)

// CompareError reports that two Number values could not be compared because
// neither shares a decimal nor a double representation, or that a Value of
// unknown Kind was encountered. It always wraps a cause via pkg/errors so
// %+v on the returned error prints a stack trace to the offending call.
type CompareError struct {
	AKind value.Kind
	BKind value.Kind
	cause error
}

func (e *CompareError) Error() string {
	return fmt.Sprintf("compare: cannot compare %s and %s: %v", e.AKind, e.BKind, e.cause)
}

func (e *CompareError) Unwrap() error { return e.cause }

func newCompareError(a, b value.Value, msg string) *CompareError {
	return &CompareError{AKind: a.Kind(), BKind: b.Kind(), cause: errors.New(msg)}
}

// compareNumbers implements the shared decimal-then-double promotion rule
// used by both Equal and Compare.
func compareNumbers(a, b value.Value) (int, error) {
	da, aok := a.TryDecimal()
	db, bok := b.TryDecimal()
	if aok && bok {
		return da.Cmp(db), nil
	}
	fa, aok := a.TryDouble()
	fb, bok := b.TryDouble()
	if aok && bok {
		switch {
		case fa < fb:
			return -1, nil
		case fa > fb:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, errors.WithStack(newCompareError(a, b, "neither operand has a shared decimal or double representation"))
}

// Equal reports structural equality per spec §4.1. Values whose Number
// members cannot be compared via decimal or double are treated as unequal
// rather than propagating an error; use EqualStrict to observe the failure.
func Equal(a, b value.Value) bool {
	eq, err := EqualStrict(a, b)
	if err != nil {
		return false
	}
	return eq
}

// EqualStrict reports structural equality, surfacing a CompareError when two
// Number operands cannot be compared at all.
func EqualStrict(a, b value.Value) (bool, error) {
	if a.Kind() != b.Kind() {
		return false, nil
	}
	switch a.Kind() {
	case value.Null, value.True, value.False, value.Undefined:
		return true, nil
	case value.String:
		return a.AsString() == b.AsString(), nil
	case value.Number:
		c, err := compareNumbers(a, b)
		if err != nil {
			return false, err
		}
		return c == 0, nil
	case value.Array:
		ai, bi := a.ArrayItems(), b.ArrayItems()
		if len(ai) != len(bi) {
			return false, nil
		}
		for i := range ai {
			eq, err := EqualStrict(ai[i], bi[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	case value.Object:
		return equalObjects(a, b)
	default:
		return false, errors.WithStack(newCompareError(a, b, "unknown kind"))
	}
}

// equalObjects implements multiset equality of (name, value) pairs: duplicate
// names are matched by count, using an index per name to pair members
// regardless of order.
func equalObjects(a, b value.Value) (bool, error) {
	am, bm := a.ObjectMembers(), b.ObjectMembers()
	if len(am) != len(bm) {
		return false, nil
	}
	used := make([]bool, len(bm))
	for _, ma := range am {
		found := false
		for j, mb := range bm {
			if used[j] || ma.Name != mb.Name {
				continue
			}
			eq, err := EqualStrict(ma.Value, mb.Value)
			if err != nil {
				return false, err
			}
			if eq {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	return true, nil
}

// kindRank implements the comparator's kind ordering:
// Undefined < Object < Array < String < Number < True < False < Null.
func kindRank(k value.Kind) int {
	switch k {
	case value.Undefined:
		return 0
	case value.Object:
		return 1
	case value.Array:
		return 2
	case value.String:
		return 3
	case value.Number:
		return 4
	case value.True:
		return 5
	case value.False:
		return 6
	case value.Null:
		return 7
	default:
		return -1
	}
}

// Compare implements JsonElementComparer's total order. It returns a negative
// number, 0, or a positive number to indicate a < b, a == b, or a > b.
func Compare(a, b value.Value) (int, error) {
	ra, rb := kindRank(a.Kind()), kindRank(b.Kind())
	if ra < 0 {
		return 0, errors.WithStack(newCompareError(a, b, "unknown kind"))
	}
	if rb < 0 {
		return 0, errors.WithStack(newCompareError(a, b, "unknown kind"))
	}
	if ra != rb {
		return ra - rb, nil
	}
	switch a.Kind() {
	case value.Null, value.True, value.False, value.Undefined:
		return 0, nil
	case value.Number:
		return compareNumbers(a, b)
	case value.String:
		return strings.Compare(a.AsString(), b.AsString()), nil
	case value.Array:
		return compareArrays(a, b)
	case value.Object:
		return compareObjects(a, b)
	default:
		return 0, errors.WithStack(newCompareError(a, b, "unknown kind"))
	}
}

func compareArrays(a, b value.Value) (int, error) {
	ai, bi := a.ArrayItems(), b.ArrayItems()
	n := len(ai)
	if len(bi) < n {
		n = len(bi)
	}
	for i := 0; i < n; i++ {
		c, err := Compare(ai[i], bi[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return len(ai) - len(bi), nil
}

// compareObjects sorts each operand's members by name (stable, ordinal) then
// compares pairwise by name, then by value; the shorter side is less on a
// prefix tie.
func compareObjects(a, b value.Value) (int, error) {
	am := append([]value.Member(nil), a.ObjectMembers()...)
	bm := append([]value.Member(nil), b.ObjectMembers()...)
	sort.SliceStable(am, func(i, j int) bool { return am[i].Name < am[j].Name })
	sort.SliceStable(bm, func(i, j int) bool { return bm[i].Name < bm[j].Name })

	n := len(am)
	if len(bm) < n {
		n = len(bm)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(am[i].Name, bm[i].Name); c != 0 {
			return c, nil
		}
		c, err := Compare(am[i].Value, bm[i].Value)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return len(am) - len(bm), nil
}
