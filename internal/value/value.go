// Package value implements the read-only Value view and the owned mutable
// Builder that the pointer, patch, diff, and jsonpath packages build on.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind discriminates the shape of a Value or Builder node.
type Kind int

const (
	// Undefined never appears in a materialized document. It is the
	// comparator's bottom element and the zero value returned by failed
	// single-value JSONPath lookups.
	Undefined Kind = iota
	Null
	True
	False
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case True:
		return "true"
	case False:
		return "false"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Member is a single (name, value) pair of an Object, in document order.
// Duplicate names are permitted; lookups resolve to the first match.
type Member struct {
	Name  string
	Value Value
}

// Value is a read-only, immutable JSON tree view. The zero Value is Undefined.
type Value struct {
	kind Kind
	str  string   // String payload, or the decimal lexeme for Number
	arr  []Value  // Array payload
	obj  []Member // Object payload, insertion order preserved
}

// NullValue, TrueValue and FalseValue are the three constant-shaped scalars.
var (
	NullValue  = Value{kind: Null}
	TrueValue  = Value{kind: True}
	FalseValue = Value{kind: False}
)

// NewString returns a String value.
func NewString(s string) Value { return Value{kind: String, str: s} }

// NewBool returns True or False.
func NewBool(b bool) Value {
	if b {
		return TrueValue
	}
	return FalseValue
}

// NewNumberFromLexeme returns a Number value that preserves the exact JSON
// number lexeme (e.g. "1.50", "1e10"), as produced by json.Number.
func NewNumberFromLexeme(lexeme string) Value { return Value{kind: Number, str: lexeme} }

// NewNumberFromFloat64 formats f with the shortest round-tripping
// representation and stores that as the Number's lexeme.
func NewNumberFromFloat64(f float64) Value {
	return Value{kind: Number, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NewArray returns an Array value over the given elements (copied by reference;
// Value is itself immutable so no defensive copy is required).
func NewArray(items []Value) Value {
	return Value{kind: Array, arr: items}
}

// NewObject returns an Object value over the given members in document order.
func NewObject(members []Member) Value {
	return Value{kind: Object, obj: members}
}

// Kind reports the discriminant of v.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the string payload; only meaningful when Kind() == String.
func (v Value) AsString() string { return v.str }

// NumberLexeme returns the raw JSON number lexeme; only meaningful when
// Kind() == Number.
func (v Value) NumberLexeme() string { return v.str }

// TryDecimal attempts to interpret the Number as an exact decimal.
// It fails (ok == false) when the lexeme cannot be parsed as a decimal,
// which in practice only happens for lexemes with exponents so large that
// shopspring/decimal refuses to materialize the backing big.Int.
func (v Value) TryDecimal() (d decimal.Decimal, ok bool) {
	if v.kind != Number {
		return decimal.Decimal{}, false
	}
	dec, err := decimal.NewFromString(v.str)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return dec, true
}

// TryDouble attempts to interpret the Number as a float64. It fails when the
// lexeme overflows float64 range (strconv.ErrRange) or is malformed.
func (v Value) TryDouble() (f float64, ok bool) {
	if v.kind != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.str, 64)
	if err != nil {
		return 0, false
	}
	if math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Len returns the number of elements/members for Array/Object, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	default:
		return 0
	}
}

// ArrayItems returns the elements of an Array value in index order.
// Returns nil for non-Array kinds.
func (v Value) ArrayItems() []Value {
	if v.kind != Array {
		return nil
	}
	return v.arr
}

// ObjectMembers returns the (name, value) members of an Object in document
// order. Returns nil for non-Object kinds.
func (v Value) ObjectMembers() []Member {
	if v.kind != Object {
		return nil
	}
	return v.obj
}

// Index returns the i'th array element. ok is false if v is not an Array or
// i is out of range.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Property returns the value of the first member named name. ok is false if
// v is not an Object or no member has that name.
func (v Value) Property(name string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}
	for _, m := range v.obj {
		if m.Name == name {
			return m.Value, true
		}
	}
	return Value{}, false
}

// FromAny converts a host JSON tree (the shapes produced by encoding/json:
// map[string]any, []any, string, bool, nil, float64, json.Number, and also
// float32, int, int64 and uint64 for caller convenience) into an owned
// Value tree. Any other Go type is rejected with an error.
func FromAny(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return NullValue, nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumberFromLexeme(string(t)), nil
	case float64:
		return NewNumberFromFloat64(t), nil
	case float32:
		return NewNumberFromFloat64(float64(t)), nil
	case int:
		return NewNumberFromLexeme(strconv.Itoa(t)), nil
	case int64:
		return NewNumberFromLexeme(strconv.FormatInt(t, 10)), nil
	case uint64:
		return NewNumberFromLexeme(strconv.FormatUint(t, 10)), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			cv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = cv
		}
		return NewArray(items), nil
	case map[string]any:
		// encoding/json decodes objects unordered (Go maps have no order);
		// we fall back to sorted-by-name for determinism, matching the
		// common "object member order is not guaranteed when the source was
		// a Go map" caveat documented by most map[string]any-based JSON libs.
		members := make([]Member, 0, len(t))
		for k, v := range t {
			cv, err := FromAny(v)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Name: k, Value: cv})
		}
		sortMembersByName(members)
		return NewObject(members), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported Go type %T", in)
	}
}

func sortMembersByName(members []Member) {
	for i := 1; i < len(members); i++ {
		for j := i; j > 0 && members[j-1].Name > members[j].Name; j-- {
			members[j-1], members[j] = members[j], members[j-1]
		}
	}
}

// ToAny converts v back into the host's `any` shape (map[string]any,
// []any, string, bool, nil, float64), the materialized-document form
// consumed by encoding/json.
func (v Value) ToAny() any {
	switch v.kind {
	case Undefined, Null:
		return nil
	case True:
		return true
	case False:
		return false
	case Number:
		f, ok := v.TryDouble()
		if !ok {
			// Overflowed float64: fall back to the raw lexeme via json.Number
			// so callers at least retain the original digits.
			return json.Number(v.str)
		}
		return f
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.ToAny()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.obj))
		for _, m := range v.obj {
			out[m.Name] = m.Value.ToAny()
		}
		return out
	default:
		return nil
	}
}
