package jsoncons

import (
	"fmt"

	"github.com/agentflare-ai/go-jsoncons/internal/compare"
	"github.com/agentflare-ai/go-jsoncons/internal/value"
)

// CompareError reports that two Documents' Number values could not be
// compared via a shared decimal or double representation.
type CompareError = compare.CompareError

// Equal reports structural equality between a and b. Number operands that
// cannot be compared (see CompareError) are treated as unequal; use Compare
// to observe the failure.
func Equal(a, b Document) bool {
	av, aerr := value.FromAny(a.Raw())
	bv, berr := value.FromAny(b.Raw())
	if aerr != nil || berr != nil {
		return false
	}
	return compare.Equal(av, bv)
}

// Compare implements the JsonElementComparer total order:
// Undefined < Object < Array < String < Number < True < False < Null.
// It returns a negative number, 0, or a positive number for a < b, a == b,
// or a > b respectively.
func Compare(a, b Document) (int, error) {
	av, err := value.FromAny(a.Raw())
	if err != nil {
		return 0, fmt.Errorf("jsoncons: invalid left operand: %w", err)
	}
	bv, err := value.FromAny(b.Raw())
	if err != nil {
		return 0, fmt.Errorf("jsoncons: invalid right operand: %w", err)
	}
	return compare.Compare(av, bv)
}
