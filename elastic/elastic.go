// Package elastic sizes the results of arithmetic so that no representable
// pair of operands can overflow them.
package elastic

import (
	"github.com/zeebo/errs"

	"github.com/calebcase/fixed/op"
	"github.com/calebcase/fixed/traits"
)

// Error is the error class for this package.
var Error = errs.Class("elastic")

// Unit is the one digit unsigned operand increment and decrement combine
// with.
var Unit = traits.Rep{Digits: 1, Signed: false}

// Grow returns the traits of the result of k applied to operands with traits
// l and r.
func Grow(k op.Kind, l, r traits.Rep) (out traits.Rep, err error) {
	signed := l.Signed || r.Signed

	switch k {
	case op.Add:
		return traits.Rep{Digits: sum(max(l.Digits, r.Digits), 1), Signed: signed}, nil
	case op.Sub:
		return traits.Rep{Digits: max(l.Digits, r.Digits), Signed: true}, nil
	case op.Mul, op.Quo:
		return traits.Rep{Digits: sum(l.Digits, r.Digits), Signed: signed}, nil
	case op.Div:
		return traits.Rep{Digits: l.Digits, Signed: signed}, nil
	case op.Mod:
		return traits.Rep{Digits: min(l.Digits, r.Digits), Signed: l.Signed}, nil
	case op.Cmp, op.And, op.Or, op.Xor:
		return traits.Rep{Digits: max(l.Digits, r.Digits), Signed: signed}, nil
	case op.Shl, op.Shr:
		return l, nil
	case op.Inc:
		return Grow(op.Add, l, Unit)
	case op.Dec:
		return Grow(op.Sub, l, Unit)
	}

	return traits.Rep{}, Error.New("no growth rule for %s", k)
}

// Storage returns the narrowest native storage for r, falling back to the
// arbitrary-precision backend.
func Storage(r traits.Rep) traits.Kind {
	return r.Storage()
}

// ShiftDigits returns r widened by n digits, as needed to absorb a left
// shift of n bits.
func ShiftDigits(r traits.Rep, n int) traits.Rep {
	if n <= 0 {
		return r
	}

	return r.SetDigits(sum(r.Digits, n))
}

// sum adds digit counts, saturating at traits.Unbounded.
func sum(a, b int) int {
	if a >= traits.Unbounded-b {
		return traits.Unbounded
	}

	return a + b
}
