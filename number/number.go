// Package number holds composed numeric values and carries out operations
// on them.
//
// Every operation is first resolved by the dispatch package. Only once a
// plan exists is any rep touched: the operands are aligned exactly, the
// result is computed exactly and then fit into the result type using the
// resolved overflow policy. Division rounds with the resolved rounding
// policy.
package number

import (
	"math"
	"math/big"
	"math/bits"
	"strings"

	"github.com/zeebo/errs"
	"golang.org/x/exp/constraints"

	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/dispatch"
	"github.com/calebcase/fixed/integer"
	"github.com/calebcase/fixed/scale"
	"github.com/calebcase/fixed/shape"
	"github.com/calebcase/fixed/traits"
)

// Error is the error class for this package.
var Error = errs.Class("number")

// Run time failure classes.
var (
	DivideByZero         = errs.Class("division by zero")
	QuotientPrecondition = errs.Class("quotient precondition")
)

// Number is a rep interpreted through a shape. Numbers are immutable.
type Number struct {
	shape shape.Shape
	rep   integer.Int
}

// New returns the number with the raw rep in s.
func New(s shape.Shape, rep integer.Int) (x Number, err error) {
	err = s.Validate()
	if err != nil {
		return Number{}, Error.Wrap(err)
	}

	if !s.Rep.Contains(rep) {
		return Number{}, Error.New("rep %s out of range for %s", rep, s)
	}

	return Number{shape: s, rep: rep}, nil
}

// From returns the integer v converted to s.
func From(s shape.Shape, v integer.Int) (x Number, err error) {
	return exact(v).Convert(s)
}

// FromInt64 returns v converted to s.
func FromInt64(s shape.Shape, v int64) (x Number, err error) {
	return From(s, integer.New(v))
}

// FromBig returns v converted to s.
func FromBig(s shape.Shape, v *big.Int) (x Number, err error) {
	return From(s, integer.FromBig(v))
}

// FromNative returns v as a number of its own native type.
func FromNative[T constraints.Integer](v T) Number {
	s := shape.Of[T]()

	if s.Rep.Signed {
		return Number{shape: s, rep: integer.New(int64(v))}
	}

	return Number{shape: s, rep: integer.FromUint64(uint64(v))}
}

// FromRat returns v converted to s, rounding per the rounding policy of s.
func FromRat(s shape.Shape, v *big.Rat) (x Number, err error) {
	err = s.Validate()
	if err != nil {
		return Number{}, Error.Wrap(err)
	}

	t, ok := s.Scale()
	if !ok {
		t = scale.Binary(0)
	}

	num := integer.FromBig(v.Num())
	den := integer.FromBig(v.Denom())

	if t.Exponent >= 0 {
		den = den.Mul(scale.Pow(t.Radix, t.Exponent))
	} else {
		num = num.Mul(scale.Pow(t.Radix, -t.Exponent))
	}

	r, o := dispatch.Policies(s, s)

	rep, err := convert.Reduce(num, den, r)
	if err != nil {
		return Number{}, Error.Wrap(err)
	}

	return fit(s, rep, o)
}

// FromFloat64 returns f converted to s, rounding per the rounding policy of
// s.
func FromFloat64(s shape.Shape, f float64) (x Number, err error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, Error.New("not a finite number: %v", f)
	}

	return FromRat(s, new(big.Rat).SetFloat64(f))
}

// exact returns v in an elastic shape just wide enough to hold it.
func exact(v integer.Int) Number {
	return Number{
		shape: shape.Shape{Rep: traits.Fits(v), Elastic: true},
		rep:   v,
	}
}

func fit(s shape.Shape, v integer.Int, o convert.Overflow) (x Number, err error) {
	v, err = convert.Fit(v, s.Rep, o)
	if err != nil {
		return Number{}, Error.Wrap(err)
	}

	return Number{shape: s, rep: v}, nil
}

// Shape returns the type of x.
func (x Number) Shape() shape.Shape {
	return x.shape
}

// Rep returns the raw rep of x.
func (x Number) Rep() integer.Int {
	return x.rep
}

// Sign returns -1, 0 or +1.
func (x Number) Sign() int {
	return x.rep.Sign()
}

// Rat returns the exact value of x.
func (x Number) Rat() *big.Rat {
	t, ok := x.shape.Scale()
	if !ok || t.Exponent == 0 {
		return new(big.Rat).SetInt(x.rep.Big())
	}

	if t.Exponent > 0 {
		return new(big.Rat).SetInt(x.rep.Mul(scale.Pow(t.Radix, t.Exponent)).Big())
	}

	return new(big.Rat).SetFrac(x.rep.Big(), scale.Pow(t.Radix, -t.Exponent).Big())
}

// Float64 returns the nearest float64 to x.
func (x Number) Float64() float64 {
	f, _ := x.Rat().Float64()

	return f
}

// Convert returns x as a value of type to. Precision is discarded with the
// rounding policy of to, else that of x, else native rounding. The rounded
// value is then fit with the overflow policy chosen the same way.
func (x Number) Convert(to shape.Shape) (y Number, err error) {
	err = to.Validate()
	if err != nil {
		return Number{}, Error.Wrap(err)
	}

	from, target := scales(x.shape, to)
	r, o := dispatch.Policies(x.shape, to)

	v, err := convert.Rescale(x.rep, from, target, r)
	if err != nil {
		return Number{}, Error.Wrap(err)
	}

	return fit(to, v, o)
}

// scales returns the scales of a and b. A shape without a scale is scaled
// by 0 in the radix of the other, or radix 2.
func scales(a, b shape.Shape) (at, bt scale.Tag) {
	at, aok := a.Scale()
	bt, bok := b.Scale()

	switch {
	case !aok && !bok:
		return scale.Binary(0), scale.Binary(0)
	case !aok:
		return bt.WithExponent(0), bt
	case !bok:
		return at, at.WithExponent(0)
	}

	return at, bt
}

func (x Number) String() string {
	t, ok := x.shape.Scale()
	if !ok || t.Exponent >= 0 {
		return x.Rat().Num().String()
	}

	// Enough decimal places for radices whose only prime factors are 2 and
	// 5.
	places := -t.Exponent * bits.Len(uint(t.Radix-1))

	s := x.Rat().FloatString(places)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")

	return s
}
