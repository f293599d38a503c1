package fixed

import (
	"github.com/zeebo/errs"
	"golang.org/x/exp/constraints"

	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/scale"
	"github.com/calebcase/fixed/shape"
)

// Error is the error class for this package.
var Error = errs.Class("fixed")

// ElasticInteger returns the shape of an integer holding digits digits that
// grows as needed by arithmetic.
func ElasticInteger(digits int, signed bool) shape.Shape {
	return shape.ElasticOf(digits, signed)
}

// ScaledInteger returns rep scaled by radix^exponent.
func ScaledInteger(rep shape.Shape, exponent, radix int) (s shape.Shape, err error) {
	t, err := scale.New(exponent, radix)
	if err != nil {
		return s, Error.Wrap(err)
	}

	if _, ok := rep.Scale(); ok {
		return s, Error.New("%s is already scaled", rep)
	}

	return rep.Wrap(t), nil
}

// OverflowInteger returns rep with the overflow policy o.
func OverflowInteger(rep shape.Shape, o convert.Overflow) shape.Shape {
	return rep.Replace(o)
}

// RoundingInteger returns rep with the rounding policy r.
func RoundingInteger(rep shape.Shape, r convert.Rounding) shape.Shape {
	return rep.Replace(r)
}

// ElasticScaledInteger returns the shape of an elastic integer scaled by
// 2^exponent.
func ElasticScaledInteger(digits, exponent int, signed bool) shape.Shape {
	return ElasticInteger(digits, signed).Wrap(scale.Binary(exponent))
}

// FixedPoint returns the native integer type T scaled by 2^exponent.
func FixedPoint[T constraints.Integer](exponent int) shape.Shape {
	return shape.Of[T]().Wrap(scale.Binary(exponent))
}
