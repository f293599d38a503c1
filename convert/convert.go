package convert

import (
	"github.com/zeebo/errs"

	"github.com/calebcase/fixed/integer"
	"github.com/calebcase/fixed/scale"
)

// Error is the error class for this package.
var Error = errs.Class("convert")

// Overflow direction classes returned by the throwing policy.
var (
	PositiveOverflow = errs.Class("positive overflow")
	NegativeOverflow = errs.Class("negative overflow")
)

// Direction reports the overflow direction of err: +1 for positive
// overflow, -1 for negative overflow and 0 for anything else.
func Direction(err error) int {
	switch {
	case PositiveOverflow.Has(err):
		return +1
	case NegativeOverflow.Has(err):
		return -1
	}

	return 0
}

// Rescale converts the rep v scaled by from into a rep scaled by to,
// rounding per r when precision is lost. Scales of different radices are
// converted through an exact fraction.
func Rescale(v integer.Int, from, to scale.Tag, r Rounding) (out integer.Int, err error) {
	if from.Radix == to.Radix {
		k := from.Exponent - to.Exponent
		if k >= 0 {
			return v.Mul(scale.Pow(from.Radix, k)), nil
		}

		return Reduce(v, scale.Pow(from.Radix, -k), r)
	}

	num, den := v, integer.One

	if from.Exponent >= 0 {
		num = num.Mul(scale.Pow(from.Radix, from.Exponent))
	} else {
		den = den.Mul(scale.Pow(from.Radix, -from.Exponent))
	}

	if to.Exponent >= 0 {
		den = den.Mul(scale.Pow(to.Radix, to.Exponent))
	} else {
		num = num.Mul(scale.Pow(to.Radix, -to.Exponent))
	}

	if den.Cmp(integer.One) == 0 {
		return num, nil
	}

	return Reduce(num, den, r)
}
