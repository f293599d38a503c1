package number

import (
	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/dispatch"
	"github.com/calebcase/fixed/elastic"
	"github.com/calebcase/fixed/integer"
	"github.com/calebcase/fixed/op"
	"github.com/calebcase/fixed/scale"
	"github.com/calebcase/fixed/shape"
	"github.com/calebcase/fixed/traits"
)

// MaxShift is the largest amount a value may be shifted by.
const MaxShift = 1 << 20

var unit = Number{
	shape: shape.ElasticOf(elastic.Unit.Digits, elastic.Unit.Signed),
	rep:   integer.One,
}

// Add returns x + y.
func (x Number) Add(y Number) (Number, error) { return x.apply(op.Add, y) }

// Sub returns x - y.
func (x Number) Sub(y Number) (Number, error) { return x.apply(op.Sub, y) }

// Mul returns x * y.
func (x Number) Mul(y Number) (Number, error) { return x.apply(op.Mul, y) }

// Div returns x / y. The result exponent is the difference of the operand
// exponents.
func (x Number) Div(y Number) (Number, error) { return x.apply(op.Div, y) }

// Quo returns x / y using quasi-exact division: the result keeps the
// fractional digits of x plus the integer digits of y. A quotient that does
// not fit the result is a QuotientPrecondition error.
func (x Number) Quo(y Number) (Number, error) { return x.apply(op.Quo, y) }

// Mod returns the remainder of x / y, with the sign of x.
func (x Number) Mod(y Number) (Number, error) { return x.apply(op.Mod, y) }

// And returns x & y.
func (x Number) And(y Number) (Number, error) { return x.apply(op.And, y) }

// Or returns x | y.
func (x Number) Or(y Number) (Number, error) { return x.apply(op.Or, y) }

// Xor returns x ^ y.
func (x Number) Xor(y Number) (Number, error) { return x.apply(op.Xor, y) }

// Shl returns x with its rep shifted left by the value of y. The exponent is
// unchanged.
func (x Number) Shl(y Number) (Number, error) { return x.apply(op.Shl, y) }

// Shr returns x with its rep shifted right by the value of y. The exponent
// is unchanged.
func (x Number) Shr(y Number) (Number, error) { return x.apply(op.Shr, y) }

// Inc returns x + 1.
func (x Number) Inc() (Number, error) { return x.apply(op.Inc, unit) }

// Dec returns x - 1.
func (x Number) Dec() (Number, error) { return x.apply(op.Dec, unit) }

// Cmp compares x and y and returns -1, 0 or +1.
func (x Number) Cmp(y Number) (c int, err error) {
	p, err := dispatch.Resolve(op.Cmp, x.shape, y.shape)
	if err != nil {
		return 0, Error.Wrap(err)
	}

	l, r, err := operands(p, x, y)
	if err != nil {
		return 0, err
	}

	return l.Cmp(r), nil
}

// Neg returns -x. An unsigned elastic value becomes signed.
func (x Number) Neg() (y Number, err error) {
	s := x.shape
	if s.Elastic && !s.Rep.Signed {
		s = s.WithRep(traits.Rep{Digits: s.Rep.Digits, Signed: true})
	}

	_, o := dispatch.Policies(x.shape, s)

	return fit(s, x.rep.Neg(), o)
}

// ShiftConst returns x * R^n where R is the radix of x. Only the exponent
// changes; the rep is untouched. A value without a scale gains a binary
// scale of n.
func (x Number) ShiftConst(n int) (y Number, err error) {
	if n > MaxShift || n < -MaxShift {
		return Number{}, Error.New("shift out of range: %d", n)
	}

	t, ok := x.shape.Scale()
	if !ok {
		return Number{shape: x.shape.Wrap(scale.Binary(n)), rep: x.rep}, nil
	}

	return Number{shape: x.shape.Replace(t.WithExponent(t.Exponent + n)), rep: x.rep}, nil
}

func (x Number) apply(k op.Kind, y Number) (z Number, err error) {
	p, err := dispatch.Resolve(k, x.shape, y.shape)
	if err != nil {
		return Number{}, Error.Wrap(err)
	}

	l, r, err := operands(p, x, y)
	if err != nil {
		return Number{}, err
	}

	v, err := compute(p, l, r)
	if err != nil {
		return Number{}, err
	}

	return fit(p.Result, v, p.Overflow)
}

// operands returns the reps of x and y aligned to the plan.
func operands(p dispatch.Plan, x, y Number) (l, r integer.Int, err error) {
	l, err = x.align(p.Lhs)
	if err != nil {
		return l, r, err
	}

	r, err = y.align(p.Rhs)
	if err != nil {
		return l, r, err
	}

	return l, r, nil
}

// align returns the rep of x rescaled to the exponent of the operand type
// to. Alignment only ever moves to a finer exponent so the rescale is exact.
// The aligned rep is not fit into to: operations are computed exactly and
// only the result is fit, with the plan's overflow policy.
func (x Number) align(to shape.Shape) (v integer.Int, err error) {
	if shape.Equal(x.shape, to) {
		return x.rep, nil
	}

	from, target := scales(x.shape, to)

	v, err = convert.Rescale(x.rep, from, target, convert.NativeRounding)
	if err != nil {
		return v, Error.Wrap(err)
	}

	return v, nil
}

func compute(p dispatch.Plan, l, r integer.Int) (v integer.Int, err error) {
	switch p.Op {
	case op.Add, op.Inc:
		return l.Add(r), nil
	case op.Sub, op.Dec:
		return l.Sub(r), nil
	case op.Mul:
		return l.Mul(r), nil
	case op.And:
		return l.And(r), nil
	case op.Or:
		return l.Or(r), nil
	case op.Xor:
		return l.Xor(r), nil
	case op.Div:
		if r.IsZero() {
			return v, DivideByZero.New("%s / 0", l)
		}

		v, err = convert.Divide(l, r, p.Rounding)
		if err != nil {
			return v, Error.Wrap(err)
		}

		return v, nil
	case op.Quo:
		return quotient(p, l, r)
	case op.Mod:
		if r.IsZero() {
			return v, DivideByZero.New("%s %% 0", l)
		}

		_, v, err = l.QuoRem(r)
		if err != nil {
			return v, Error.Wrap(err)
		}

		return v, nil
	case op.Shl, op.Shr:
		if r.Sign() < 0 || r.Cmp(integer.New(MaxShift)) > 0 {
			return v, Error.New("shift out of range: %s", r)
		}

		if p.Op == op.Shl {
			return l.Lsh(uint(r.Int64())), nil
		}

		return l.Rsh(uint(r.Int64())), nil
	}

	return v, Error.New("unsupported operation: %s", p.Op)
}

// quotient divides through an exact fraction so the quotient lands on the
// result exponent, then checks it fits the result's digit budget.
func quotient(p dispatch.Plan, l, r integer.Int) (q integer.Int, err error) {
	if r.IsZero() {
		return q, DivideByZero.New("%s / 0", l)
	}

	lt, _ := p.Lhs.Scale()
	rt, _ := p.Rhs.Scale()
	qt, _ := p.Result.Scale()

	num, den := l, r

	if n := lt.Exponent - rt.Exponent - qt.Exponent; n > 0 {
		num = num.Mul(scale.Pow(qt.Radix, n))
	} else if n < 0 {
		den = den.Mul(scale.Pow(qt.Radix, -n))
	}

	q, err = convert.Divide(num, den, p.Rounding)
	if err != nil {
		return q, Error.Wrap(err)
	}

	if !p.Result.Rep.Contains(q) {
		return q, QuotientPrecondition.New("%s exceeds %s", q, p.Result)
	}

	return q, nil
}
