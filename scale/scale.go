// Package scale tracks the exponent and radix of fixed-point values.
//
// A scaled value represents
//
//	real = rep * radix ^ exponent
//
// Values combined by addition, subtraction, comparison, modulo or bitwise
// operations are first aligned to a common exponent. Multiplication and
// division combine exponents instead.
package scale

import (
	"fmt"
	"sync"

	"github.com/zeebo/errs"

	"github.com/calebcase/fixed/integer"
	"github.com/calebcase/fixed/op"
	"github.com/calebcase/fixed/tag"
	"github.com/calebcase/fixed/traits"
)

// Error is the error class for this package.
var Error = errs.Class("scale")

// RadixMismatch is the error class for combining values of different
// radices.
var RadixMismatch = errs.Class("radix mismatch")

// Tag is a fixed-point scale.
type Tag struct {
	Exponent int
	Radix    int
}

func init() {
	tag.MustRegister(tag.Scale, Tag{})
}

// New returns a validated scale tag.
func New(exponent, radix int) (t Tag, err error) {
	t = Tag{Exponent: exponent, Radix: radix}

	err = t.Validate()
	if err != nil {
		return Tag{}, err
	}

	return t, nil
}

// Binary returns a radix 2 scale.
func Binary(exponent int) Tag {
	return Tag{Exponent: exponent, Radix: 2}
}

// Decimal returns a radix 10 scale.
func Decimal(exponent int) Tag {
	return Tag{Exponent: exponent, Radix: 10}
}

// Family implements tag.Tag.
func (t Tag) Family() tag.Family {
	return tag.Scale
}

func (t Tag) String() string {
	return fmt.Sprintf("scale<%d,%d>", t.Exponent, t.Radix)
}

// Validate checks the radix.
func (t Tag) Validate() error {
	if t.Radix < 2 {
		return Error.New("invalid radix: %d", t.Radix)
	}

	return nil
}

// WithExponent returns t with exponent e.
func (t Tag) WithExponent(e int) Tag {
	return Tag{Exponent: e, Radix: t.Radix}
}

// Align returns the exponent l and r are aligned to before a scale
// sensitive operation: the finer of the two.
func Align(l, r Tag) (common int, err error) {
	if l.Radix != r.Radix {
		return 0, RadixMismatch.New("%s and %s", l, r)
	}

	return min(l.Exponent, r.Exponent), nil
}

// Result returns the scale of the result of k applied to operands scaled by
// l and r. The operands of aligning operations must already share an
// exponent. rhs describes the right operand's rep and is consulted only by
// quasi-exact division.
func Result(k op.Kind, l, r Tag, rhs traits.Rep) (t Tag, err error) {
	if l.Radix != r.Radix {
		return Tag{}, RadixMismatch.New("%s and %s", l, r)
	}

	switch {
	case k.Aligns():
		if l.Exponent != r.Exponent {
			return Tag{}, Error.New("%s requires aligned operands: %s and %s", k, l, r)
		}

		return l, nil
	case k == op.Mul:
		return l.WithExponent(l.Exponent + r.Exponent), nil
	case k == op.Div:
		return l.WithExponent(l.Exponent - r.Exponent), nil
	case k == op.Quo:
		return l.WithExponent(-(FractionalDigits(l) + IntegerDigits(rhs, r))), nil
	case k == op.Shl, k == op.Shr:
		return l, nil
	}

	return Tag{}, Error.New("no scale rule for %s", k)
}

// FractionalDigits returns the number of radix digits after the radix point.
func FractionalDigits(t Tag) int {
	return max(-t.Exponent, 0)
}

// IntegerDigits returns the number of radix digits needed for the integer
// part of any value held by rep scaled by t.
func IntegerDigits(rep traits.Rep, t Tag) int {
	if !rep.Bounded() {
		return 0
	}

	// Smallest k such that radix^k covers 2^digits.
	bound := integer.One.Lsh(uint(rep.Digits))

	k := 0
	for Pow(t.Radix, k).Cmp(bound) < 0 {
		k++
	}

	return max(k+t.Exponent, 0)
}

// ShiftBits returns the number of binary digits that multiplying by radix^n
// can add to a value.
func ShiftBits(radix, n int) int {
	if n <= 0 {
		return 0
	}

	return Pow(radix, n).Sub(integer.One).BitLen()
}

type powKey struct {
	radix int
	n     int
}

// Powers past these bounds are computed on every call.
const (
	powCacheMaxN    = 128
	powCacheMaxSize = 1024
)

var (
	powMu    sync.Mutex
	powCache = map[powKey]integer.Int{}
)

// Pow returns radix^n. Negative n returns 1. Small powers are cached.
func Pow(radix, n int) integer.Int {
	if n <= 0 {
		return integer.One
	}

	if radix == 2 {
		return integer.One.Lsh(uint(n))
	}

	if n > powCacheMaxN {
		return pow(radix, n)
	}

	k := powKey{radix, n}

	powMu.Lock()
	defer powMu.Unlock()

	if p, ok := powCache[k]; ok {
		return p
	}

	p := pow(radix, n)

	if len(powCache) < powCacheMaxSize {
		powCache[k] = p
	}

	return p
}

func pow(radix, n int) integer.Int {
	p := integer.One
	r := integer.New(int64(radix))

	for i := n; i > 0; i >>= 1 {
		if i&1 == 1 {
			p = p.Mul(r)
		}

		r = r.Mul(r)
	}

	return p
}
