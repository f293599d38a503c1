// Package traits answers the numeric questions every representation must
// answer to take part in dispatch: how many digits it holds, whether it is
// signed, and how to derive a representation with a different digit count or
// signedness.
//
// Digits count magnitude bits and exclude the sign bit, so int8 has 7 digits
// and uint8 has 8.
package traits

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/zeebo/errs"
	"golang.org/x/exp/constraints"

	"github.com/calebcase/fixed/integer"
)

// Error is the error class for this package.
var Error = errs.Class("traits")

// Unbounded is the digit count of a representation with no upper bound.
const Unbounded = math.MaxInt32

// Trait is implemented by every representation, native or composed.
type Trait interface {
	Traits() Rep
}

// Kind is a storage kind.
type Kind uint8

// Storage Kinds
const (
	Invalid Kind = iota
	Int8
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Big
)

var kinds = [...]struct {
	name   string
	width  int
	signed bool
}{
	Invalid: {"invalid", 0, false},
	Int8:    {"int8", 8, true},
	Uint8:   {"uint8", 8, false},
	Int16:   {"int16", 16, true},
	Uint16:  {"uint16", 16, false},
	Int32:   {"int32", 32, true},
	Uint32:  {"uint32", 32, false},
	Int64:   {"int64", 64, true},
	Uint64:  {"uint64", 64, false},
	Big:     {"big", 0, true},
}

// natives is ordered narrowest first.
var natives = []Kind{Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64}

func (k Kind) String() string {
	if int(k) < len(kinds) {
		return kinds[k].name
	}

	return kinds[Invalid].name
}

// ParseKind returns the storage kind named s.
func ParseKind(s string) (k Kind, err error) {
	for i := range kinds {
		if Kind(i) != Invalid && kinds[i].name == s {
			return Kind(i), nil
		}
	}

	return Invalid, Error.New("unknown storage kind: %q", s)
}

// Width returns the storage width in bits. The arbitrary-precision kind has
// no fixed width and reports 0.
func (k Kind) Width() int {
	if int(k) < len(kinds) {
		return kinds[k].width
	}

	return 0
}

// IsNative returns true for fixed-width storage kinds.
func (k Kind) IsNative() bool {
	return k != Invalid && k != Big && int(k) < len(kinds)
}

// Rep describes a representation by its traits.
type Rep struct {
	Digits int
	Signed bool
}

// Native returns the traits of the native storage kind k.
func Native(k Kind) Rep {
	if !k.IsNative() {
		return Rep{Digits: Unbounded, Signed: true}
	}

	info := kinds[k]

	if info.signed {
		return Rep{Digits: info.width - 1, Signed: true}
	}

	return Rep{Digits: info.width, Signed: false}
}

// Of returns the traits of the native integer type T.
func Of[T constraints.Integer]() Rep {
	var zero T

	width := int(unsafe.Sizeof(zero)) * 8
	if zero-1 < zero {
		return Rep{Digits: width - 1, Signed: true}
	}

	return Rep{Digits: width, Signed: false}
}

// New returns the traits of a representation with the given digit count.
func New(digits int, signed bool) (r Rep, err error) {
	r = Rep{Digits: digits, Signed: signed}

	err = r.Validate()
	if err != nil {
		return Rep{}, err
	}

	return r, nil
}

// Validate checks the representation holds at least one digit.
func (r Rep) Validate() error {
	if r.Digits < 1 {
		return Error.New("invalid digit count: %d", r.Digits)
	}

	return nil
}

// Traits implements Trait.
func (r Rep) Traits() Rep {
	return r
}

// Bounded returns false for representations without an upper bound.
func (r Rep) Bounded() bool {
	return r.Digits < Unbounded
}

// Storage returns the narrowest native storage whose capacity covers the
// digit count and signedness, or Big when no native storage suffices.
func (r Rep) Storage() Kind {
	for _, k := range natives {
		n := Native(k)
		if n.Signed == r.Signed && n.Digits >= r.Digits {
			return k
		}
	}

	return Big
}

// Width returns the number of bits of storage including the sign bit. For
// Big storage this is the digit count plus the sign bit.
func (r Rep) Width() int {
	if k := r.Storage(); k.IsNative() {
		return k.Width()
	}

	if !r.Bounded() {
		return Unbounded
	}

	if r.Signed {
		return r.Digits + 1
	}

	return r.Digits
}

// SetDigits returns a representation with the same signedness holding n
// digits.
func (r Rep) SetDigits(n int) Rep {
	return Rep{Digits: n, Signed: r.Signed}
}

// MakeSigned returns the signed counterpart of r. The counterpart of a native
// kind is the native kind of the same width.
func (r Rep) MakeSigned() Rep {
	if r.Signed {
		return r
	}

	if k := r.Storage(); k.IsNative() && Native(k).Digits == r.Digits {
		return Rep{Digits: r.Digits - 1, Signed: true}
	}

	return Rep{Digits: r.Digits, Signed: true}
}

// MakeUnsigned returns the unsigned counterpart of r.
func (r Rep) MakeUnsigned() Rep {
	if !r.Signed {
		return r
	}

	if k := r.Storage(); k.IsNative() && Native(k).Digits == r.Digits {
		return Rep{Digits: r.Digits + 1, Signed: false}
	}

	return Rep{Digits: r.Digits, Signed: false}
}

// Common returns the representation both a and b convert to when they are
// combined without elastic growth: signed if either is signed, and wide
// enough for the larger digit count.
func Common(a, b Rep) Rep {
	signed := a.Signed || b.Signed

	c := Rep{Digits: max(a.Digits, b.Digits), Signed: signed}

	// Snap to the storage's capacity so that natives combine into natives.
	if k := c.Storage(); k.IsNative() {
		return Native(k)
	}

	return c
}

// Max returns the largest value the representation holds. r must be bounded.
func (r Rep) Max() integer.Int {
	return integer.One.Lsh(uint(r.Digits)).Sub(integer.One)
}

// Lowest returns the lowest value the representation holds. r must be
// bounded when signed.
func (r Rep) Lowest() integer.Int {
	if !r.Signed {
		return integer.Zero
	}

	return integer.One.Lsh(uint(r.Digits)).Neg()
}

// Contains returns true if x is within the bounds of r.
func (r Rep) Contains(x integer.Int) bool {
	if !r.Bounded() {
		return r.Signed || x.Sign() >= 0
	}

	return x.Cmp(r.Lowest()) >= 0 && x.Cmp(r.Max()) <= 0
}

// Fits returns the minimal traits able to hold x.
func Fits(x integer.Int) Rep {
	if x.Sign() < 0 {
		// -2^n needs only n digits.
		return Rep{Digits: max(x.Add(integer.One).BitLen(), 1), Signed: true}
	}

	return Rep{Digits: max(x.BitLen(), 1), Signed: false}
}

func (r Rep) String() string {
	s := "unsigned"
	if r.Signed {
		s = "signed"
	}

	if !r.Bounded() {
		return fmt.Sprintf("unbounded,%s", s)
	}

	return fmt.Sprintf("%d,%s", r.Digits, s)
}
