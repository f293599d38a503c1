package integer

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/calebcase/oops"
)

// Int is an immutable signed integer of any magnitude. Values that fit in an
// int64 are held inline; larger values are held by the arbitrary-precision
// backend (math/big). The zero value is 0.
//
// A *big.Int held by an Int is never modified after construction, so Ints
// may be copied freely.
type Int struct {
	small int64
	big   *big.Int // big != nil <=> value is not representable as int64
}

// Zero is the integer 0.
var Zero = Int{}

// One is the integer 1.
var One = Int{small: 1}

// New returns x as an Int.
func New(x int64) Int {
	return Int{small: x}
}

// FromUint64 returns x as an Int.
func FromUint64(x uint64) Int {
	if x <= math.MaxInt64 {
		return Int{small: int64(x)}
	}

	return Int{big: new(big.Int).SetUint64(x)}
}

// FromBig returns a copy of x as an Int.
func FromBig(x *big.Int) Int {
	if x == nil {
		return Zero
	}

	return norm(new(big.Int).Set(x))
}

// Parse returns the Int represented by s in the given base (0 for prefix
// detection).
func Parse(s string, base int) (i Int, err error) {
	b, ok := new(big.Int).SetString(s, base)
	if !ok {
		return Zero, Error.New("invalid integer: %q", s)
	}

	return norm(b), nil
}

// norm takes ownership of b.
func norm(b *big.Int) Int {
	if b.IsInt64() {
		return Int{small: b.Int64()}
	}

	return Int{big: b}
}

// bigInt returns the value as a *big.Int. The result must not be modified.
func (x Int) bigInt() *big.Int {
	if x.big != nil {
		return x.big
	}

	return big.NewInt(x.small)
}

// Big returns the value as a new *big.Int.
func (x Int) Big() *big.Int {
	if x.big != nil {
		return new(big.Int).Set(x.big)
	}

	return big.NewInt(x.small)
}

// IsInt64 returns true if x can be represented as an int64.
func (x Int) IsInt64() bool {
	return x.big == nil
}

// Int64 returns the int64 representation of x. If x cannot be represented in
// an int64, the result is undefined.
func (x Int) Int64() int64 {
	if x.big != nil {
		return x.big.Int64()
	}

	return x.small
}

// IsUint64 returns true if x can be represented as a uint64.
func (x Int) IsUint64() bool {
	if x.big != nil {
		return x.big.IsUint64()
	}

	return x.small >= 0
}

// Uint64 returns the uint64 representation of x. If x cannot be represented
// in a uint64, the result is undefined.
func (x Int) Uint64() uint64 {
	if x.big != nil {
		return x.big.Uint64()
	}

	return uint64(x.small)
}

// Sign returns -1, 0 or +1.
func (x Int) Sign() int {
	if x.big != nil {
		return x.big.Sign()
	}

	switch {
	case x.small < 0:
		return -1
	case x.small > 0:
		return +1
	}

	return 0
}

// IsZero returns true if x is 0.
func (x Int) IsZero() bool {
	return x.big == nil && x.small == 0
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x Int) Cmp(y Int) int {
	if x.big == nil && y.big == nil {
		switch {
		case x.small < y.small:
			return -1
		case x.small > y.small:
			return +1
		}

		return 0
	}

	return x.bigInt().Cmp(y.bigInt())
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.big == nil && y.big == nil {
		s := x.small + y.small
		if (x.small^s)&(y.small^s) >= 0 {
			return Int{small: s}
		}
	}

	return norm(new(big.Int).Add(x.bigInt(), y.bigInt()))
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	if x.big == nil && y.big == nil {
		s := x.small - y.small
		if (x.small^y.small)&(x.small^s) >= 0 {
			return Int{small: s}
		}
	}

	return norm(new(big.Int).Sub(x.bigInt(), y.bigInt()))
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	if x.big == nil && y.big == nil {
		if x.small == 0 || y.small == 0 {
			return Zero
		}

		hi, lo := bits.Mul64(abs64(x.small), abs64(y.small))
		if hi == 0 && lo <= math.MaxInt64 {
			p := int64(lo)
			if (x.small < 0) != (y.small < 0) {
				p = -p
			}

			return Int{small: p}
		}
	}

	return norm(new(big.Int).Mul(x.bigInt(), y.bigInt()))
}

func abs64(x int64) uint64 {
	if x < 0 {
		return uint64(-x)
	}

	return uint64(x)
}

// Neg returns -x.
func (x Int) Neg() Int {
	if x.big == nil && x.small != math.MinInt64 {
		return Int{small: -x.small}
	}

	return norm(new(big.Int).Neg(x.bigInt()))
}

// Abs returns |x|.
func (x Int) Abs() Int {
	if x.Sign() < 0 {
		return x.Neg()
	}

	return x
}

// QuoRem returns the quotient truncated toward zero and the remainder, which
// has the sign of x. It returns an error if y is zero.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	if y.IsZero() {
		return Zero, Zero, oops.Trace(ErrDivideByZero)
	}

	if x.big == nil && y.big == nil && !(x.small == math.MinInt64 && y.small == -1) {
		return Int{small: x.small / y.small}, Int{small: x.small % y.small}, nil
	}

	bq, br := new(big.Int).QuoRem(x.bigInt(), y.bigInt(), new(big.Int))

	return norm(bq), norm(br), nil
}

// Lsh returns x << n.
func (x Int) Lsh(n uint) Int {
	if n == 0 || x.IsZero() {
		return x
	}

	if x.big == nil && n < 63 {
		s := x.small << n
		if s>>n == x.small {
			return Int{small: s}
		}
	}

	return norm(new(big.Int).Lsh(x.bigInt(), n))
}

// Rsh returns x >> n using arithmetic shift semantics (rounding toward
// negative infinity).
func (x Int) Rsh(n uint) Int {
	if n == 0 {
		return x
	}

	if x.big == nil {
		if n >= 63 {
			if x.small < 0 {
				return Int{small: -1}
			}

			return Zero
		}

		return Int{small: x.small >> n}
	}

	return norm(new(big.Int).Rsh(x.big, n))
}

// And returns x & y with two's complement semantics.
func (x Int) And(y Int) Int {
	if x.big == nil && y.big == nil {
		return Int{small: x.small & y.small}
	}

	return norm(new(big.Int).And(x.bigInt(), y.bigInt()))
}

// Or returns x | y with two's complement semantics.
func (x Int) Or(y Int) Int {
	if x.big == nil && y.big == nil {
		return Int{small: x.small | y.small}
	}

	return norm(new(big.Int).Or(x.bigInt(), y.bigInt()))
}

// Xor returns x ^ y with two's complement semantics.
func (x Int) Xor(y Int) Int {
	if x.big == nil && y.big == nil {
		return Int{small: x.small ^ y.small}
	}

	return norm(new(big.Int).Xor(x.bigInt(), y.bigInt()))
}

// BitLen returns the length of |x| in bits.
func (x Int) BitLen() int {
	if x.big != nil {
		return x.big.BitLen()
	}

	return bits.Len64(abs64(x.small))
}

// Wrap reduces x to width bits using two's complement truncation, the way a
// native integer of that width overflows.
func (x Int) Wrap(width uint, signed bool) Int {
	if width == 0 {
		return Zero
	}

	if x.big == nil && width < 64 {
		u := uint64(x.small) & (1<<width - 1)
		if signed && u>>(width-1) != 0 {
			return Int{small: int64(u) - 1<<width}
		}

		return Int{small: int64(u)}
	}

	if x.big == nil && width == 64 && signed {
		return x
	}

	m := new(big.Int).Lsh(big.NewInt(1), width)
	r := new(big.Int).Mod(x.bigInt(), m)
	if signed && r.Bit(int(width-1)) != 0 {
		r.Sub(r, m)
	}

	return norm(r)
}

// IsPow2 returns true if x is a positive power of two.
func (x Int) IsPow2() bool {
	if x.Sign() <= 0 {
		return false
	}

	if x.big == nil {
		return x.small&(x.small-1) == 0
	}

	return x.big.TrailingZeroBits() == uint(x.big.BitLen()-1)
}

// Float64 returns the nearest float64 to x.
func (x Int) Float64() float64 {
	if x.big == nil {
		return float64(x.small)
	}

	f, _ := new(big.Float).SetInt(x.big).Float64()

	return f
}

func (x Int) String() string {
	return x.bigInt().String()
}

// Format implements fmt.Formatter.
func (x Int) Format(s fmt.State, verb rune) {
	x.bigInt().Format(s, verb)
}
