package convert

import (
	"fmt"

	"github.com/calebcase/fixed/integer"
	"github.com/calebcase/fixed/tag"
)

// Rounding is a rounding policy tag.
type Rounding uint8

// Rounding Policies
const (
	NativeRounding Rounding = iota
	Nearest
	TieToPosInf
	NegInf
)

var roundingNames = [...]string{
	NativeRounding: "native",
	Nearest:        "nearest",
	TieToPosInf:    "tie_to_pos_inf",
	NegInf:         "neg_inf",
}

func init() {
	tag.MustRegister(tag.Rounding, NativeRounding)
}

// ParseRounding returns the rounding policy named s.
func ParseRounding(s string) (r Rounding, err error) {
	for i, name := range roundingNames {
		if name == s {
			return Rounding(i), nil
		}
	}

	return NativeRounding, Error.New("unknown rounding policy: %q", s)
}

// Name returns the policy name.
func (r Rounding) Name() string {
	if int(r) < len(roundingNames) {
		return roundingNames[r]
	}

	return fmt.Sprintf("rounding(%d)", uint8(r))
}

// Family implements tag.Tag.
func (r Rounding) Family() tag.Family {
	return tag.Rounding
}

func (r Rounding) String() string {
	return "rounding<" + r.Name() + ">"
}

// MarshalText implements encoding.TextMarshaler.
func (r Rounding) MarshalText() ([]byte, error) {
	return []byte(r.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rounding) UnmarshalText(text []byte) (err error) {
	*r, err = ParseRounding(string(text))

	return err
}

// Divide returns n / d rounded per r. This is the division operator: native
// rounding truncates toward zero.
func Divide(n, d integer.Int, r Rounding) (q integer.Int, err error) {
	if r == NativeRounding {
		q, _, err = n.QuoRem(d)

		return q, err
	}

	return Reduce(n, d, r)
}

// Reduce returns n / d rounded per r. This is the rescaling conversion:
// native rounding is an arithmetic shift when d is a power of two and
// truncation toward zero otherwise.
func Reduce(n, d integer.Int, r Rounding) (q integer.Int, err error) {
	if d.Sign() < 0 {
		n, d = n.Neg(), d.Neg()
	}

	switch r {
	case NativeRounding:
		if d.IsPow2() {
			return n.Rsh(uint(d.BitLen() - 1)), nil
		}

		q, _, err = n.QuoRem(d)

		return q, err
	case Nearest:
		var rem integer.Int

		q, rem, err = n.QuoRem(d)
		if err != nil {
			return integer.Zero, err
		}

		if rem.Abs().Add(rem.Abs()).Cmp(d) >= 0 {
			if n.Sign() < 0 {
				return q.Sub(integer.One), nil
			}

			return q.Add(integer.One), nil
		}

		return q, nil
	case TieToPosInf:
		// floor((2n + d) / 2d)
		return floor(n.Add(n).Add(d), d.Add(d))
	case NegInf:
		return floor(n, d)
	}

	return integer.Zero, Error.New("unknown rounding policy: %d", uint8(r))
}

// floor divides assuming d is positive.
func floor(n, d integer.Int) (q integer.Int, err error) {
	q, rem, err := n.QuoRem(d)
	if err != nil {
		return integer.Zero, err
	}

	if rem.Sign() < 0 {
		q = q.Sub(integer.One)
	}

	return q, nil
}
