package convert

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/calebcase/fixed/integer"
	"github.com/calebcase/fixed/tag"
	"github.com/calebcase/fixed/traits"
)

// Overflow is an overflow policy tag.
type Overflow uint8

// Overflow Policies
const (
	NativeOverflow Overflow = iota
	Saturating
	Throwing
	Trapping
	Undefined
)

var overflowNames = [...]string{
	NativeOverflow: "native",
	Saturating:     "saturating",
	Throwing:       "throwing",
	Trapping:       "trapping",
	Undefined:      "undefined",
}

func init() {
	tag.MustRegister(tag.Overflow, NativeOverflow)
}

// Trap is called by the trapping policy with a diagnostic naming the
// overflow direction. It terminates the process.
var Trap = func(format string, args ...any) {
	glog.Fatalf(format, args...)
}

// ParseOverflow returns the overflow policy named s.
func ParseOverflow(s string) (o Overflow, err error) {
	for i, name := range overflowNames {
		if name == s {
			return Overflow(i), nil
		}
	}

	return NativeOverflow, Error.New("unknown overflow policy: %q", s)
}

// Name returns the policy name.
func (o Overflow) Name() string {
	if int(o) < len(overflowNames) {
		return overflowNames[o]
	}

	return fmt.Sprintf("overflow(%d)", uint8(o))
}

// Family implements tag.Tag.
func (o Overflow) Family() tag.Family {
	return tag.Overflow
}

func (o Overflow) String() string {
	return "overflow<" + o.Name() + ">"
}

// MarshalText implements encoding.TextMarshaler.
func (o Overflow) MarshalText() ([]byte, error) {
	return []byte(o.Name()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Overflow) UnmarshalText(text []byte) (err error) {
	*o, err = ParseOverflow(string(text))

	return err
}

// Fit returns v as a value of the representation to, applying o when v is
// out of range.
func Fit(v integer.Int, to traits.Rep, o Overflow) (out integer.Int, err error) {
	if to.Contains(v) {
		return v, nil
	}

	positive := v.Sign() > 0

	switch o {
	case NativeOverflow, Undefined:
		return wrap(v, to), nil
	case Saturating:
		if positive {
			return to.Max(), nil
		}

		return to.Lowest(), nil
	case Throwing:
		return integer.Zero, overflowed(v, to, positive)
	case Trapping:
		err = overflowed(v, to, positive)
		Trap("trapping overflow: %v", err)

		return integer.Zero, err
	}

	return integer.Zero, Error.New("unknown overflow policy: %d", uint8(o))
}

func overflowed(v integer.Int, to traits.Rep, positive bool) error {
	if positive {
		return PositiveOverflow.New("%s exceeds max of %s", v, to)
	}

	return NegativeOverflow.New("%s exceeds lowest of %s", v, to)
}

// wrap reduces v modulo the digit range of to, the way a native integer of
// that width overflows.
func wrap(v integer.Int, to traits.Rep) integer.Int {
	if !to.Bounded() {
		// Only an unbounded unsigned rep can get here.
		return v.Abs()
	}

	width := to.Digits
	if to.Signed {
		width++
	}

	return v.Wrap(uint(width), to.Signed)
}
