// Package shape describes composed numeric types as values.
//
// A Shape is a core representation wrapped in an ordered list of behavior
// layers. Layers are held outermost first, and each tag family appears at
// most once.
package shape

import (
	"strings"

	"github.com/zeebo/errs"
	"golang.org/x/exp/constraints"

	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/scale"
	"github.com/calebcase/fixed/tag"
	"github.com/calebcase/fixed/traits"
)

// Error is the error class for this package.
var Error = errs.Class("shape")

// Shape is a composed type descriptor.
type Shape struct {
	Rep     traits.Rep
	Elastic bool
	Layers  []tag.Tag
}

// Native returns the shape of the native storage kind k.
func Native(k traits.Kind) Shape {
	return Shape{Rep: traits.Native(k)}
}

// Of returns the shape of the native integer type T.
func Of[T constraints.Integer]() Shape {
	return Shape{Rep: traits.Of[T]()}
}

// ElasticOf returns the shape of an elastic integer.
func ElasticOf(digits int, signed bool) Shape {
	return Shape{
		Rep:     traits.Rep{Digits: digits, Signed: signed},
		Elastic: true,
	}
}

// Traits implements traits.Trait.
func (s Shape) Traits() traits.Rep {
	return s.Rep
}

// Wrap returns s with t added as the outermost layer.
func (s Shape) Wrap(t tag.Tag) Shape {
	layers := make([]tag.Tag, 0, len(s.Layers)+1)
	layers = append(layers, t)
	layers = append(layers, s.Layers...)

	s.Layers = layers

	return s
}

// Outer returns the outermost layer.
func (s Shape) Outer() (t tag.Tag, ok bool) {
	if len(s.Layers) == 0 {
		return nil, false
	}

	return s.Layers[0], true
}

// Inner returns s without its outermost layer.
func (s Shape) Inner() Shape {
	if len(s.Layers) == 0 {
		return s
	}

	s.Layers = s.Layers[1:len(s.Layers):len(s.Layers)]

	return s
}

// Core returns s without any layers.
func (s Shape) Core() Shape {
	s.Layers = nil

	return s
}

// Find returns the layer of family f and its depth, 0 being outermost.
func (s Shape) Find(f tag.Family) (t tag.Tag, depth int, ok bool) {
	for i, l := range s.Layers {
		if l.Family() == f {
			return l, i, true
		}
	}

	return nil, -1, false
}

// Has returns true if s carries a layer of family f.
func (s Shape) Has(f tag.Family) bool {
	_, _, ok := s.Find(f)

	return ok
}

// Replace returns s with its layer of t's family replaced by t. If s has no
// such layer t is added as the outermost layer.
func (s Shape) Replace(t tag.Tag) Shape {
	_, i, ok := s.Find(t.Family())
	if !ok {
		return s.Wrap(t)
	}

	layers := make([]tag.Tag, len(s.Layers))
	copy(layers, s.Layers)
	layers[i] = t

	s.Layers = layers

	return s
}

// Scale returns the scale layer.
func (s Shape) Scale() (t scale.Tag, ok bool) {
	l, _, ok := s.Find(tag.Scale)
	if !ok {
		return scale.Tag{}, false
	}

	t, ok = l.(scale.Tag)

	return t, ok
}

// Overflow returns the overflow policy layer.
func (s Shape) Overflow() (o convert.Overflow, ok bool) {
	l, _, ok := s.Find(tag.Overflow)
	if !ok {
		return convert.NativeOverflow, false
	}

	o, ok = l.(convert.Overflow)

	return o, ok
}

// Rounding returns the rounding policy layer.
func (s Shape) Rounding() (r convert.Rounding, ok bool) {
	l, _, ok := s.Find(tag.Rounding)
	if !ok {
		return convert.NativeRounding, false
	}

	r, ok = l.(convert.Rounding)

	return r, ok
}

// Exponent returns the exponent of the scale layer, or 0.
func (s Shape) Exponent() int {
	t, _ := s.Scale()

	return t.Exponent
}

// WithRep returns s with its core representation replaced by rep.
func (s Shape) WithRep(rep traits.Rep) Shape {
	s.Rep = rep

	return s
}

// SetDigits returns s holding n digits.
func (s Shape) SetDigits(n int) Shape {
	return s.WithRep(s.Rep.SetDigits(n))
}

// MakeSigned returns the signed counterpart of s.
func (s Shape) MakeSigned() Shape {
	return s.WithRep(s.Rep.MakeSigned())
}

// MakeUnsigned returns the unsigned counterpart of s.
func (s Shape) MakeUnsigned() Shape {
	return s.WithRep(s.Rep.MakeUnsigned())
}

// Validate checks the representation and every layer.
func (s Shape) Validate() (err error) {
	defer Error.WrapP(&err)

	err = s.Rep.Validate()
	if err != nil {
		return err
	}

	seen := map[tag.Family]bool{}

	for _, l := range s.Layers {
		if l == nil {
			return Error.New("nil layer")
		}

		f, ok := tag.Lookup(l)
		if !ok {
			return Error.New("unregistered tag: %T", l)
		}

		if seen[f] {
			return Error.New("duplicate %s layer", f)
		}

		seen[f] = true

		if t, ok := l.(scale.Tag); ok {
			err = t.Validate()
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// Equal returns true if a and b describe the same type.
func Equal(a, b Shape) bool {
	if a.Rep != b.Rep || a.Elastic != b.Elastic || len(a.Layers) != len(b.Layers) {
		return false
	}

	for i := range a.Layers {
		if !tag.Equal(a.Layers[i], b.Layers[i]) {
			return false
		}
	}

	return true
}

func (s Shape) String() string {
	var sb strings.Builder

	for _, l := range s.Layers {
		sb.WriteString(l.String())
		sb.WriteString("(")
	}

	sb.WriteString(s.core())
	sb.WriteString(strings.Repeat(")", len(s.Layers)))

	return sb.String()
}

func (s Shape) core() string {
	if s.Elastic {
		return "elastic<" + s.Rep.String() + ">"
	}

	if k := s.Rep.Storage(); k.IsNative() && traits.Native(k) == s.Rep {
		return k.String()
	}

	if !s.Rep.Bounded() {
		return traits.Big.String()
	}

	return "int<" + s.Rep.String() + ">"
}
