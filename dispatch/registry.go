package dispatch

import (
	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/elastic"
	"github.com/calebcase/fixed/op"
	"github.com/calebcase/fixed/scale"
	"github.com/calebcase/fixed/shape"
	"github.com/calebcase/fixed/tag"
	"github.com/calebcase/fixed/traits"
)

// Handler reconciles the tags of one family.
type Handler struct {
	// Promote returns the tag an operand without a layer of the family is
	// treated as carrying, given the other operand's tag t.
	Promote func(k op.Kind, t tag.Tag) (tag.Tag, error)

	// Align reconciles operands whose outermost layers are tags of the
	// family with differing parameters.
	Align func(k op.Kind, l, r shape.Shape) (lo, ro shape.Shape, err error)
}

// Rule returns the result tag of an operation on operands whose outermost
// layers have been reconciled. For shifts r carries no layer of the family.
type Rule func(k op.Kind, l, r shape.Shape) (tag.Tag, error)

// Base returns the core result of an operation on operands without layers.
type Base func(k op.Kind, l, r shape.Shape) (shape.Shape, error)

type key struct {
	k op.Kind
	f tag.Family
}

// Registry holds the handlers and rules resolution consults. A Registry
// must not be modified once it is used to resolve.
type Registry struct {
	families map[tag.Family]Handler
	rules    map[key]Rule
	base     Base
}

// NewRegistry returns a registry combining cores with base and handling no
// families.
func NewRegistry(base Base) *Registry {
	return &Registry{
		families: map[tag.Family]Handler{},
		rules:    map[key]Rule{},
		base:     base,
	}
}

// Handle registers the handler for family f.
func (reg *Registry) Handle(f tag.Family, h Handler) {
	reg.families[f] = h
}

// Rule registers the result rule of k for family f.
func (reg *Registry) Rule(k op.Kind, f tag.Family, rule Rule) {
	reg.rules[key{k, f}] = rule
}

func newDefault() *Registry {
	reg := NewRegistry(Combine)

	reg.Handle(tag.Scale, Handler{
		Promote: promoteScale,
		Align:   alignScale,
	})
	reg.Handle(tag.Overflow, Handler{
		Promote: promoteSame,
		Align:   alignPolicy,
	})
	reg.Handle(tag.Rounding, Handler{
		Promote: promoteSame,
		Align:   alignPolicy,
	})

	for _, k := range op.Kinds() {
		reg.Rule(k, tag.Scale, scaleRule)
		reg.Rule(k, tag.Overflow, lhsRule)
		reg.Rule(k, tag.Rounding, lhsRule)
	}

	return reg
}

// Combine is the default base rule. Elastic operands grow the result so that
// it cannot overflow and native operands combine into their common type. A
// shift keeps the type of the value shifted, as does increment or decrement
// of a native.
func Combine(k op.Kind, l, r shape.Shape) (res shape.Shape, err error) {
	switch k {
	case op.Shl, op.Shr:
		return l.Core(), nil
	case op.Inc, op.Dec:
		if !l.Elastic {
			return l.Core(), nil
		}

		// The unit may have been widened by alignment.
		if k == op.Inc {
			k = op.Add
		} else {
			k = op.Sub
		}
	}

	if l.Elastic || r.Elastic {
		rep, err := elastic.Grow(k, l.Rep, r.Rep)
		if err != nil {
			return res, Error.Wrap(err)
		}

		return shape.Shape{Rep: rep, Elastic: true}, nil
	}

	return shape.Shape{Rep: traits.Common(l.Rep, r.Rep)}, nil
}

func promoteScale(k op.Kind, t tag.Tag) (tag.Tag, error) {
	st, ok := t.(scale.Tag)
	if !ok {
		return nil, Unsupported.New("unexpected scale tag: %T", t)
	}

	return st.WithExponent(0), nil
}

func promoteSame(k op.Kind, t tag.Tag) (tag.Tag, error) {
	return t, nil
}

func outerScale(s shape.Shape) (t scale.Tag, ok bool) {
	o, ok := s.Outer()
	if !ok {
		return scale.Tag{}, false
	}

	t, ok = o.(scale.Tag)

	return t, ok
}

// alignScale brings aligning operations to the finer exponent. The coarser
// operand's rep is multiplied by a power of the radix, so an elastic rep
// widens to absorb it.
func alignScale(k op.Kind, l, r shape.Shape) (lo, ro shape.Shape, err error) {
	lt, lok := outerScale(l)
	rt, rok := outerScale(r)

	if !lok || !rok {
		return lo, ro, Unsupported.New("unexpected scale layers: %s and %s", l, r)
	}

	e, err := scale.Align(lt, rt)
	if err != nil {
		return lo, ro, err
	}

	if !k.Aligns() {
		return l, r, nil
	}

	return rescale(l, lt, e), rescale(r, rt, e), nil
}

func rescale(s shape.Shape, t scale.Tag, e int) shape.Shape {
	n := t.Exponent - e
	if n == 0 {
		return s
	}

	s = s.Replace(t.WithExponent(e))

	if s.Elastic {
		s = s.WithRep(elastic.ShiftDigits(s.Rep, scale.ShiftBits(t.Radix, n)))
	}

	return s
}

func alignPolicy(k op.Kind, l, r shape.Shape) (lo, ro shape.Shape, err error) {
	lt, _ := l.Outer()
	rt, _ := r.Outer()

	return lo, ro, Unsupported.New("unsupported policy combination: %s and %s", lt, rt)
}

func scaleRule(k op.Kind, l, r shape.Shape) (tag.Tag, error) {
	lt, ok := outerScale(l)
	if !ok {
		return nil, Unsupported.New("unexpected scale layer: %s", l)
	}

	if !k.Promotes() {
		return lt, nil
	}

	rt, ok := outerScale(r)
	if !ok {
		return nil, Unsupported.New("unexpected scale layer: %s", r)
	}

	t, err := scale.Result(k, lt, rt, r.Rep)
	if err != nil {
		return nil, err
	}

	return t, nil
}

func lhsRule(k op.Kind, l, r shape.Shape) (tag.Tag, error) {
	lt, _ := l.Outer()

	return lt, nil
}

// Policies resolves the rounding and overflow policies of a conversion from
// one shape to another: the target's policy first, then the source's, then
// the native policy.
func Policies(from, to shape.Shape) (r convert.Rounding, o convert.Overflow) {
	var ok bool

	if r, ok = to.Rounding(); !ok {
		r, _ = from.Rounding()
	}

	if o, ok = to.Overflow(); !ok {
		o, _ = from.Overflow()
	}

	return r, o
}
