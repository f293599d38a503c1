package dispatch

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/zeebo/errs"

	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/op"
	"github.com/calebcase/fixed/shape"
	"github.com/calebcase/fixed/tag"
)

// Error is the error class for this package.
var Error = errs.Class("dispatch")

// Resolution failure classes.
var (
	FamilyMismatch = errs.Class("tag family mismatch")
	Unsupported    = errs.Class("unsupported combination")
)

// Strategy is the way a layer was reconciled.
type Strategy uint8

// Strategies in match order.
const (
	Exact Strategy = iota
	Aligned
	Promoted
	Fallback
)

var strategyNames = [...]string{
	Exact:    "exact",
	Aligned:  "aligned",
	Promoted: "promoted",
	Fallback: "fallback",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}

	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// Step records how one layer was reconciled.
type Step struct {
	Strategy Strategy
	Family   tag.Family

	// Lhs and Rhs are the operands' tags after alignment and promotion. Rhs
	// is nil for fallback steps.
	Lhs, Rhs tag.Tag
	Result   tag.Tag
}

func (s Step) String() string {
	return fmt.Sprintf("%s:%s(%v, %v) -> %v", s.Family, s.Strategy, s.Lhs, s.Rhs, s.Result)
}

// Plan is a resolved operation.
type Plan struct {
	Op    op.Kind
	Steps []Step

	// Lhs and Rhs are the operand types the reps are aligned to before they
	// are combined. A native rep aligned to a finer exponent is carried
	// exactly and may exceed the bounds of its core.
	Lhs, Rhs shape.Shape
	Result   shape.Shape

	Rounding convert.Rounding
	Overflow convert.Overflow
}

func (p Plan) String() string {
	steps := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		steps = append(steps, s.String())
	}

	return fmt.Sprintf("%s(%s, %s) -> %s [%s]", p.Op, p.Lhs, p.Rhs, p.Result, strings.Join(steps, "; "))
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry handling the scale, overflow and rounding
// families.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = newDefault()
	})

	return defaultRegistry
}

// Resolve resolves k on lhs and rhs with the default registry.
func Resolve(k op.Kind, lhs, rhs shape.Shape) (p Plan, err error) {
	return Default().Resolve(k, lhs, rhs)
}

// Resolve resolves k on lhs and rhs.
func (reg *Registry) Resolve(k op.Kind, lhs, rhs shape.Shape) (p Plan, err error) {
	if !k.Valid() {
		return Plan{}, Error.New("invalid operation: %s", k)
	}

	err = lhs.Validate()
	if err != nil {
		return Plan{}, Error.Wrap(err)
	}

	err = rhs.Validate()
	if err != nil {
		return Plan{}, Error.Wrap(err)
	}

	if !k.Promotes() && len(rhs.Layers) > 0 {
		return Plan{}, Unsupported.New("%s amount must be untagged: %s", k, rhs)
	}

	p = Plan{Op: k}

	p.Lhs, p.Rhs, p.Result, err = reg.resolve(k, lhs, rhs, &p.Steps)
	if err != nil {
		return Plan{}, err
	}

	p.Rounding, _ = p.Result.Rounding()
	p.Overflow, _ = p.Result.Overflow()

	if glog.V(3) {
		glog.Infof("resolved %s", p)
	}

	return p, nil
}

func (reg *Registry) resolve(k op.Kind, l, r shape.Shape, steps *[]Step) (lo, ro, res shape.Shape, err error) {
	lt, lok := l.Outer()
	rt, rok := r.Outer()

	if !lok && !rok {
		res, err = reg.base(k, l, r)
		if err != nil {
			return lo, ro, res, err
		}

		return l, r, res, nil
	}

	step := Step{}

	// intoLeft is set when the left operand is the one promoted.
	intoLeft := !lok

	switch {
	case lok && rok && lt.Family() == rt.Family():
		step.Family = lt.Family()
		step.Strategy = Aligned

		if tag.Equal(lt, rt) {
			step.Strategy = Exact
		}
	case lok && !k.Promotes():
		step.Family = lt.Family()
		step.Strategy = Fallback
	case lok:
		// Promote whichever side lacks the other's outer family. When each
		// holds the other's outer family deeper the layers cannot meet.
		step.Strategy = Promoted

		switch {
		case !r.Has(lt.Family()):
			step.Family = lt.Family()
		case rok && !l.Has(rt.Family()):
			step.Family = rt.Family()
			intoLeft = true
		default:
			return lo, ro, res, FamilyMismatch.New("%s: %s and %s", k, l, r)
		}
	default:
		step.Family = rt.Family()
		step.Strategy = Promoted

		// l carries no layers, so it cannot hold the family deeper.
	}

	h, ok := reg.families[step.Family]
	if !ok {
		return lo, ro, res, Unsupported.New("no handler for family %q", step.Family)
	}

	rule, ok := reg.rules[key{k, step.Family}]
	if !ok {
		return lo, ro, res, Unsupported.New("no %s rule for family %q", k, step.Family)
	}

	if step.Strategy == Fallback {
		result, err := rule(k, l, r)
		if err != nil {
			return lo, ro, res, err
		}

		step.Lhs = lt
		step.Result = result
		*steps = append(*steps, step)

		li, ri, resi, err := reg.resolve(k, l.Inner(), r, steps)
		if err != nil {
			return lo, ro, res, err
		}

		return li.Wrap(lt), ri, resi.Wrap(result), nil
	}

	if step.Strategy == Promoted {
		if !intoLeft {
			pt, err := h.Promote(k, lt)
			if err != nil {
				return lo, ro, res, err
			}

			r = r.Wrap(pt)
		} else {
			pt, err := h.Promote(k, rt)
			if err != nil {
				return lo, ro, res, err
			}

			l = l.Wrap(pt)
		}
	}

	lt, _ = l.Outer()
	rt, _ = r.Outer()

	if !tag.Equal(lt, rt) {
		l, r, err = h.Align(k, l, r)
		if err != nil {
			return lo, ro, res, err
		}
	}

	result, err := rule(k, l, r)
	if err != nil {
		return lo, ro, res, err
	}

	step.Lhs, _ = l.Outer()
	step.Rhs, _ = r.Outer()
	step.Result = result

	*steps = append(*steps, step)

	li, ri, resi, err := reg.resolve(k, l.Inner(), r.Inner(), steps)
	if err != nil {
		return lo, ro, res, err
	}

	return li.Wrap(step.Lhs), ri.Wrap(step.Rhs), resi.Wrap(result), nil
}
