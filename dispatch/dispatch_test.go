package dispatch_test

import (
	"fmt"
	"testing"

	"github.com/calebcase/oops"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/dispatch"
	"github.com/calebcase/fixed/elastic"
	"github.com/calebcase/fixed/op"
	"github.com/calebcase/fixed/scale"
	"github.com/calebcase/fixed/shape"
	"github.com/calebcase/fixed/traits"
)

func el(digits int, signed bool) shape.Shape {
	return shape.ElasticOf(digits, signed)
}

func TestResolve(t *testing.T) {
	type TC struct {
		name     string
		k        op.Kind
		lhs, rhs shape.Shape

		lo, ro     shape.Shape
		result     shape.Shape
		strategies []dispatch.Strategy
		rounding   convert.Rounding
		overflow   convert.Overflow

		Mark error
	}

	unit := shape.ElasticOf(elastic.Unit.Digits, elastic.Unit.Signed)

	tcs := []TC{
		{
			name: "elastic add",
			k:    op.Add, lhs: el(4, false), rhs: el(3, false),
			lo: el(4, false), ro: el(3, false),
			result: el(5, false),
		},
		{
			name: "elastic mul",
			k:    op.Mul, lhs: el(4, false), rhs: el(3, false),
			lo: el(4, false), ro: el(3, false),
			result: el(7, false),
		},
		{
			name: "native common",
			k:    op.Add, lhs: shape.Of[int32](), rhs: shape.Of[uint32](),
			lo: shape.Of[int32](), ro: shape.Of[uint32](),
			result: shape.Of[int64](),
		},
		{
			name: "mixed elastic",
			k:    op.Sub, lhs: shape.Of[uint8](), rhs: el(3, false),
			lo: shape.Of[uint8](), ro: el(3, false),
			result: el(8, true),
		},
		{
			name: "scale exact",
			k:    op.Add, lhs: el(15, true).Wrap(scale.Binary(-4)), rhs: el(15, true).Wrap(scale.Binary(-4)),
			lo: el(15, true).Wrap(scale.Binary(-4)), ro: el(15, true).Wrap(scale.Binary(-4)),
			result:     el(16, true).Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Exact},
		},
		{
			name: "scale aligned",
			k:    op.Add, lhs: el(15, true).Wrap(scale.Binary(-4)), rhs: el(15, true).Wrap(scale.Binary(-1)),
			lo: el(15, true).Wrap(scale.Binary(-4)), ro: el(18, true).Wrap(scale.Binary(-4)),
			result:     el(19, true).Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Aligned},
		},
		{
			name: "scale aligned decimal",
			k:    op.Cmp, lhs: el(10, false).Wrap(scale.Decimal(0)), rhs: el(10, false).Wrap(scale.Decimal(-2)),
			lo: el(17, false).Wrap(scale.Decimal(-2)), ro: el(10, false).Wrap(scale.Decimal(-2)),
			result:     el(17, false).Wrap(scale.Decimal(-2)),
			strategies: []dispatch.Strategy{dispatch.Aligned},
		},
		{
			name: "scale aligned native",
			k:    op.Add, lhs: shape.Of[int32]().Wrap(scale.Binary(-4)), rhs: shape.Of[int32]().Wrap(scale.Binary(-1)),
			lo: shape.Of[int32]().Wrap(scale.Binary(-4)), ro: shape.Of[int32]().Wrap(scale.Binary(-4)),
			result:     shape.Of[int32]().Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Aligned},
		},
		{
			name: "scale mul",
			k:    op.Mul, lhs: el(4, false).Wrap(scale.Binary(-4)), rhs: el(3, false).Wrap(scale.Binary(-3)),
			lo: el(4, false).Wrap(scale.Binary(-4)), ro: el(3, false).Wrap(scale.Binary(-3)),
			result:     el(7, false).Wrap(scale.Binary(-7)),
			strategies: []dispatch.Strategy{dispatch.Aligned},
		},
		{
			name: "scale div",
			k:    op.Div, lhs: el(8, true).Wrap(scale.Binary(-4)), rhs: el(3, false).Wrap(scale.Binary(-1)),
			lo: el(8, true).Wrap(scale.Binary(-4)), ro: el(3, false).Wrap(scale.Binary(-1)),
			result:     el(8, true).Wrap(scale.Binary(-3)),
			strategies: []dispatch.Strategy{dispatch.Aligned},
		},
		{
			name: "scale quo",
			k:    op.Quo, lhs: el(15, true).Wrap(scale.Binary(-8)), rhs: el(15, true).Wrap(scale.Binary(-8)),
			lo: el(15, true).Wrap(scale.Binary(-8)), ro: el(15, true).Wrap(scale.Binary(-8)),
			result:     el(30, true).Wrap(scale.Binary(-15)),
			strategies: []dispatch.Strategy{dispatch.Exact},
		},
		{
			name: "scale promoted rhs",
			k:    op.Add, lhs: el(15, true).Wrap(scale.Binary(-4)), rhs: el(3, false),
			lo: el(15, true).Wrap(scale.Binary(-4)), ro: el(7, false).Wrap(scale.Binary(-4)),
			result:     el(16, true).Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Promoted},
		},
		{
			name: "scale promoted lhs",
			k:    op.Mul, lhs: shape.Of[int8](), rhs: shape.Of[int16]().Wrap(scale.Decimal(-2)),
			lo: shape.Of[int8]().Wrap(scale.Decimal(0)), ro: shape.Of[int16]().Wrap(scale.Decimal(-2)),
			result:     shape.Of[int16]().Wrap(scale.Decimal(-2)),
			strategies: []dispatch.Strategy{dispatch.Promoted},
		},
		{
			name: "overflow promoted",
			k:    op.Add, lhs: shape.Of[int8]().Wrap(convert.Saturating), rhs: shape.Of[int8](),
			lo: shape.Of[int8]().Wrap(convert.Saturating), ro: shape.Of[int8]().Wrap(convert.Saturating),
			result:     shape.Of[int8]().Wrap(convert.Saturating),
			strategies: []dispatch.Strategy{dispatch.Promoted},
			overflow:   convert.Saturating,
		},
		{
			name: "nested",
			k:    op.Add,
			lhs:  el(7, true).Wrap(convert.Nearest).Wrap(scale.Binary(-4)),
			rhs:  el(7, true).Wrap(convert.Nearest),
			lo:   el(7, true).Wrap(convert.Nearest).Wrap(scale.Binary(-4)),
			ro:   el(11, true).Wrap(convert.Nearest).Wrap(scale.Binary(-4)),

			result:     el(12, true).Wrap(convert.Nearest).Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Promoted, dispatch.Exact},
			rounding:   convert.Nearest,
		},
		{
			name: "orthogonal",
			k:    op.Mul,
			lhs:  shape.Of[int16]().Wrap(convert.Throwing),
			rhs:  shape.Of[int16]().Wrap(scale.Binary(-2)),
			lo:   shape.Of[int16]().Wrap(scale.Binary(0)).Wrap(convert.Throwing),
			ro:   shape.Of[int16]().Wrap(scale.Binary(-2)).Wrap(convert.Throwing),

			result:     shape.Of[int16]().Wrap(scale.Binary(-2)).Wrap(convert.Throwing),
			strategies: []dispatch.Strategy{dispatch.Promoted, dispatch.Promoted},
			overflow:   convert.Throwing,
		},
		{
			name:       "promoted into lhs",
			k:          op.Add,
			lhs:        shape.Of[int16]().Wrap(convert.Saturating),
			rhs:        shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			lo:         shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			ro:         shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			result:     shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Promoted, dispatch.Exact},
			overflow:   convert.Saturating,
		},
		{
			name:       "promoted into rhs",
			k:          op.Add,
			lhs:        shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			rhs:        shape.Of[int16]().Wrap(convert.Saturating),
			lo:         shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			ro:         shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			result:     shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Promoted, dispatch.Exact},
			overflow:   convert.Saturating,
		},
		{
			name: "shift",
			k:    op.Shl, lhs: shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)), rhs: shape.Of[uint8](),
			lo:         shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			ro:         shape.Of[uint8](),
			result:     shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Fallback, dispatch.Fallback},
			overflow:   convert.Saturating,
		},
		{
			name: "inc native",
			k:    op.Inc, lhs: shape.Of[int16]().Wrap(scale.Binary(-4)), rhs: unit,
			lo:         shape.Of[int16]().Wrap(scale.Binary(-4)),
			ro:         el(5, false).Wrap(scale.Binary(-4)),
			result:     shape.Of[int16]().Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Promoted},
		},
		{
			name: "inc elastic",
			k:    op.Inc, lhs: el(2, false).Wrap(scale.Binary(-4)), rhs: unit,
			lo:         el(2, false).Wrap(scale.Binary(-4)),
			ro:         el(5, false).Wrap(scale.Binary(-4)),
			result:     el(6, false).Wrap(scale.Binary(-4)),
			strategies: []dispatch.Strategy{dispatch.Promoted},
		},
		{
			name: "dec elastic",
			k:    op.Dec, lhs: el(7, false), rhs: unit,
			lo: el(7, false), ro: unit,
			result: el(7, true),
			Mark:   oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			p, err := dispatch.Resolve(tc.k, tc.lhs, tc.rhs)
			require.NoError(t, err)

			require.Empty(t, cmp.Diff(tc.lo, p.Lhs), "lhs")
			require.Empty(t, cmp.Diff(tc.ro, p.Rhs), "rhs")
			require.Empty(t, cmp.Diff(tc.result, p.Result), "result")

			strategies := []dispatch.Strategy{}
			for _, s := range p.Steps {
				strategies = append(strategies, s.Strategy)
			}

			if tc.strategies == nil {
				tc.strategies = []dispatch.Strategy{}
			}

			require.Equal(t, tc.strategies, strategies)
			require.Equal(t, tc.rounding, p.Rounding)
			require.Equal(t, tc.overflow, p.Overflow)
			require.Equal(t, tc.k, p.Op)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	type TC struct {
		name     string
		k        op.Kind
		lhs, rhs shape.Shape
		class    func(err error) bool
	}

	tcs := []TC{
		{
			name: "radix",
			k:    op.Add, lhs: shape.Of[int8]().Wrap(scale.Binary(0)), rhs: shape.Of[int8]().Wrap(scale.Decimal(0)),
			class: scale.RadixMismatch.Has,
		},
		{
			name: "radix mul",
			k:    op.Mul, lhs: shape.Of[int8]().Wrap(scale.Binary(0)), rhs: shape.Of[int8]().Wrap(scale.Decimal(-1)),
			class: scale.RadixMismatch.Has,
		},
		{
			name: "policy",
			k:    op.Add, lhs: shape.Of[int8]().Wrap(convert.Saturating), rhs: shape.Of[int8]().Wrap(convert.Throwing),
			class: dispatch.Unsupported.Has,
		},
		{
			name: "rounding",
			k:    op.Div, lhs: shape.Of[int8]().Wrap(convert.Nearest), rhs: shape.Of[int8]().Wrap(convert.NegInf),
			class: dispatch.Unsupported.Has,
		},
		{
			name:  "family",
			k:     op.Add,
			lhs:   shape.Of[int8]().Wrap(scale.Binary(0)).Wrap(convert.Saturating),
			rhs:   shape.Of[int8]().Wrap(convert.Saturating).Wrap(scale.Binary(0)),
			class: dispatch.FamilyMismatch.Has,
		},
		{
			name: "shift amount",
			k:    op.Shr, lhs: shape.Of[int8](), rhs: shape.Of[int8]().Wrap(scale.Binary(0)),
			class: dispatch.Unsupported.Has,
		},
		{
			name: "operation",
			k:    op.Invalid, lhs: shape.Of[int8](), rhs: shape.Of[int8](),
			class: dispatch.Error.Has,
		},
		{
			name: "shape",
			k:    op.Add, lhs: shape.ElasticOf(0, false), rhs: shape.Of[int8](),
			class: dispatch.Error.Has,
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			p, err := dispatch.Resolve(tc.k, tc.lhs, tc.rhs)
			require.Error(t, err)
			require.True(t, tc.class(err), err.Error())
			require.Empty(t, p.Steps)
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := dispatch.NewRegistry(dispatch.Combine)

	// Without handlers every tagged operand is unsupported.
	_, err := reg.Resolve(op.Add, shape.Of[int8]().Wrap(scale.Binary(0)), shape.Of[int8]())
	require.Error(t, err)
	require.True(t, dispatch.Unsupported.Has(err))

	p, err := reg.Resolve(op.Add, el(3, false), el(3, false))
	require.NoError(t, err)
	require.Equal(t, traits.Rep{Digits: 4, Signed: false}, p.Result.Rep)
	require.Contains(t, p.String(), "add(")

	require.Same(t, dispatch.Default(), dispatch.Default())
}

func TestPolicies(t *testing.T) {
	from := shape.Of[int8]().Wrap(convert.Saturating).Wrap(convert.Nearest)
	to := shape.Of[int8]().Wrap(convert.Throwing)

	r, o := dispatch.Policies(from, to)
	require.Equal(t, convert.Nearest, r)
	require.Equal(t, convert.Throwing, o)

	r, o = dispatch.Policies(shape.Of[int8](), shape.Of[int8]())
	require.Equal(t, convert.NativeRounding, r)
	require.Equal(t, convert.NativeOverflow, o)
}

func TestResolveOperandOrder(t *testing.T) {
	type TC struct {
		name string
		a, b shape.Shape
		err  bool

		Mark error
	}

	tcs := []TC{
		{
			name: "scale over policy",
			a:    shape.Of[int16]().Wrap(convert.Saturating).Wrap(scale.Binary(-4)),
			b:    shape.Of[int16]().Wrap(convert.Saturating),
		},
		{
			name: "disjoint",
			a:    shape.Of[int16]().Wrap(convert.Throwing),
			b:    shape.Of[int16]().Wrap(scale.Binary(-2)),
		},
		{
			name: "rounding over scale",
			a:    el(7, true).Wrap(scale.Binary(-1)).Wrap(convert.Nearest),
			b:    el(5, false).Wrap(scale.Binary(-3)),
		},
		{
			name: "nested policies",
			a:    shape.Of[int32]().Wrap(convert.Nearest).Wrap(convert.Saturating),
			b:    shape.Of[int32]().Wrap(convert.Nearest),
		},
		{
			name: "crossed",
			a:    shape.Of[int8]().Wrap(scale.Binary(0)).Wrap(convert.Saturating),
			b:    shape.Of[int8]().Wrap(convert.Saturating).Wrap(scale.Binary(0)),
			err:  true,
			Mark: oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			for _, k := range []op.Kind{op.Add, op.Mul, op.Cmp} {
				ab, err := dispatch.Resolve(k, tc.a, tc.b)
				ba, rerr := dispatch.Resolve(k, tc.b, tc.a)

				if tc.err {
					require.True(t, dispatch.FamilyMismatch.Has(err), k.String())
					require.True(t, dispatch.FamilyMismatch.Has(rerr), k.String())

					continue
				}

				require.NoError(t, err, k.String())
				require.NoError(t, rerr, k.String())

				require.Equal(t, ab.Result.Rep, ba.Result.Rep, k.String())
				require.Equal(t, ab.Result.Exponent(), ba.Result.Exponent(), k.String())
				require.Equal(t, ab.Overflow, ba.Overflow, k.String())
				require.Equal(t, ab.Rounding, ba.Rounding, k.String())
			}
		})
	}
}
