package fixed_test

import (
	"fmt"
	"testing"

	"github.com/calebcase/oops"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/fixed"
	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/shape"
)

func TestConstructors(t *testing.T) {
	type TC struct {
		shape  shape.Shape
		String string

		Mark error
	}

	scaled, err := fixed.ScaledInteger(shape.Of[uint32](), 3, 10)
	require.NoError(t, err)

	tcs := []TC{
		{
			shape:  fixed.ElasticInteger(12, true),
			String: "elastic<12,signed>",
		},
		{
			shape:  scaled,
			String: "scale<3,10>(uint32)",
		},
		{
			shape:  fixed.OverflowInteger(fixed.OverflowInteger(shape.Of[int8](), convert.Throwing), convert.Saturating),
			String: "overflow<saturating>(int8)",
		},
		{
			shape:  fixed.RoundingInteger(fixed.FixedPoint[int32](-16), convert.NegInf),
			String: "rounding<neg_inf>(scale<-16,2>(int32))",
		},
		{
			shape:  fixed.ElasticScaledInteger(7, -3, false),
			String: "scale<-3,2>(elastic<7,unsigned>)",
			Mark:   oops.New("unexpected"),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.String), func(t *testing.T) {
			require.NoError(t, tc.shape.Validate())
			require.Equal(t, tc.String, tc.shape.String())
		})
	}

	_, err = fixed.ScaledInteger(shape.Of[int8](), 0, 1)
	require.Error(t, err)

	_, err = fixed.ScaledInteger(scaled, 0, 10)
	require.Error(t, err)
}
