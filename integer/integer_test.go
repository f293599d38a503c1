package integer

import (
	"bytes"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calebcase/fixed/control"
)

func TestMarshalUnmarshal(t *testing.T) {
	type TC struct {
		name string
		blk  *Block
		data []byte
	}

	tcs := []TC{
		{
			name: "+0",
			blk: &Block{
				Value: []byte{
					0b0000_0000,
				},
				Negative: false,
			},
			data: []byte{
				0b0000_0000,
			},
		},
		{
			name: "+1",
			blk: &Block{
				Value: []byte{
					0b0000_0001,
				},
				Negative: false,
			},
			data: []byte{
				0b0000_0010,
			},
		},
		{
			name: "-1",
			blk: &Block{
				Value: []byte{
					0b0000_0001,
				},
				Negative: true,
			},
			data: []byte{
				0b0000_0011,
			},
		},
		{
			name: "-127",
			blk: &Block{
				Value: []byte{
					0b0111_1111,
				},
				Negative: true,
			},
			data: []byte{
				0b1111_1111,
			},
		},
		{
			name: "+32767",
			blk: &Block{
				Value: []byte{
					0b0111_1111,
					0b1111_1111,
				},
				Negative: false,
			},
			data: []byte{
				0b1111_1111,
				0b1111_1110,
			},
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			t.Run("marshal", func(t *testing.T) {
				data, err := tc.blk.MarshalBinary()
				require.NoError(t, err)
				require.Equal(t, tc.data, data)
			})

			t.Run("unmarshal", func(t *testing.T) {
				blk := &Block{}
				err := blk.UnmarshalBinary(tc.data)
				require.NoError(t, err)
				require.Equal(t, tc.blk, blk)

				// These checks ensure that our test case name matches the value.
				i := new(big.Int)
				err = i.UnmarshalText([]byte(tc.name))
				require.NoError(t, err)
				require.Equal(t, 0, i.Cmp(blk.Int().Big()))
				require.Equal(t, *tc.blk, BlockOf(FromBig(i)))
			})
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	type TC struct {
		name   string
		schema Schema
		value  Int
		data   []byte
	}

	huge, ok := new(big.Int).SetString("-340282366920938463463374607431768211455", 10)
	require.True(t, ok)

	tcs := []TC{
		{
			name:   "0",
			schema: Schema{},
			value:  New(0),
			data:   []byte{0b1000_0000},
		},
		{
			name:   "1",
			schema: Schema{},
			value:  New(1),
			data:   []byte{0b1000_0001},
		},
		{
			name:   "+1",
			schema: Schema{Signed: true},
			value:  New(1),
			data:   []byte{0b1000_0010},
		},
		{
			name:   "-1",
			schema: Schema{Signed: true},
			value:  New(-1),
			data:   []byte{0b1000_0011},
		},
		{
			name:   "-4095",
			schema: Schema{Signed: true},
			value:  New(-4095),
			data:   []byte{0b0011_1111, 0b1111_1111},
		},
		{
			name:   "255",
			schema: Schema{},
			value:  New(255),
			data:   []byte{0b0100_0000, 0b1111_1111},
		},
		{
			name:   "-(2^128-1)",
			schema: Schema{Signed: true},
			value:  FromBig(huge),
			data: append(
				[]byte{0b0101_0000, 0b0000_0001},
				append(bytes.Repeat([]byte{0b1111_1111}, 15), 0b1111_1111)...,
			),
		},
	}

	for i, tc := range tcs {
		t.Run(fmt.Sprintf("[%d]%s", i, tc.name), func(t *testing.T) {
			buf := bytes.NewBuffer(nil)

			t.Run("encode", func(t *testing.T) {
				enc := NewEncoder(tc.schema, control.NewEncoder(buf))
				err := enc.Encode(tc.value)
				require.NoError(t, err)
				require.Equal(t, tc.data, buf.Bytes())
			})

			t.Run("decode", func(t *testing.T) {
				dec := NewDecoder(tc.schema, control.NewDecoder(buf))
				value, ok, err := dec.Decode()
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, 0, tc.value.Cmp(value), "%s != %s", tc.value, value)
			})
		})
	}

	t.Run("null", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		schema := Schema{Signed: true, Nullable: true}

		err := NewEncoder(schema, control.NewEncoder(buf)).EncodeNull()
		require.NoError(t, err)

		_, ok, err := NewDecoder(schema, control.NewDecoder(buf)).Decode()
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("null not allowed", func(t *testing.T) {
		err := NewEncoder(Schema{}, control.NewEncoder(&bytes.Buffer{})).EncodeNull()
		require.Error(t, err)
		require.True(t, Error.Has(err))
	})

	t.Run("negative unsigned", func(t *testing.T) {
		err := NewEncoder(Schema{}, control.NewEncoder(&bytes.Buffer{})).Encode(New(-3))
		require.Error(t, err)
	})
}

func BenchmarkEncode(b *testing.B) {
	buf := bytes.NewBuffer(nil)
	enc := NewEncoder(Schema{Signed: true}, control.NewEncoder(buf))

	x := New(-0x7ffff)

	for n := 0; n < b.N; n++ {
		err := enc.Encode(x)
		if err != nil {
			b.Fatalf("%+v", err)
		}
	}
}
