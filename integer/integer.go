// Package integer provides the rep values arithmetic is carried out on and
// their compact binary form.
package integer

import (
	"math/big"

	"github.com/zeebo/errs"

	"github.com/calebcase/fixed/control"
)

// Error is the error class for this package.
var Error = errs.Class("integer")

// ErrDivideByZero is returned when a quotient or remainder is taken with a
// zero divisor.
var ErrDivideByZero = Error.New("division by zero")

// Block is a signed integer number in sign-magnitude form.
type Block struct {
	Value    []byte
	Negative bool
}

// BlockOf returns the block holding x.
func BlockOf(x Int) Block {
	b := x.bigInt()

	data := new(big.Int).Abs(b).Bytes()
	if len(data) == 0 {
		data = []byte{0}
	}

	return Block{
		Value:    data,
		Negative: b.Sign() < 0,
	}
}

// Int returns the value of the block.
func (b Block) Int() Int {
	i := new(big.Int).SetBytes(b.Value)
	if b.Negative {
		i.Neg(i)
	}

	return norm(i)
}

// MarshalBinary implements encoding.BinaryMarshaler. The sign is stored in
// the trailing bit (zigzag).
func (b Block) MarshalBinary() (data []byte, err error) {
	i := new(big.Int).SetBytes(b.Value)

	i.Lsh(i, 1)
	if b.Negative {
		i.SetBit(i, 0, 1)
	}

	data = i.Bytes()

	// Note: big.Int encodes zero as an empty byte array, but we
	// desire zero to be an actual zero byte.
	if len(data) == 0 {
		data = []byte{0}
	}

	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *Block) UnmarshalBinary(data []byte) (err error) {
	if len(data) == 0 {
		return Error.New("empty block")
	}

	i := new(big.Int).SetBytes(data)

	b.Negative = i.Bit(0) == 1
	i.Rsh(i, 1)

	data = i.Bytes()

	// Note: big.Int encodes zero as an empty byte array, but we
	// desire zero to be an actual zero byte.
	if len(data) == 0 {
		data = []byte{0}
	}

	b.Value = data

	return nil
}

// Schema for an integer.
type Schema struct {
	Signed bool

	Nullable bool
}

// Decoder is a decoder.
type Decoder struct {
	schema Schema
	cd     control.Decoder
}

// NewDecoder returns a new decoder.
func NewDecoder(schema Schema, cd control.Decoder) *Decoder {
	return &Decoder{
		schema: schema,
		cd:     cd,
	}
}

// Decode reads the next integer. ok is false for a null value.
func (d *Decoder) Decode() (x Int, ok bool, err error) {
	defer Error.WrapP(&err)

	if !d.cd.Next() {
		err = d.cd.Err()
		if err == nil {
			err = Error.New("unexpected end of input")
		}

		return Zero, false, err
	}

	if d.cd.Type() == control.Null {
		if !d.schema.Nullable {
			return Zero, false, Error.New("null value for non-nullable integer")
		}

		return Zero, false, nil
	}

	data, err := d.cd.Data()
	if err != nil {
		return Zero, false, err
	}

	if !d.schema.Signed {
		return norm(new(big.Int).SetBytes(data)), true, nil
	}

	b := &Block{}

	err = b.UnmarshalBinary(data)
	if err != nil {
		return Zero, false, err
	}

	return b.Int(), true, nil
}

// Encoder is an encoder.
type Encoder struct {
	schema Schema
	ce     control.Encoder
}

// NewEncoder returns a new encoder.
func NewEncoder(schema Schema, ce control.Encoder) *Encoder {
	return &Encoder{
		schema: schema,
		ce:     ce,
	}
}

// Encode writes x.
func (e *Encoder) Encode(x Int) (err error) {
	defer Error.WrapP(&err)

	if !e.schema.Signed && x.Sign() < 0 {
		return Error.New("negative value for unsigned integer: %s", x)
	}

	var data []byte

	if e.schema.Signed {
		data, err = BlockOf(x).MarshalBinary()
		if err != nil {
			return err
		}
	} else {
		data = x.bigInt().Bytes()
		if len(data) == 0 {
			data = []byte{0}
		}
	}

	return e.ce.Data(data)
}

// EncodeNull writes a null value.
func (e *Encoder) EncodeNull() (err error) {
	defer Error.WrapP(&err)

	if !e.schema.Nullable {
		return Error.New("null value for non-nullable integer")
	}

	return e.ce.Null()
}
