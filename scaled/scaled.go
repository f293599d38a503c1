package scaled

import (
	"github.com/zeebo/errs"

	"github.com/calebcase/fixed/control"
	"github.com/calebcase/fixed/integer"
)

// Error is the error class for this package.
var Error = errs.Class("scaled")

// Exponent size limits.
const (
	MaxExponent = 1<<17 - 1
	MinExponent = -MaxExponent
)

// Block is a scaled integer.
type Block struct {
	Value    integer.Int
	Exponent int
}

// exponentSize returns the number of 6 bit groups needed for the zigzag
// exponent z.
func exponentSize(z uint32) uint8 {
	switch {
	case z == 0:
		return 0b00
	case z < 1<<6:
		return 0b01
	case z < 1<<12:
		return 0b10
	}

	return 0b11
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (b Block) MarshalBinary() (data []byte, err error) {
	defer Error.WrapP(&err)

	if b.Exponent > MaxExponent || b.Exponent < MinExponent {
		return nil, Error.New("exponent out of range: %d", b.Exponent)
	}

	data, err = integer.BlockOf(b.Value).MarshalBinary()
	if err != nil {
		return nil, err
	}

	var z uint32
	if b.Exponent < 0 {
		z = uint32(-b.Exponent)<<1 | 1
	} else {
		z = uint32(b.Exponent) << 1
	}

	size := exponentSize(z)
	if size == 0b00 {
		return append(data, 0), nil
	}

	for i := int(size) - 1; i >= 0; i-- {
		data = append(data, (byte(z>>(6*i))&0b0011_1111)<<2)
	}

	data[len(data)-1] |= size

	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (b *Block) UnmarshalBinary(data []byte) (err error) {
	defer Error.WrapP(&err)

	if len(data) == 0 {
		return Error.New("empty block")
	}

	size := data[len(data)-1] & 0b0000_0011

	trailer := max(int(size), 1)
	if len(data) <= trailer {
		return Error.New("short block: %d bytes with exponent size %d", len(data), size)
	}

	var z uint32
	if size != 0b00 {
		for _, c := range data[len(data)-trailer:] {
			z = z<<6 | uint32(c>>2)
		}
	}

	v := &integer.Block{}

	err = v.UnmarshalBinary(data[:len(data)-trailer])
	if err != nil {
		return err
	}

	b.Value = v.Int()
	b.Exponent = int(z >> 1)

	if z&1 == 1 {
		b.Exponent = -b.Exponent
	}

	return nil
}

// Schema for a scaled integer.
type Schema struct {
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

// Decode reads the next block. ok is false for a null value.
func (d *Decoder) Decode() (b Block, ok bool, err error) {
	defer Error.WrapP(&err)

	if !d.cd.Next() {
		err = d.cd.Err()
		if err == nil {
			err = Error.New("unexpected end of input")
		}

		return Block{}, false, err
	}

	if d.cd.Type() == control.Null {
		if !d.schema.Nullable {
			return Block{}, false, Error.New("null value for non-nullable number")
		}

		return Block{}, false, nil
	}

	data, err := d.cd.Data()
	if err != nil {
		return Block{}, false, err
	}

	err = b.UnmarshalBinary(data)
	if err != nil {
		return Block{}, false, err
	}

	return b, true, nil
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

// Encode writes b.
func (e *Encoder) Encode(b Block) (err error) {
	defer Error.WrapP(&err)

	data, err := b.MarshalBinary()
	if err != nil {
		return err
	}

	return e.ce.Data(data)
}

// EncodeNull writes a null value.
func (e *Encoder) EncodeNull() (err error) {
	defer Error.WrapP(&err)

	if !e.schema.Nullable {
		return Error.New("null value for non-nullable number")
	}

	return e.ce.Null()
}
