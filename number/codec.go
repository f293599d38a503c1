package number

import (
	"github.com/calebcase/fixed/control"
	"github.com/calebcase/fixed/integer"
	"github.com/calebcase/fixed/scaled"
	"github.com/calebcase/fixed/shape"
	"github.com/calebcase/fixed/traits"
)

// Encoder writes numbers converted to the shape of a schema. Schemas with a
// scale are written as scaled blocks carrying the exponent. Others are
// written as plain integer blocks.
type Encoder struct {
	shape shape.Shape
	se    *scaled.Encoder
	ie    *integer.Encoder
}

// NewEncoder returns a new encoder.
func NewEncoder(schema Schema, ce control.Encoder) (e *Encoder, err error) {
	s, err := schema.Shape()
	if err != nil {
		return nil, err
	}

	e = &Encoder{shape: s}

	if _, ok := s.Scale(); ok {
		e.se = scaled.NewEncoder(scaled.Schema{Nullable: schema.Nullable}, ce)
	} else {
		e.ie = integer.NewEncoder(integer.Schema{Signed: s.Rep.Signed, Nullable: schema.Nullable}, ce)
	}

	return e, nil
}

// Encode writes x.
func (e *Encoder) Encode(x Number) (err error) {
	defer Error.WrapP(&err)

	y, err := x.Convert(e.shape)
	if err != nil {
		return err
	}

	if e.ie != nil {
		return e.ie.Encode(y.rep)
	}

	return e.se.Encode(scaled.Block{
		Value:    y.rep,
		Exponent: y.shape.Exponent(),
	})
}

// EncodeNull writes a null value.
func (e *Encoder) EncodeNull() (err error) {
	defer Error.WrapP(&err)

	if e.ie != nil {
		return e.ie.EncodeNull()
	}

	return e.se.EncodeNull()
}

// Decoder reads numbers as values of the shape of a schema.
type Decoder struct {
	shape shape.Shape
	sd    *scaled.Decoder
	id    *integer.Decoder
}

// NewDecoder returns a new decoder.
func NewDecoder(schema Schema, cd control.Decoder) (d *Decoder, err error) {
	s, err := schema.Shape()
	if err != nil {
		return nil, err
	}

	d = &Decoder{shape: s}

	if _, ok := s.Scale(); ok {
		d.sd = scaled.NewDecoder(scaled.Schema{Nullable: schema.Nullable}, cd)
	} else {
		d.id = integer.NewDecoder(integer.Schema{Signed: s.Rep.Signed, Nullable: schema.Nullable}, cd)
	}

	return d, nil
}

// Decode reads the next number. ok is false for a null value. A value
// written with a different exponent is converted to the schema's shape.
func (d *Decoder) Decode() (x Number, ok bool, err error) {
	defer Error.WrapP(&err)

	if d.id != nil {
		v, ok, err := d.id.Decode()
		if err != nil || !ok {
			return Number{}, ok, err
		}

		x, err = exact(v).Convert(d.shape)
		if err != nil {
			return Number{}, false, err
		}

		return x, true, nil
	}

	b, ok, err := d.sd.Decode()
	if err != nil || !ok {
		return Number{}, ok, err
	}

	t, _ := d.shape.Scale()
	src := shape.Shape{Rep: traits.Fits(b.Value), Elastic: true}.Wrap(t.WithExponent(b.Exponent))

	x, err = Number{shape: src, rep: b.Value}.Convert(d.shape)
	if err != nil {
		return Number{}, false, err
	}

	return x, true, nil
}
