package number

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/calebcase/fixed/convert"
	"github.com/calebcase/fixed/scale"
	"github.com/calebcase/fixed/shape"
	"github.com/calebcase/fixed/traits"
)

// Schema declares a shape.
//
// The core is either a native storage kind or a digit count and signedness.
// A scale layer is added when an exponent or radix is given (radix defaults
// to 2), and policy layers when the policies are named. Layers are ordered
// scale outermost, then rounding, then overflow.
type Schema struct {
	Storage string `yaml:"storage,omitempty"`
	Digits  int    `yaml:"digits,omitempty"`
	Signed  bool   `yaml:"signed,omitempty"`
	Elastic bool   `yaml:"elastic,omitempty"`

	Exponent *int `yaml:"exponent,omitempty"`
	Radix    int  `yaml:"radix,omitempty"`

	Overflow *convert.Overflow `yaml:"overflow,omitempty"`
	Rounding *convert.Rounding `yaml:"rounding,omitempty"`

	Nullable bool `yaml:"nullable,omitempty"`
}

// Schemas are named schemas.
type Schemas map[string]Schema

// Shape returns the shape declared by s.
func (s Schema) Shape() (out shape.Shape, err error) {
	defer Error.WrapP(&err)

	switch {
	case s.Storage != "" && s.Digits != 0:
		return out, Error.New("both storage %q and digits %d given", s.Storage, s.Digits)
	case s.Storage != "":
		k, err := traits.ParseKind(s.Storage)
		if err != nil {
			return out, err
		}

		out = shape.Native(k)
		out.Elastic = s.Elastic
	default:
		out = shape.Shape{
			Rep:     traits.Rep{Digits: s.Digits, Signed: s.Signed},
			Elastic: s.Elastic,
		}
	}

	if s.Overflow != nil {
		out = out.Wrap(*s.Overflow)
	}

	if s.Rounding != nil {
		out = out.Wrap(*s.Rounding)
	}

	if s.Exponent != nil || s.Radix != 0 {
		t := scale.Tag{Radix: s.Radix}
		if t.Radix == 0 {
			t.Radix = 2
		}

		if s.Exponent != nil {
			t.Exponent = *s.Exponent
		}

		out = out.Wrap(t)
	}

	err = out.Validate()
	if err != nil {
		return shape.Shape{}, err
	}

	return out, nil
}

// SchemaOf returns the schema declaring s.
func SchemaOf(s shape.Shape) Schema {
	schema := Schema{
		Digits:  s.Rep.Digits,
		Signed:  s.Rep.Signed,
		Elastic: s.Elastic,
	}

	if k := s.Rep.Storage(); k.IsNative() && traits.Native(k) == s.Rep {
		schema.Storage = k.String()
		schema.Digits = 0
		schema.Signed = false
	}

	if !s.Rep.Bounded() {
		schema.Storage = traits.Big.String()
		schema.Digits = 0
		schema.Signed = false
	}

	if t, ok := s.Scale(); ok {
		e := t.Exponent
		schema.Exponent = &e
		schema.Radix = t.Radix
	}

	if o, ok := s.Overflow(); ok {
		schema.Overflow = &o
	}

	if r, ok := s.Rounding(); ok {
		schema.Rounding = &r
	}

	return schema
}

// LoadSchemas reads a YAML document mapping names to schemas. Unknown fields
// are rejected.
func LoadSchemas(r io.Reader) (schemas Schemas, err error) {
	defer Error.WrapP(&err)

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err = dec.Decode(&schemas)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	for name, s := range schemas {
		_, err = s.Shape()
		if err != nil {
			return nil, Error.New("schema %q: %v", name, err)
		}
	}

	if schemas == nil {
		schemas = Schemas{}
	}

	return schemas, nil
}

// Shape returns the shape of the schema named name.
func (s Schemas) Shape(name string) (out shape.Shape, err error) {
	schema, ok := s[name]
	if !ok {
		return out, Error.New("unknown schema: %q", name)
	}

	return schema.Shape()
}
