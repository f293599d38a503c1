/*
Package fixed is an arithmetic engine for composable fixed-point and elastic
integer types.

A type is a core representation (a native integer or an elastic integer of
some digit count) wrapped in behavior layers: a scale giving the exponent
and radix of the value, an overflow policy and a rounding policy. Types are
described by shape.Shape values and numbers by number.Number values.

Layers compose in any order and combine by family. When two numbers meet in
an operation the dispatch package resolves a plan before any value is
touched: like layers combine, an untagged operand is promoted into the
other's layer, and differing exponents are aligned to the finer one.
Elastic results grow so that no pair of representable operands overflows.

	price := fixed.ElasticScaledInteger(31, -2, true)
	x, _ := number.FromFloat64(price, 19.99)
	y, _ := x.Mul(x)

The constructors in this package cover the common compositions. Anything
else is built directly with shape.Shape.Wrap.

Packages:

	traits    digit counts and signedness of representations
	tag       behavior tag families
	elastic   result widths for elastic arithmetic
	scale     exponents, radices and alignment
	convert   overflow and rounding policies
	shape     composed type descriptors
	dispatch  operation resolution
	number    values and execution
	scaled    wire format for scaled integers
*/
package fixed
