// Package convert applies overflow and rounding policies when a value is
// narrowed or rescaled.
//
// Rounding is applied first, since it may discard fractional information,
// and the overflow policy is then applied to the rounded value. Bounds are
// compared as integer.Int values, which are wide enough for any pair of
// representations.
//
// Rounding policies:
//
//	native          floor for power-of-two divisors (arithmetic shift),
//	                toward zero otherwise
//	nearest         closest value, ties round the magnitude up
//	tie_to_pos_inf  closest value, ties toward positive infinity
//	neg_inf         floor
//
// Overflow policies:
//
//	native     wrap to the storage width
//	saturating clamp to the target's max or lowest
//	throwing   return a PositiveOverflow or NegativeOverflow error
//	trapping   log the direction and terminate the process
//	undefined  wrap without checking
package convert
