// Package scaled provides the compact binary form of a scaled integer.
//
// The equation for a scaled number is:
//
//	number = value * radix ^ exponent
//
// Only the value and the exponent are written. The radix, like the digit
// count and the policies of the number, is part of its declared shape and is
// supplied by the reader.
//
// # Encoding
//
// The block is laid out first by the unscaled integer value (with sign bit),
// then the exponent (with sign bit), and finally the last 2 bits are the
// exponent size.
//
// Decoding reads in the full block, discovers the exponent size from the
// last two bits, extracts the exponent (up to 3 bytes) and treats the
// remaining bytes as the value.
//
// All integers in the format are encoded big-endian with a trailing sign bit
// (aka zigzag). Each exponent byte carries 6 bits of the exponent in its high
// bits.
//
// The exponent size is encoded as two bits:
//
//	| 0 | 1 | Available Exponent |
//	|-------|--------------------|
//	| 0 . 0 | No Exponent        | 1 byte, zero.
//	| 0 . 1 | ±2^5 Exponent      | 1 byte
//	| 1 . 0 | ±2^11 Exponent     | 2 bytes
//	| 1 . 1 | ±2^17 Exponent     | 3 bytes
//	|-------|--------------------|
//	| 0 | 1 |
//
// # Examples
//
// 0.0001 at radix 10 (2 bytes)
//
//	| 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 |
//	|---------------|---------------|
//	| 0 . 0 . 1 | 0 . 0 . 0 . 1 | 0 | Data + 1 Control Block with value of +1.
//	|-------------------------------|
//	| 0 . 0 . 1 . 0 . 0 | 1 | 0 . 1 | ±2^5 Exponent of -4.
//	|---------------|---------------|
//	| 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 |
//
// 20.47 at radix 10 (3 bytes)
//
//	| 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 |
//	|---------------|---------------|
//	| 0 . 0 . 0 . 1 | 1 . 1 . 1 . 1 | Data + 2 Control Block with value of +2047.
//	| 1 . 1 . 1 . 1 . 1 . 1 . 1 | 0 |
//	|-------------------------------|
//	| 0 . 0 . 0 . 1 . 0 | 1 | 0 . 1 | ±2^5 Exponent of -2.
//	|---------------|---------------|
//	| 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 |
//
// 5 at radix 2 (2 bytes)
//
//	| 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 |
//	|---------------|---------------|
//	| 0 . 0 . 1 | 0 . 1 . 0 . 1 | 0 | Data + 1 Control Block with value of +5.
//	|-------------------------------|
//	| 0 . 0 . 0 . 0 . 0 . 0 | 0 . 0 | No Exponent.
//	|---------------|---------------|
//	| 0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 |
package scaled
