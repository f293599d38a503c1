// Package dispatch resolves an operation on two composed operands into a
// plan: the operands as they must be aligned, the type of the result, and
// the policies used to produce it.
//
// Resolution walks the operands' layers from the outermost inwards. At each
// layer one family is reconciled using the first strategy that applies:
//
//	exact     both operands carry the identical tag
//	aligned   both carry a tag of the family with differing parameters
//	promoted  one operand carries no tag of the family and is treated as
//	          carrying the family's promoted tag
//	fallback  the operation is a shift and the amount carries no tags
//
// An operand carrying the family at a different nesting position than the
// other is a tag family mismatch. Once every layer is reconciled the core
// representations are combined by elastic growth, or by the common type when
// neither is elastic.
//
// Resolution has no side effects and never touches a rep, so an operation
// that cannot be resolved fails before any computation starts.
package dispatch
