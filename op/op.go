// Package op enumerates the arithmetic operation kinds understood by the
// resolution protocol.
package op

// Kind is an operation kind.
type Kind uint8

// Operation Kinds
const (
	Invalid Kind = iota
	Add
	Sub
	Mul
	Div
	Quo
	Mod
	Cmp
	And
	Or
	Xor
	Shl
	Shr
	Inc
	Dec
)

var names = [...]string{
	Invalid: "invalid",
	Add:     "add",
	Sub:     "sub",
	Mul:     "mul",
	Div:     "div",
	Quo:     "quo",
	Mod:     "mod",
	Cmp:     "cmp",
	And:     "and",
	Or:      "or",
	Xor:     "xor",
	Shl:     "shl",
	Shr:     "shr",
	Inc:     "inc",
	Dec:     "dec",
}

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}

	return "invalid"
}

// Valid returns true if k names a known operation.
func (k Kind) Valid() bool {
	return k > Invalid && int(k) < len(names)
}

// Promotes returns true if an untagged right operand should be treated as if
// it carried the left operand's tag. Shift amounts are never promoted.
func (k Kind) Promotes() bool {
	switch k {
	case Shl, Shr:
		return false
	}

	return true
}

// Aligns returns true if the operation requires both operands to share an
// exponent before the reps are combined.
func (k Kind) Aligns() bool {
	switch k {
	case Add, Sub, Cmp, And, Or, Xor, Mod, Inc, Dec:
		return true
	}

	return false
}

// Divides returns true for the operations that produce a quotient.
func (k Kind) Divides() bool {
	return k == Div || k == Quo
}

// Kinds lists every valid operation kind.
func Kinds() []Kind {
	ks := make([]Kind, 0, len(names)-1)
	for k := Add; int(k) < len(names); k++ {
		ks = append(ks, k)
	}

	return ks
}
