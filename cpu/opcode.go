package cpu

// Op is a 3-bit operation selector stored in the low bits of a code
// memory byte. The upper 5 bits of an opcode byte are unused; a byte
// following OP_JZ or OP_JMP is not an opcode but an 8-bit jump-distance
// literal.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_INC  = Op(0) // +
	OP_DEC  = Op(1) // -
	OP_NEXT = Op(2) // >
	OP_PREV = Op(3) // <
	OP_PUT  = Op(4) // .
	OP_GET  = Op(5) // ,
	OP_JZ   = Op(6) // [
	OP_JMP  = Op(7) // ]
)

// OP_MASK selects the opcode bits of a code memory byte.
const OP_MASK = 0b111

// DecodeOp returns the operation encoded in a code memory byte. Every
// byte decodes to some operation; a jump-distance literal reached as if
// it were an opcode executes whatever its low bits select.
func DecodeOp(word byte) Op {
	return Op(word & OP_MASK)
}

// Target selects which memory a load-mode write addresses.
type Target int

//go:generate go tool stringer -linecomment -type=Target
const (
	TARGET_CODE = Target(0) // code
	TARGET_DATA = Target(1) // data
)
