package aml

// AMLOpcode describes an AML opcode. While AML supports 256 opcodes, some of
// them are specified using a combination of an extension prefix and a code. To
// map each opcode into a single unique value the encoder uses an uint16
// representation of the opcode values where extended opcodes are stored as
// 0xff + code.
type AMLOpcode uint16

const (
	// Regular opcode list
	OpZero             = AMLOpcode(0x00)
	OpOne              = AMLOpcode(0x01)
	OpName             = AMLOpcode(0x08)
	OpBytePrefix       = AMLOpcode(0x0a)
	OpWordPrefix       = AMLOpcode(0x0b)
	OpDwordPrefix      = AMLOpcode(0x0c)
	OpStringPrefix     = AMLOpcode(0x0d)
	OpQwordPrefix      = AMLOpcode(0x0e)
	OpScope            = AMLOpcode(0x10)
	OpBuffer           = AMLOpcode(0x11)
	OpPackage          = AMLOpcode(0x12)
	OpVarPackage       = AMLOpcode(0x13)
	OpMethod           = AMLOpcode(0x14)
	OpLocal0           = AMLOpcode(0x60)
	OpLocal7           = AMLOpcode(0x67)
	OpArg0             = AMLOpcode(0x68)
	OpArg6             = AMLOpcode(0x6e)
	OpStore            = AMLOpcode(0x70)
	OpRefOf            = AMLOpcode(0x71)
	OpAdd              = AMLOpcode(0x72)
	OpConcat           = AMLOpcode(0x73)
	OpSubtract         = AMLOpcode(0x74)
	OpIncrement        = AMLOpcode(0x75)
	OpDecrement        = AMLOpcode(0x76)
	OpMultiply         = AMLOpcode(0x77)
	OpDivide           = AMLOpcode(0x78)
	OpShiftLeft        = AMLOpcode(0x79)
	OpShiftRight       = AMLOpcode(0x7a)
	OpAnd              = AMLOpcode(0x7b)
	OpNand             = AMLOpcode(0x7c)
	OpOr               = AMLOpcode(0x7d)
	OpNor              = AMLOpcode(0x7e)
	OpXor              = AMLOpcode(0x7f)
	OpNot              = AMLOpcode(0x80)
	OpDerefOf          = AMLOpcode(0x83)
	OpMod              = AMLOpcode(0x85)
	OpNotify           = AMLOpcode(0x86)
	OpSizeOf           = AMLOpcode(0x87)
	OpIndex            = AMLOpcode(0x88)
	OpCreateDWordField = AMLOpcode(0x8a)
	OpCreateWordField  = AMLOpcode(0x8b)
	OpCreateByteField  = AMLOpcode(0x8c)
	OpCreateBitField   = AMLOpcode(0x8d)
	OpCreateQWordField = AMLOpcode(0x8f)
	OpLand             = AMLOpcode(0x90)
	OpLor              = AMLOpcode(0x91)
	OpLnot             = AMLOpcode(0x92)
	OpLEqual           = AMLOpcode(0x93)
	OpLGreater         = AMLOpcode(0x94)
	OpLLess            = AMLOpcode(0x95)
	OpToBuffer         = AMLOpcode(0x96)
	OpToInteger        = AMLOpcode(0x99)
	OpContinue         = AMLOpcode(0x9f)
	OpIf               = AMLOpcode(0xa0)
	OpElse             = AMLOpcode(0xa1)
	OpWhile            = AMLOpcode(0xa2)
	OpNoop             = AMLOpcode(0xa3)
	OpReturn           = AMLOpcode(0xa4)
	OpBreak            = AMLOpcode(0xa5)
	OpOnes             = AMLOpcode(0xff)
	// Extended opcodes
	OpMutex       = AMLOpcode(0xff + 0x01)
	OpCreateField = AMLOpcode(0xff + 0x13)
	OpStall       = AMLOpcode(0xff + 0x21)
	OpSleep       = AMLOpcode(0xff + 0x22)
	OpAcquire     = AMLOpcode(0xff + 0x23)
	OpRelease     = AMLOpcode(0xff + 0x27)
	OpDebug       = AMLOpcode(0xff + 0x31)
	OpOpRegion    = AMLOpcode(0xff + 0x80)
	OpField       = AMLOpcode(0xff + 0x81)
	OpDevice      = AMLOpcode(0xff + 0x82)
	OpPowerRes    = AMLOpcode(0xff + 0x84)
)

// Name string prefixes.
const (
	nullName        = 0x00
	dualNamePrefix  = 0x2e
	multiNamePrefix = 0x2f
	rootChar        = '\\'
	parentPrefix    = '^'
)

// extOpPrefix introduces the second byte of an extended opcode.
const extOpPrefix = 0x5b

// opIsExtended returns true if op must be emitted with the extension prefix.
func opIsExtended(op AMLOpcode) bool {
	return op > OpOnes
}

// appendOpcode appends the byte encoding of op to dst.
func appendOpcode(dst []byte, op AMLOpcode) []byte {
	if opIsExtended(op) {
		return append(dst, extOpPrefix, byte(op-OpOnes))
	}

	return append(dst, byte(op))
}

// opIsBinaryArithmetic returns true if op encodes as
// Op Operand Operand Target.
//
// Grammar:
// DefAdd := AddOp Operand Operand Target
// (and likewise for And, Concat, Mod, Multiply, NAnd, NOr, Or, ShiftLeft,
// ShiftRight, Subtract and XOr)
func opIsBinaryArithmetic(op AMLOpcode) bool {
	switch op {
	case OpAdd, OpAnd, OpConcat, OpMod, OpMultiply, OpNand, OpNor, OpOr,
		OpShiftLeft, OpShiftRight, OpSubtract, OpXor:
		return true
	default:
		return false
	}
}

// opIsLogical returns true if op encodes as Op Operand Operand.
func opIsLogical(op AMLOpcode) bool {
	switch op {
	case OpLand, OpLor, OpLEqual, OpLGreater, OpLLess:
		return true
	default:
		return false
	}
}

// opIsConversion returns true if op encodes as Op Operand Target.
func opIsConversion(op AMLOpcode) bool {
	switch op {
	case OpNot, OpToBuffer, OpToInteger:
		return true
	default:
		return false
	}
}

// opIsSingleOperand returns true if op encodes as Op Operand.
func opIsSingleOperand(op AMLOpcode) bool {
	switch op {
	case OpIncrement, OpDecrement, OpDerefOf, OpRefOf, OpSizeOf, OpLnot,
		OpRelease, OpSleep, OpStall:
		return true
	default:
		return false
	}
}

// opIsBufferField returns true if this opcode describes a fixed-width
// buffer field creation operation.
func opIsBufferField(op AMLOpcode) bool {
	switch op {
	case OpCreateBitField, OpCreateByteField, OpCreateWordField, OpCreateDWordField, OpCreateQWordField:
		return true
	default:
		return false
	}
}
