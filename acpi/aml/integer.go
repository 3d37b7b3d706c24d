package aml

import "encoding/binary"

// AppendInteger appends the narrowest AML encoding of v to dst.
//
// Grammar:
// ComputationalData := ByteConst | WordConst | DWordConst | QWordConst | ConstObj
// ConstObj := ZeroOp | OneOp | OnesOp
func AppendInteger(dst []byte, v uint64) []byte {
	switch {
	case v == 0:
		return append(dst, byte(OpZero))
	case v == 1:
		return append(dst, byte(OpOne))
	case v <= 0xff:
		return append(dst, byte(OpBytePrefix), byte(v))
	case v <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(dst, byte(OpWordPrefix)), uint16(v))
	case v <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(dst, byte(OpDwordPrefix)), uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(append(dst, byte(OpQwordPrefix)), v)
	}
}

// Integer is a constant encoded with the narrowest prefix that fits its
// value.
type Integer uint64

func (i Integer) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	return AppendInteger(dst, uint64(i)), nil
}

// Zero and One are the integer constants 0 and 1.
const (
	Zero = Integer(0)
	One  = Integer(1)
)

type onesConst struct{}

func (onesConst) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	return append(dst, byte(OpOnes)), nil
}

// Ones is the OnesOp constant; an integer with all bits set.
var Ones Term = onesConst{}

type debugObj struct{}

func (debugObj) appendAML(dst []byte, _ encodeCtx) ([]byte, error) {
	return appendOpcode(dst, OpDebug), nil
}

// Debug is the debug object; storing to it prints the value in interpreters
// that support it.
var Debug Term = debugObj{}
