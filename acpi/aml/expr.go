package aml

import "acpigen/acpi/acpierr"

// Arg refers to one of the arguments (0-6) of the enclosing method.
type Arg uint8

func (a Arg) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !ctx.inMethod {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidPlacement, "Arg%d outside of a method body", uint8(a))
	}

	if op := OpArg0 + AMLOpcode(a); op <= OpArg6 {
		return appendOpcode(dst, op), nil
	}

	return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "Arg%d is out of range; methods have Arg0-Arg6", uint8(a))
}

// Local refers to one of the locals (0-7) of the enclosing method.
type Local uint8

func (l Local) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !ctx.inMethod {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidPlacement, "Local%d outside of a method body", uint8(l))
	}

	if op := OpLocal0 + AMLOpcode(l); op <= OpLocal7 {
		return appendOpcode(dst, op), nil
	}

	return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "Local%d is out of range; methods have Local0-Local7", uint8(l))
}

// Store copies Source into Target.
//
// Grammar:
// DefStore := StoreOp TermArg SuperName
type Store struct {
	Source Term
	Target Term
}

func (s *Store) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	return appendOperands(appendOpcode(dst, OpStore), ctx, s.Source, s.Target)
}

// BinaryOp is an arithmetic or bitwise operation that stores its result in an
// optional Target. Use the helper constructors (Add, And, ...) to build it.
//
// Grammar:
// DefAdd := AddOp Operand Operand Target
type BinaryOp struct {
	Op          AMLOpcode
	Left, Right Term
	Target      Term
}

func newBinaryOp(op AMLOpcode, left, right, target Term) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right, Target: target}
}

// Add computes left + right.
func Add(left, right, target Term) *BinaryOp { return newBinaryOp(OpAdd, left, right, target) }

// Subtract computes left - right.
func Subtract(left, right, target Term) *BinaryOp {
	return newBinaryOp(OpSubtract, left, right, target)
}

// Multiply computes left * right.
func Multiply(left, right, target Term) *BinaryOp {
	return newBinaryOp(OpMultiply, left, right, target)
}

// Mod computes left % right.
func Mod(left, right, target Term) *BinaryOp { return newBinaryOp(OpMod, left, right, target) }

// And computes left & right.
func And(left, right, target Term) *BinaryOp { return newBinaryOp(OpAnd, left, right, target) }

// Or computes left | right.
func Or(left, right, target Term) *BinaryOp { return newBinaryOp(OpOr, left, right, target) }

// Xor computes left ^ right.
func Xor(left, right, target Term) *BinaryOp { return newBinaryOp(OpXor, left, right, target) }

// ShiftLeft computes left << right.
func ShiftLeft(left, right, target Term) *BinaryOp {
	return newBinaryOp(OpShiftLeft, left, right, target)
}

// ShiftRight computes left >> right.
func ShiftRight(left, right, target Term) *BinaryOp {
	return newBinaryOp(OpShiftRight, left, right, target)
}

// Concat concatenates two strings, buffers or integers.
func Concat(left, right, target Term) *BinaryOp {
	return newBinaryOp(OpConcat, left, right, target)
}

func (b *BinaryOp) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !opIsBinaryArithmetic(b.Op) {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "opcode 0x%x is not a binary operator", uint16(b.Op))
	}

	dst, err := appendOperands(appendOpcode(dst, b.Op), ctx, b.Left, b.Right)
	if err != nil {
		return nil, err
	}

	return appendTarget(dst, ctx, b.Target)
}

// Divide computes Dividend / Divisor storing the remainder and quotient in
// the optional Remainder and Quotient targets.
//
// Grammar:
// DefDivide := DivideOp Dividend Divisor Remainder Quotient
type Divide struct {
	Dividend, Divisor   Term
	Remainder, Quotient Term
}

func (d *Divide) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	dst, err := appendOperands(appendOpcode(dst, OpDivide), ctx, d.Dividend, d.Divisor)
	if err != nil {
		return nil, err
	}

	if dst, err = appendTarget(dst, ctx, d.Remainder); err != nil {
		return nil, err
	}

	return appendTarget(dst, ctx, d.Quotient)
}

// LogicOp is a logical comparison that evaluates to Ones or Zero.
//
// Grammar:
// DefLEqual := LequalOp Operand Operand
type LogicOp struct {
	Op          AMLOpcode
	Left, Right Term
}

// LAnd evaluates to true if both operands are non-zero.
func LAnd(left, right Term) *LogicOp { return &LogicOp{Op: OpLand, Left: left, Right: right} }

// LOr evaluates to true if either operand is non-zero.
func LOr(left, right Term) *LogicOp { return &LogicOp{Op: OpLor, Left: left, Right: right} }

// LEqual evaluates to true if left == right.
func LEqual(left, right Term) *LogicOp { return &LogicOp{Op: OpLEqual, Left: left, Right: right} }

// LGreater evaluates to true if left > right.
func LGreater(left, right Term) *LogicOp {
	return &LogicOp{Op: OpLGreater, Left: left, Right: right}
}

// LLess evaluates to true if left < right.
func LLess(left, right Term) *LogicOp { return &LogicOp{Op: OpLLess, Left: left, Right: right} }

// LNotEqual evaluates to true if left != right.
func LNotEqual(left, right Term) *UnaryOp { return LNot(LEqual(left, right)) }

// LGreaterEqual evaluates to true if left >= right.
func LGreaterEqual(left, right Term) *UnaryOp { return LNot(LLess(left, right)) }

// LLessEqual evaluates to true if left <= right.
func LLessEqual(left, right Term) *UnaryOp { return LNot(LGreater(left, right)) }

func (l *LogicOp) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !opIsLogical(l.Op) {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "opcode 0x%x is not a logical operator", uint16(l.Op))
	}

	return appendOperands(appendOpcode(dst, l.Op), ctx, l.Left, l.Right)
}

// UnaryOp is an operation with a single operand and no target.
//
// Grammar:
// DefIncrement := IncrementOp SuperName
// DefLNot := LnotOp Operand
// DefSleep := SleepOp MsecTime
type UnaryOp struct {
	Op      AMLOpcode
	Operand Term
}

// LNot evaluates to true if operand is zero.
func LNot(operand Term) *UnaryOp { return &UnaryOp{Op: OpLnot, Operand: operand} }

// Increment adds one to the named object.
func Increment(name Term) *UnaryOp { return &UnaryOp{Op: OpIncrement, Operand: name} }

// Decrement subtracts one from the named object.
func Decrement(name Term) *UnaryOp { return &UnaryOp{Op: OpDecrement, Operand: name} }

// SizeOf evaluates to the size of a buffer, string or package.
func SizeOf(name Term) *UnaryOp { return &UnaryOp{Op: OpSizeOf, Operand: name} }

// DerefOf dereferences an object reference.
func DerefOf(ref Term) *UnaryOp { return &UnaryOp{Op: OpDerefOf, Operand: ref} }

// RefOf creates a reference to an object.
func RefOf(name Term) *UnaryOp { return &UnaryOp{Op: OpRefOf, Operand: name} }

// Release releases a mutex.
func Release(mutex Term) *UnaryOp { return &UnaryOp{Op: OpRelease, Operand: mutex} }

// Sleep suspends execution for the given number of milliseconds.
func Sleep(msec Term) *UnaryOp { return &UnaryOp{Op: OpSleep, Operand: msec} }

// Stall busy-waits for the given number of microseconds.
func Stall(usec Term) *UnaryOp { return &UnaryOp{Op: OpStall, Operand: usec} }

func (u *UnaryOp) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !opIsSingleOperand(u.Op) {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "opcode 0x%x is not a single operand operator", uint16(u.Op))
	}

	return appendTerm(appendOpcode(dst, u.Op), ctx, u.Operand)
}

// Conversion is an operation with one operand whose result is stored in an
// optional Target.
//
// Grammar:
// DefNot := NotOp Operand Target
// DefToBuffer := ToBufferOp Operand Target
type Conversion struct {
	Op      AMLOpcode
	Operand Term
	Target  Term
}

// Not computes the bitwise complement of operand.
func Not(operand, target Term) *Conversion {
	return &Conversion{Op: OpNot, Operand: operand, Target: target}
}

// ToBuffer converts operand to a buffer.
func ToBuffer(operand, target Term) *Conversion {
	return &Conversion{Op: OpToBuffer, Operand: operand, Target: target}
}

// ToInteger converts operand to an integer.
func ToInteger(operand, target Term) *Conversion {
	return &Conversion{Op: OpToInteger, Operand: operand, Target: target}
}

func (c *Conversion) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if !opIsConversion(c.Op) {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "opcode 0x%x is not a conversion operator", uint16(c.Op))
	}

	dst, err := appendTerm(appendOpcode(dst, c.Op), ctx, c.Operand)
	if err != nil {
		return nil, err
	}

	return appendTarget(dst, ctx, c.Target)
}

// Index evaluates to a reference to element Index of Source.
//
// Grammar:
// DefIndex := IndexOp BuffPkgStrObj IndexValue Target
type Index struct {
	Source Term
	Index  Term
	Target Term
}

func (i *Index) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	dst, err := appendOperands(appendOpcode(dst, OpIndex), ctx, i.Source, i.Index)
	if err != nil {
		return nil, err
	}

	return appendTarget(dst, ctx, i.Target)
}

// Notify sends a notification value to a device or thermal zone.
//
// Grammar:
// DefNotify := NotifyOp NotifyObject NotifyValue
type Notify struct {
	Object Term
	Value  Term
}

func (n *Notify) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	return appendOperands(appendOpcode(dst, OpNotify), ctx, n.Object, n.Value)
}

// AcquireForever is the Acquire timeout that never expires.
const AcquireForever = 0xffff

// Acquire waits up to Timeout milliseconds for a mutex.
//
// Grammar:
// DefAcquire := AcquireOp MutexObject Timeout
// Timeout := WordData
type Acquire struct {
	Mutex   Term
	Timeout uint16
}

func (a *Acquire) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	dst, err := appendTerm(appendOpcode(dst, OpAcquire), ctx, a.Mutex)
	if err != nil {
		return nil, err
	}

	return append(dst, byte(a.Timeout), byte(a.Timeout>>8)), nil
}

// MethodCall invokes a control method with up to 7 arguments.
//
// Grammar:
// MethodInvocation := NameString TermArgList
type MethodCall struct {
	Name string
	Args []Term
}

func (m *MethodCall) appendAML(dst []byte, ctx encodeCtx) ([]byte, error) {
	if len(m.Args) > MaxMethodArgs {
		return nil, acpierr.New("acpi_aml", acpierr.KindInvalidArgument, "call to %q passes %d args; at most %d are supported", m.Name, len(m.Args), MaxMethodArgs)
	}

	dst, err := appendName(dst, m.Name)
	if err != nil {
		return nil, err
	}

	return appendTermList(dst, ctx, m.Args)
}

// appendOperands encodes a fixed list of required operands.
func appendOperands(dst []byte, ctx encodeCtx, operands ...Term) ([]byte, error) {
	return appendTermList(dst, ctx, operands)
}
